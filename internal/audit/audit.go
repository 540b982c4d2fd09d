// Package audit stamps create/update time and operator id on entities
// right before they are persisted.
package audit

import (
	"context"
	"time"
)

// Operation tells Fill which fields to stamp.
type Operation int

const (
	Insert Operation = iota + 1
	Update
)

// Fields is embedded by every audited entity.
type Fields struct {
	CreateTime *time.Time `json:"createTime,omitempty" db:"create_time"`
	UpdateTime *time.Time `json:"updateTime,omitempty" db:"update_time"`
	CreateUser *int64     `json:"createUser,omitempty" db:"create_user"`
	UpdateUser *int64     `json:"updateUser,omitempty" db:"update_user"`
}

// Audited is implemented by *Fields, and so by any struct embedding it.
type Audited interface {
	AuditFields() *Fields
}

func (f *Fields) AuditFields() *Fields { return f }

// Now is the clock used by Fill. Tests replace it.
var Now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

type userIDKey struct{}

// WithUserID returns a ctx carrying the id of the authenticated employee.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID returns the id stored by WithUserID.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}

// Fill stamps UpdateTime/UpdateUser for both operations and
// CreateTime/CreateUser only for Insert. Without a user id in ctx the
// user fields are set to nil.
func Fill(ctx context.Context, op Operation, entity Audited) {
	if entity == nil {
		return
	}
	f := entity.AuditFields()
	if f == nil {
		return
	}

	now := Now()
	var user *int64
	if id, ok := UserID(ctx); ok {
		user = &id
	}

	switch op {
	case Insert:
		f.CreateTime = &now
		f.CreateUser = user
		f.UpdateTime = &now
		f.UpdateUser = copyID(user)
	case Update:
		f.UpdateTime = &now
		f.UpdateUser = user
	}
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entity struct {
	Name string
	Fields
}

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	prev := Now
	Now = func() time.Time { return at }
	t.Cleanup(func() { Now = prev })
	return at
}

func TestFill_InsertStampsAllFields(t *testing.T) {
	at := fixedClock(t)
	ctx := WithUserID(context.Background(), 7)

	e := &entity{Name: "noodles"}
	Fill(ctx, Insert, e)

	require.NotNil(t, e.CreateTime)
	require.NotNil(t, e.UpdateTime)
	assert.Equal(t, at, *e.CreateTime)
	assert.Equal(t, at, *e.UpdateTime)
	require.NotNil(t, e.CreateUser)
	require.NotNil(t, e.UpdateUser)
	assert.Equal(t, int64(7), *e.CreateUser)
	assert.Equal(t, int64(7), *e.UpdateUser)
}

func TestFill_UpdateLeavesCreateFields(t *testing.T) {
	at := fixedClock(t)
	ctx := WithUserID(context.Background(), 3)

	e := &entity{}
	Fill(ctx, Update, e)

	assert.Nil(t, e.CreateTime)
	assert.Nil(t, e.CreateUser)
	require.NotNil(t, e.UpdateTime)
	assert.Equal(t, at, *e.UpdateTime)
	assert.Equal(t, int64(3), *e.UpdateUser)
}

func TestFill_WithoutUserLeavesUserNil(t *testing.T) {
	fixedClock(t)

	e := &entity{}
	Fill(context.Background(), Insert, e)

	assert.NotNil(t, e.CreateTime)
	assert.Nil(t, e.CreateUser)
	assert.Nil(t, e.UpdateUser)
}

func TestUserID(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	id, ok := UserID(WithUserID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

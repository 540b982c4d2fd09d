package model

import (
	"strconv"

	"github.com/deppfellow/sky-takeout/internal/audit"
)

// Category types.
const (
	CategoryTypeDish    = 1
	CategoryTypeSetmeal = 2
)

type Category struct {
	ID     int64  `json:"id" db:"id"`
	Type   int    `json:"type" db:"type"`
	Name   string `json:"name" db:"name"`
	Sort   int    `json:"sort" db:"sort"`
	Status int    `json:"status" db:"status"`
	audit.Fields
}

type CategoryFields struct {
	Type int    `json:"type" validate:"required,oneof=1 2"`
	Name string `json:"name" validate:"required,max=32"`
	Sort int    `json:"sort" validate:"gte=0"`
}

type CreateCategoryRequest struct {
	CategoryFields
}

func (r *CreateCategoryRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateCategoryRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	CategoryFields
}

func (r *UpdateCategoryRequest) Validate() error {
	return validate.Struct(r)
}

type CategoryPageQuery struct {
	Pagination
	Name string `query:"name" validate:"max=32"`
	Type string `query:"type" validate:"omitempty,oneof=1 2"`
}

func (r *CategoryPageQuery) Validate() error {
	return validate.Struct(r)
}

type CategoryListQuery struct {
	Type string `query:"type" validate:"omitempty,oneof=1 2"`
}

func (r *CategoryListQuery) Validate() error {
	return validate.Struct(r)
}

// OptionalInt parses a validated optional numeric query value.
func OptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// OptionalInt64 is OptionalInt for ids.
func OptionalInt64(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

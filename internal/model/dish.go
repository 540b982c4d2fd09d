package model

import (
	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/validation"
	"github.com/shopspring/decimal"
)

type Dish struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	CategoryID  int64           `json:"categoryId" db:"category_id"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image       string          `json:"image" db:"image"`
	Description string          `json:"description" db:"description"`
	Status      int             `json:"status" db:"status"`
	audit.Fields
}

type DishFlavor struct {
	ID     int64  `json:"id" db:"id"`
	DishID int64  `json:"dishId" db:"dish_id"`
	Name   string `json:"name" db:"name"`
	Value  string `json:"value" db:"value"`
}

// DishVO is a dish with its category name and flavors.
type DishVO struct {
	Dish
	CategoryName string       `json:"categoryName" db:"category_name"`
	Flavors      []DishFlavor `json:"flavors" db:"-"`
}

type FlavorRequest struct {
	Name  string `json:"name" validate:"required,max=32"`
	Value string `json:"value" validate:"required,max=255"`
}

type DishFields struct {
	Name        string          `json:"name" validate:"required,max=32"`
	CategoryID  int64           `json:"categoryId" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image" validate:"max=255"`
	Description string          `json:"description" validate:"max=255"`
	Status      *int            `json:"status" validate:"omitempty,oneof=0 1"`
	Flavors     []FlavorRequest `json:"flavors" validate:"dive"`
}

type CreateDishRequest struct {
	DishFields
}

func (r *CreateDishRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validatePrice(r.Price)
}

type UpdateDishRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	DishFields
}

func (r *UpdateDishRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validatePrice(r.Price)
}

type DishPageQuery struct {
	Pagination
	Name       string `query:"name" validate:"max=32"`
	CategoryID string `query:"categoryId" validate:"omitempty,number"`
	Status     string `query:"status" validate:"omitempty,oneof=0 1"`
}

func (r *DishPageQuery) Validate() error {
	return validate.Struct(r)
}

type DishListQuery struct {
	CategoryID int64 `query:"categoryId" validate:"required,gt=0"`
}

func (r *DishListQuery) Validate() error {
	return validate.Struct(r)
}

var maxPrice = decimal.NewFromInt(100_000_000)

func validatePrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return validation.CustomValidationErrors{{Field: "price", Message: "must not be negative"}}
	case price.GreaterThanOrEqual(maxPrice):
		return validation.CustomValidationErrors{{Field: "price", Message: "is too large"}}
	case !price.Equal(price.Round(2)):
		return validation.CustomValidationErrors{{Field: "price", Message: "must have at most 2 decimal places"}}
	}
	return nil
}

package model

import (
	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/validation"
	"github.com/shopspring/decimal"
)

type Setmeal struct {
	ID          int64           `json:"id" db:"id"`
	CategoryID  int64           `json:"categoryId" db:"category_id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Status      int             `json:"status" db:"status"`
	Description string          `json:"description" db:"description"`
	Image       string          `json:"image" db:"image"`
	audit.Fields
}

type SetmealDish struct {
	ID        int64           `json:"id" db:"id"`
	SetmealID int64           `json:"setmealId" db:"setmeal_id"`
	DishID    int64           `json:"dishId" db:"dish_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Copies    int             `json:"copies" db:"copies"`
}

// SetmealVO is a setmeal with its category name and dishes.
type SetmealVO struct {
	Setmeal
	CategoryName  string        `json:"categoryName" db:"category_name"`
	SetmealDishes []SetmealDish `json:"setmealDishes" db:"-"`
}

type SetmealDishRequest struct {
	DishID int64           `json:"dishId" validate:"required,gt=0"`
	Name   string          `json:"name" validate:"required,max=32"`
	Price  decimal.Decimal `json:"price"`
	Copies int             `json:"copies" validate:"required,min=1"`
}

type SetmealFields struct {
	CategoryID    int64                `json:"categoryId" validate:"required,gt=0"`
	Name          string               `json:"name" validate:"required,max=32"`
	Price         decimal.Decimal      `json:"price"`
	Status        *int                 `json:"status" validate:"omitempty,oneof=0 1"`
	Description   string               `json:"description" validate:"max=255"`
	Image         string               `json:"image" validate:"max=255"`
	SetmealDishes []SetmealDishRequest `json:"setmealDishes" validate:"dive"`
}

func (f *SetmealFields) validatePrices() error {
	if err := validatePrice(f.Price); err != nil {
		return err
	}
	for _, d := range f.SetmealDishes {
		if d.Price.IsNegative() {
			return validation.CustomValidationErrors{{Field: "setmealDishes.price", Message: "must not be negative"}}
		}
	}
	return nil
}

type CreateSetmealRequest struct {
	SetmealFields
}

func (r *CreateSetmealRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.validatePrices()
}

type UpdateSetmealRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	SetmealFields
}

func (r *UpdateSetmealRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.validatePrices()
}

type SetmealPageQuery struct {
	Pagination
	Name       string `query:"name" validate:"max=32"`
	CategoryID string `query:"categoryId" validate:"omitempty,number"`
	Status     string `query:"status" validate:"omitempty,oneof=0 1"`
}

func (r *SetmealPageQuery) Validate() error {
	return validate.Struct(r)
}

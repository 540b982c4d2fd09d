package model

import "github.com/deppfellow/sky-takeout/internal/audit"

type Employee struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
	Phone    string `json:"phone" db:"phone"`
	Sex      string `json:"sex" db:"sex"`
	IDNumber string `json:"idNumber" db:"id_number"`
	Status   int    `json:"status" db:"status"`
	audit.Fields
}

type EmployeeLoginRequest struct {
	Username string `json:"username" validate:"required,max=32"`
	Password string `json:"password" validate:"required,max=64"`
}

func (r *EmployeeLoginRequest) Validate() error {
	return validate.Struct(r)
}

type EmployeeLoginResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// EmployeeFields are the descriptive fields shared by create and update.
type EmployeeFields struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Name     string `json:"name" validate:"required,max=32"`
	Phone    string `json:"phone" validate:"required,len=11,numeric"`
	Sex      string `json:"sex" validate:"required,oneof=0 1"`
	IDNumber string `json:"idNumber" validate:"required,len=18,alphanum"`
}

type CreateEmployeeRequest struct {
	EmployeeFields
}

func (r *CreateEmployeeRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateEmployeeRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	EmployeeFields
}

func (r *UpdateEmployeeRequest) Validate() error {
	return validate.Struct(r)
}

type EmployeePageQuery struct {
	Pagination
	Name string `query:"name" validate:"max=32"`
}

func (r *EmployeePageQuery) Validate() error {
	return validate.Struct(r)
}

// Package model holds the persisted entities, the view objects returned to
// the admin client and the request payloads bound by the handlers.
//
// Entities carry `db` tags for pgx.RowToStructByName and `json` tags in the
// camelCase the admin client expects.
package model

import (
	"reflect"
	"strings"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/lib/utils"
	"github.com/deppfellow/sky-takeout/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices go out as 12.5 rather than "12.5".
	decimal.MarshalJSONWithoutQuotes = true
}

// Status values shared by every entity with an enabled flag.
const (
	StatusDisable = 0
	StatusEnable  = 1
)

// DefaultPassword is assigned to newly created employees.
const DefaultPassword = "123456"

var validate = newValidator()

// newValidator reports fields by their json or query name so field errors
// match what the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Result is the envelope of every response.
// Code is 1 on success and 0 on failure.
type Result struct {
	Code      int               `json:"code"`
	Message   string            `json:"message,omitempty"`
	Data      any               `json:"data"`
	ErrorCode string            `json:"errorCode,omitempty"`
	Errors    []errs.FieldError `json:"errors,omitempty"`
}

func Success(data any) Result {
	return Result{Code: 1, Data: data}
}

func Failure(err *errs.HTTPError) Result {
	return Result{
		Code:      0,
		Message:   err.Message,
		ErrorCode: err.Code,
		Errors:    err.Errors,
	}
}

// PageResult is one page of records plus the total matching the filter.
type PageResult[T any] struct {
	Total   int64 `json:"total"`
	Records []T   `json:"records"`
}

func NewPageResult[T any](total int64, records []T) *PageResult[T] {
	if records == nil {
		records = []T{}
	}
	return &PageResult[T]{Total: total, Records: records}
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination is embedded by every page query.
type Pagination struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

func (p Pagination) Limit() int {
	switch {
	case p.PageSize <= 0:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	default:
		return p.PageSize
	}
}

func (p Pagination) Offset() int {
	page := p.Page
	if page <= 0 {
		page = DefaultPage
	}
	return (page - 1) * p.Limit()
}

// StatusRequest is POST /status/{status}?id=.
type StatusRequest struct {
	Status int   `param:"status" validate:"oneof=0 1"`
	ID     int64 `query:"id" validate:"required,gt=0"`
}

func (r *StatusRequest) Validate() error {
	return validate.Struct(r)
}

// IDPathRequest is GET /{id}.
type IDPathRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *IDPathRequest) Validate() error {
	return validate.Struct(r)
}

// IDQueryRequest is DELETE ?id=.
type IDQueryRequest struct {
	ID int64 `query:"id" validate:"required,gt=0"`
}

func (r *IDQueryRequest) Validate() error {
	return validate.Struct(r)
}

// IDsQueryRequest is DELETE ?ids=1,2,3. Validate parses the list, IDList
// returns it afterwards.
type IDsQueryRequest struct {
	IDs string `query:"ids" validate:"required"`

	parsed []int64
}

func (r *IDsQueryRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	ids, err := utils.ParseIDList(r.IDs)
	if err != nil {
		return validation.CustomValidationErrors{{Field: "ids", Message: "must be a comma-separated list of positive ids"}}
	}
	r.parsed = ids
	return nil
}

func (r *IDsQueryRequest) IDList() []int64 {
	return r.parsed
}

// EmptyRequest is bound by endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var v = validator.New()

type statusPayload struct {
	Status int    `param:"status" validate:"oneof=0 1"`
	ID     int64  `query:"id" validate:"required,gt=0"`
	Name   string `json:"name" validate:"max=5"`
}

func (p *statusPayload) Validate() error {
	return v.Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "price", Message: "must not be negative"}}
}

func newContext(method, target, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_BindsQueryOnPost(t *testing.T) {
	c := newContext(http.MethodPost, "/admin/dish/status/1?id=9", "")
	c.SetParamNames("status")
	c.SetParamValues("1")

	var p statusPayload
	require.NoError(t, BindAndValidate(c, &p))
	assert.Equal(t, 1, p.Status)
	assert.Equal(t, int64(9), p.ID)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	c := newContext(http.MethodPost, "/x/status/3", `{"name":"too long name"}`)
	c.SetParamNames("status")
	c.SetParamValues("3")

	err := BindAndValidate(c, &statusPayload{})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Len(t, httpErr.Errors, 3)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	c := newContext(http.MethodPut, "/x?id=1", `{"name":`)

	err := BindAndValidate(c, &statusPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Nil(t, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(http.MethodGet, "/x", "")

	err := BindAndValidate(c, &customPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "price", httpErr.Errors[0].Field)
	assert.Equal(t, "must not be negative", httpErr.Errors[0].Error)
}

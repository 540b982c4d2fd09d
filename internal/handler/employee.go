package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
)

type EmployeeService interface {
	Login(ctx context.Context, req *model.EmployeeLoginRequest) (*model.EmployeeLoginResponse, error)
	Create(ctx context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error)
	Page(ctx context.Context, q *model.EmployeePageQuery) (*model.PageResult[model.Employee], error)
	SetStatus(ctx context.Context, id int64, status int) error
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	Update(ctx context.Context, req *model.UpdateEmployeeRequest) error
}

// EmployeeHandler serves /admin/employee.
type EmployeeHandler struct {
	Handler
	employees EmployeeService
}

func NewEmployeeHandler(s *server.Server, employees EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		Handler:   NewHandler(s),
		employees: employees,
	}
}

func (h *EmployeeHandler) Login() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.EmployeeLoginRequest) (*model.EmployeeLoginResponse, error) {
		return h.employees.Login(c.Request().Context(), req)
	}, http.StatusOK)
}

// Logout is a no-op: tokens are stateless and simply expire.
func (h *EmployeeHandler) Logout() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, _ *model.EmptyRequest) error {
		return nil
	}, http.StatusOK)
}

func (h *EmployeeHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateEmployeeRequest) (*model.Employee, error) {
		return h.employees.Create(c.Request().Context(), req)
	}, http.StatusCreated)
}

func (h *EmployeeHandler) Page() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.EmployeePageQuery) (*model.PageResult[model.Employee], error) {
		return h.employees.Page(c.Request().Context(), req)
	}, http.StatusOK)
}

func (h *EmployeeHandler) SetStatus() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.StatusRequest) error {
		return h.employees.SetStatus(c.Request().Context(), req.ID, req.Status)
	}, http.StatusOK)
}

func (h *EmployeeHandler) GetByID() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.IDPathRequest) (*model.Employee, error) {
		return h.employees.GetByID(c.Request().Context(), req.ID)
	}, http.StatusOK)
}

func (h *EmployeeHandler) Update() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.UpdateEmployeeRequest) error {
		return h.employees.Update(c.Request().Context(), req)
	}, http.StatusOK)
}

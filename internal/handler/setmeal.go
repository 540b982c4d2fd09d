package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
)

type SetmealService interface {
	Create(ctx context.Context, req *model.CreateSetmealRequest) (*model.Setmeal, error)
	Page(ctx context.Context, q *model.SetmealPageQuery) (*model.PageResult[model.SetmealVO], error)
	Delete(ctx context.Context, ids []int64) error
	GetByID(ctx context.Context, id int64) (*model.SetmealVO, error)
	Update(ctx context.Context, req *model.UpdateSetmealRequest) error
	SetStatus(ctx context.Context, id int64, status int) error
}

// SetmealHandler serves /admin/setmeal.
type SetmealHandler struct {
	Handler
	setmeals SetmealService
}

func NewSetmealHandler(s *server.Server, setmeals SetmealService) *SetmealHandler {
	return &SetmealHandler{
		Handler:  NewHandler(s),
		setmeals: setmeals,
	}
}

func (h *SetmealHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateSetmealRequest) (*model.Setmeal, error) {
		return h.setmeals.Create(c.Request().Context(), req)
	}, http.StatusCreated)
}

func (h *SetmealHandler) Page() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.SetmealPageQuery) (*model.PageResult[model.SetmealVO], error) {
		return h.setmeals.Page(c.Request().Context(), req)
	}, http.StatusOK)
}

func (h *SetmealHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.IDsQueryRequest) error {
		return h.setmeals.Delete(c.Request().Context(), req.IDList())
	}, http.StatusOK)
}

func (h *SetmealHandler) GetByID() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.IDPathRequest) (*model.SetmealVO, error) {
		return h.setmeals.GetByID(c.Request().Context(), req.ID)
	}, http.StatusOK)
}

func (h *SetmealHandler) Update() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.UpdateSetmealRequest) error {
		return h.setmeals.Update(c.Request().Context(), req)
	}, http.StatusOK)
}

func (h *SetmealHandler) SetStatus() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.StatusRequest) error {
		return h.setmeals.SetStatus(c.Request().Context(), req.ID, req.Status)
	}, http.StatusOK)
}

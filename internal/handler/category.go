package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	Page(ctx context.Context, q *model.CategoryPageQuery) (*model.PageResult[model.Category], error)
	List(ctx context.Context, q *model.CategoryListQuery) ([]model.Category, error)
	Delete(ctx context.Context, id int64) error
	Update(ctx context.Context, req *model.UpdateCategoryRequest) error
	SetStatus(ctx context.Context, id int64, status int) error
}

// CategoryHandler serves /admin/category.
type CategoryHandler struct {
	Handler
	categories CategoryService
}

func NewCategoryHandler(s *server.Server, categories CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:    NewHandler(s),
		categories: categories,
	}
}

func (h *CategoryHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
		return h.categories.Create(c.Request().Context(), req)
	}, http.StatusCreated)
}

func (h *CategoryHandler) Page() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CategoryPageQuery) (*model.PageResult[model.Category], error) {
		return h.categories.Page(c.Request().Context(), req)
	}, http.StatusOK)
}

func (h *CategoryHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.IDQueryRequest) error {
		return h.categories.Delete(c.Request().Context(), req.ID)
	}, http.StatusOK)
}

func (h *CategoryHandler) Update() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.UpdateCategoryRequest) error {
		return h.categories.Update(c.Request().Context(), req)
	}, http.StatusOK)
}

func (h *CategoryHandler) SetStatus() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.StatusRequest) error {
		return h.categories.SetStatus(c.Request().Context(), req.ID, req.Status)
	}, http.StatusOK)
}

func (h *CategoryHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CategoryListQuery) ([]model.Category, error) {
		return h.categories.List(c.Request().Context(), req)
	}, http.StatusOK)
}

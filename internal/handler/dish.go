package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
)

type DishService interface {
	Create(ctx context.Context, req *model.CreateDishRequest) (*model.Dish, error)
	Page(ctx context.Context, q *model.DishPageQuery) (*model.PageResult[model.DishVO], error)
	Delete(ctx context.Context, ids []int64) error
	GetByID(ctx context.Context, id int64) (*model.DishVO, error)
	Update(ctx context.Context, req *model.UpdateDishRequest) error
	List(ctx context.Context, categoryID int64) ([]model.Dish, error)
	SetStatus(ctx context.Context, id int64, status int) error
}

// DishHandler serves /admin/dish.
type DishHandler struct {
	Handler
	dishes DishService
}

func NewDishHandler(s *server.Server, dishes DishService) *DishHandler {
	return &DishHandler{
		Handler: NewHandler(s),
		dishes:  dishes,
	}
}

func (h *DishHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateDishRequest) (*model.Dish, error) {
		return h.dishes.Create(c.Request().Context(), req)
	}, http.StatusCreated)
}

func (h *DishHandler) Page() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.DishPageQuery) (*model.PageResult[model.DishVO], error) {
		return h.dishes.Page(c.Request().Context(), req)
	}, http.StatusOK)
}

func (h *DishHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.IDsQueryRequest) error {
		return h.dishes.Delete(c.Request().Context(), req.IDList())
	}, http.StatusOK)
}

func (h *DishHandler) GetByID() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.IDPathRequest) (*model.DishVO, error) {
		return h.dishes.GetByID(c.Request().Context(), req.ID)
	}, http.StatusOK)
}

func (h *DishHandler) Update() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.UpdateDishRequest) error {
		return h.dishes.Update(c.Request().Context(), req)
	}, http.StatusOK)
}

func (h *DishHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.DishListQuery) ([]model.Dish, error) {
		return h.dishes.List(c.Request().Context(), req.CategoryID)
	}, http.StatusOK)
}

func (h *DishHandler) SetStatus() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.StatusRequest) error {
		return h.dishes.SetStatus(c.Request().Context(), req.ID, req.Status)
	}, http.StatusOK)
}

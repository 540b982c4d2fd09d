package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
)

type ShopService interface {
	SetStatus(ctx context.Context, status int) error
	GetStatus(ctx context.Context) (*int, error)
}

// ShopHandler serves /admin/shop.
type ShopHandler struct {
	Handler
	shop ShopService
}

func NewShopHandler(s *server.Server, shop ShopService) *ShopHandler {
	return &ShopHandler{
		Handler: NewHandler(s),
		shop:    shop,
	}
}

func (h *ShopHandler) SetStatus() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.ShopStatusRequest) error {
		return h.shop.SetStatus(c.Request().Context(), req.Status)
	}, http.StatusOK)
}

// GetStatus answers data: null while the status was never set.
func (h *ShopHandler) GetStatus() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*int, error) {
		return h.shop.GetStatus(c.Request().Context())
	}, http.StatusOK)
}

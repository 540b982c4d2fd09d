package service

import (
	"context"

	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/rs/zerolog"
)

type ShopStore interface {
	SetStatus(ctx context.Context, status int) error
	GetStatus(ctx context.Context) (*int, error)
}

type ShopService struct {
	shop   ShopStore
	logger *zerolog.Logger
}

func NewShopService(shop ShopStore, logger *zerolog.Logger) *ShopService {
	return &ShopService{shop: shop, logger: logger}
}

func (s *ShopService) SetStatus(ctx context.Context, status int) error {
	if err := s.shop.SetStatus(ctx, status); err != nil {
		return err
	}

	state := "closed"
	if status == model.ShopOpen {
		state = "open"
	}
	s.logger.Info().Str("shop_status", state).Msg("shop status changed")
	return nil
}

// GetStatus returns nil when no status was ever set.
func (s *ShopService) GetStatus(ctx context.Context) (*int, error) {
	return s.shop.GetStatus(ctx)
}

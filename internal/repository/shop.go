package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ShopStatusKey holds the open/closed flag. It has no expiry.
const ShopStatusKey = "SHOP_STATUS"

type ShopRepository struct {
	rdb redis.Cmdable
}

func NewShopRepository(rdb redis.Cmdable) *ShopRepository {
	return &ShopRepository{rdb: rdb}
}

func (r *ShopRepository) SetStatus(ctx context.Context, status int) error {
	if err := r.rdb.Set(ctx, ShopStatusKey, status, 0).Err(); err != nil {
		return fmt.Errorf("set shop status: %w", err)
	}
	return nil
}

// GetStatus returns nil when the status was never set.
func (r *ShopRepository) GetStatus(ctx context.Context) (*int, error) {
	raw, err := r.rdb.Get(ctx, ShopStatusKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shop status: %w", err)
	}

	status, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parse shop status %q: %w", raw, err)
	}
	return &status, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/database"
)

// ImageRepository answers whether an uploaded image is still referenced.
type ImageRepository struct {
	pool database.Pool
}

func NewImageRepository(pool database.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

// ImageInUse reports whether any dish or setmeal still points at url.
func (r *ImageRepository) ImageInUse(ctx context.Context, url string) (bool, error) {
	var inUse bool
	err := database.Conn(ctx, r.pool).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM dish WHERE image = $1
			UNION ALL
			SELECT 1 FROM setmeal WHERE image = $1
		)`, url).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("check image references: %w", err)
	}
	return inUse, nil
}

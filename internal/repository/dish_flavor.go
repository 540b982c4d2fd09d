package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/database"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/jackc/pgx/v5"
)

type DishFlavorRepository struct {
	pool database.Pool
}

func NewDishFlavorRepository(pool database.Pool) *DishFlavorRepository {
	return &DishFlavorRepository{pool: pool}
}

// InsertBatch stores all flavors of one dish in a single statement.
func (r *DishFlavorRepository) InsertBatch(ctx context.Context, dishID int64, flavors []model.DishFlavor) error {
	if len(flavors) == 0 {
		return nil
	}

	names := make([]string, len(flavors))
	values := make([]string, len(flavors))
	for i, f := range flavors {
		names[i] = f.Name
		values[i] = f.Value
	}

	_, err := database.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO dish_flavor (dish_id, name, value)
		SELECT $1, t.name, t.value FROM unnest($2::text[], $3::text[]) AS t(name, value)`,
		dishID, names, values)
	if err != nil {
		return fmt.Errorf("insert dish flavors: %w", err)
	}
	return nil
}

func (r *DishFlavorRepository) ListByDishID(ctx context.Context, dishID int64) ([]model.DishFlavor, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		"SELECT id, dish_id, name, value FROM dish_flavor WHERE dish_id = $1 ORDER BY id", dishID)
	if err != nil {
		return nil, fmt.Errorf("query dish flavors: %w", err)
	}

	flavors, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.DishFlavor])
	if err != nil {
		return nil, fmt.Errorf("collect dish flavors: %w", err)
	}
	return flavors, nil
}

func (r *DishFlavorRepository) DeleteByDishIDs(ctx context.Context, dishIDs []int64) error {
	if _, err := database.Conn(ctx, r.pool).Exec(ctx,
		"DELETE FROM dish_flavor WHERE dish_id = ANY($1)", dishIDs); err != nil {
		return fmt.Errorf("delete dish flavors: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/database"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/jackc/pgx/v5"
)

type SetmealDishRepository struct {
	pool database.Pool
}

func NewSetmealDishRepository(pool database.Pool) *SetmealDishRepository {
	return &SetmealDishRepository{pool: pool}
}

// InsertBatch stores all dish rows of one setmeal in a single statement.
// Prices travel as text and are cast server side to keep NUMERIC precision.
func (r *SetmealDishRepository) InsertBatch(ctx context.Context, setmealID int64, dishes []model.SetmealDish) error {
	if len(dishes) == 0 {
		return nil
	}

	dishIDs := make([]int64, len(dishes))
	names := make([]string, len(dishes))
	prices := make([]string, len(dishes))
	copies := make([]int32, len(dishes))
	for i, d := range dishes {
		dishIDs[i] = d.DishID
		names[i] = d.Name
		prices[i] = d.Price.String()
		copies[i] = int32(d.Copies)
	}

	_, err := database.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO setmeal_dish (setmeal_id, dish_id, name, price, copies)
		SELECT $1, t.dish_id, t.name, t.price::numeric, t.copies
		FROM unnest($2::bigint[], $3::text[], $4::text[], $5::int[]) AS t(dish_id, name, price, copies)`,
		setmealID, dishIDs, names, prices, copies)
	if err != nil {
		return fmt.Errorf("insert setmeal dishes: %w", err)
	}
	return nil
}

func (r *SetmealDishRepository) ListBySetmealID(ctx context.Context, setmealID int64) ([]model.SetmealDish, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		"SELECT id, setmeal_id, dish_id, name, price, copies FROM setmeal_dish WHERE setmeal_id = $1 ORDER BY id",
		setmealID)
	if err != nil {
		return nil, fmt.Errorf("query setmeal dishes: %w", err)
	}

	dishes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SetmealDish])
	if err != nil {
		return nil, fmt.Errorf("collect setmeal dishes: %w", err)
	}
	return dishes, nil
}

// SetmealIDsByDishIDs returns the distinct setmeals referencing any of the dishes.
func (r *SetmealDishRepository) SetmealIDsByDishIDs(ctx context.Context, dishIDs []int64) ([]int64, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		"SELECT DISTINCT setmeal_id FROM setmeal_dish WHERE dish_id = ANY($1) ORDER BY setmeal_id", dishIDs)
	if err != nil {
		return nil, fmt.Errorf("query setmeal ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect setmeal ids: %w", err)
	}
	return ids, nil
}

func (r *SetmealDishRepository) DeleteBySetmealIDs(ctx context.Context, setmealIDs []int64) error {
	if _, err := database.Conn(ctx, r.pool).Exec(ctx,
		"DELETE FROM setmeal_dish WHERE setmeal_id = ANY($1)", setmealIDs); err != nil {
		return fmt.Errorf("delete setmeal dishes: %w", err)
	}
	return nil
}


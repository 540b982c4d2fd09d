package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/database"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, type, name, sort, status, create_time, update_time, create_user, update_user`

type CategoryRepository struct {
	pool database.Pool
}

func NewCategoryRepository(pool database.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	audit.Fill(ctx, audit.Insert, c)

	err := database.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO category (type, name, sort, status, create_time, update_time, create_user, update_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		c.Type, c.Name, c.Sort, c.Status, c.CreateTime, c.UpdateTime, c.CreateUser, c.UpdateUser,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Page orders by sort, then newest first.
func (r *CategoryRepository) Page(ctx context.Context, name string, categoryType *int, limit, offset int) ([]model.Category, int64, error) {
	q := database.Conn(ctx, r.pool)

	f := &filter{}
	if name != "" {
		f.add("name ILIKE $%d", contains(name))
	}
	if categoryType != nil {
		f.add("type = $%d", *categoryType)
	}

	total, err := count(ctx, q, "SELECT count(*) FROM category", f)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	paging, args := f.page(limit, offset)
	rows, err := q.Query(ctx,
		"SELECT "+categoryColumns+" FROM category"+f.where()+" ORDER BY sort ASC, create_time DESC, id DESC"+paging,
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
	if err != nil {
		return nil, 0, fmt.Errorf("collect categories: %w", err)
	}
	return categories, total, nil
}

// ListEnabled returns enabled categories, optionally of one type.
func (r *CategoryRepository) ListEnabled(ctx context.Context, categoryType *int) ([]model.Category, error) {
	f := &filter{}
	f.add("status = $%d", model.StatusEnable)
	if categoryType != nil {
		f.add("type = $%d", *categoryType)
	}

	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		"SELECT "+categoryColumns+" FROM category"+f.where()+" ORDER BY sort ASC, create_time DESC, id DESC",
		f.args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	audit.Fill(ctx, audit.Update, c)

	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE category SET type = $1, name = $2, sort = $3, update_time = $4, update_user = $5
		WHERE id = $6`,
		c.Type, c.Name, c.Sort, c.UpdateTime, c.UpdateUser, c.ID,
	))
}

func (r *CategoryRepository) UpdateStatus(ctx context.Context, id int64, status int) error {
	f := &audit.Fields{}
	audit.Fill(ctx, audit.Update, f)

	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE category SET status = $1, update_time = $2, update_user = $3 WHERE id = $4`,
		status, f.UpdateTime, f.UpdateUser, id,
	))
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, "DELETE FROM category WHERE id = $1", id))
}

package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/database"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/jackc/pgx/v5"
)

const setmealColumns = `s.id, s.category_id, s.name, s.price, s.status, s.description, s.image,
	s.create_time, s.update_time, s.create_user, s.update_user`

// SetmealFilter narrows a setmeal page. Nil fields are not filtered on.
type SetmealFilter struct {
	Name       string
	CategoryID *int64
	Status     *int
}

type SetmealRepository struct {
	pool database.Pool
}

func NewSetmealRepository(pool database.Pool) *SetmealRepository {
	return &SetmealRepository{pool: pool}
}

func (r *SetmealRepository) Create(ctx context.Context, s *model.Setmeal) error {
	audit.Fill(ctx, audit.Insert, s)

	err := database.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO setmeal (category_id, name, price, status, description, image,
			create_time, update_time, create_user, update_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		s.CategoryID, s.Name, s.Price, s.Status, s.Description, s.Image,
		s.CreateTime, s.UpdateTime, s.CreateUser, s.UpdateUser,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert setmeal: %w", err)
	}
	return nil
}

// GetByID returns the setmeal with its category name.
func (r *SetmealRepository) GetByID(ctx context.Context, id int64) (*model.SetmealVO, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx, `
		SELECT `+setmealColumns+`, COALESCE(c.name, '') AS category_name
		FROM setmeal s LEFT JOIN category c ON c.id = s.category_id
		WHERE s.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query setmeal: %w", err)
	}

	setmeal, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.SetmealVO])
	if err != nil {
		return nil, fmt.Errorf("collect setmeal: %w", err)
	}
	return setmeal, nil
}

// ListByIDs returns the setmeals among ids that exist.
func (r *SetmealRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Setmeal, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		"SELECT "+setmealColumns+" FROM setmeal s WHERE s.id = ANY($1) ORDER BY s.id", ids)
	if err != nil {
		return nil, fmt.Errorf("query setmeals: %w", err)
	}

	setmeals, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Setmeal])
	if err != nil {
		return nil, fmt.Errorf("collect setmeals: %w", err)
	}
	return setmeals, nil
}

func (r *SetmealRepository) Page(ctx context.Context, sf SetmealFilter, limit, offset int) ([]model.SetmealVO, int64, error) {
	q := database.Conn(ctx, r.pool)

	f := &filter{}
	if sf.Name != "" {
		f.add("s.name ILIKE $%d", contains(sf.Name))
	}
	if sf.CategoryID != nil {
		f.add("s.category_id = $%d", *sf.CategoryID)
	}
	if sf.Status != nil {
		f.add("s.status = $%d", *sf.Status)
	}

	total, err := count(ctx, q, "SELECT count(*) FROM setmeal s", f)
	if err != nil {
		return nil, 0, fmt.Errorf("count setmeals: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	paging, args := f.page(limit, offset)
	rows, err := q.Query(ctx, `
		SELECT `+setmealColumns+`, COALESCE(c.name, '') AS category_name
		FROM setmeal s LEFT JOIN category c ON c.id = s.category_id`+
		f.where()+" ORDER BY s.create_time DESC, s.id DESC"+paging, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query setmeals: %w", err)
	}

	setmeals, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SetmealVO])
	if err != nil {
		return nil, 0, fmt.Errorf("collect setmeals: %w", err)
	}
	return setmeals, total, nil
}

func (r *SetmealRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		"SELECT count(*) FROM setmeal WHERE category_id = $1", categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count setmeals by category: %w", err)
	}
	return n, nil
}

// CountEnabledByDishID counts setmeals on sale that contain the dish.
func (r *SetmealRepository) CountEnabledByDishID(ctx context.Context, dishID int64) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.pool).QueryRow(ctx, `
		SELECT count(DISTINCT s.id)
		FROM setmeal s JOIN setmeal_dish sd ON sd.setmeal_id = s.id
		WHERE sd.dish_id = $1 AND s.status = $2`,
		dishID, model.StatusEnable).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count enabled setmeals by dish: %w", err)
	}
	return n, nil
}

func (r *SetmealRepository) Update(ctx context.Context, s *model.Setmeal) error {
	audit.Fill(ctx, audit.Update, s)

	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE setmeal
		SET category_id = $1, name = $2, price = $3, status = $4, description = $5, image = $6,
			update_time = $7, update_user = $8
		WHERE id = $9`,
		s.CategoryID, s.Name, s.Price, s.Status, s.Description, s.Image,
		s.UpdateTime, s.UpdateUser, s.ID,
	))
}

func (r *SetmealRepository) UpdateStatus(ctx context.Context, id int64, status int) error {
	f := &audit.Fields{}
	audit.Fill(ctx, audit.Update, f)

	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE setmeal SET status = $1, update_time = $2, update_user = $3 WHERE id = $4`,
		status, f.UpdateTime, f.UpdateUser, id,
	))
}

func (r *SetmealRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if _, err := database.Conn(ctx, r.pool).Exec(ctx, "DELETE FROM setmeal WHERE id = ANY($1)", ids); err != nil {
		return fmt.Errorf("delete setmeals: %w", err)
	}
	return nil
}

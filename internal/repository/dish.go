package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/database"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/jackc/pgx/v5"
)

const dishColumns = `d.id, d.name, d.category_id, d.price, d.image, d.description, d.status,
	d.create_time, d.update_time, d.create_user, d.update_user`

// DishFilter narrows a dish page. Nil fields are not filtered on.
type DishFilter struct {
	Name       string
	CategoryID *int64
	Status     *int
}

type DishRepository struct {
	pool database.Pool
}

func NewDishRepository(pool database.Pool) *DishRepository {
	return &DishRepository{pool: pool}
}

func (r *DishRepository) Create(ctx context.Context, d *model.Dish) error {
	audit.Fill(ctx, audit.Insert, d)

	err := database.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO dish (name, category_id, price, image, description, status,
			create_time, update_time, create_user, update_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		d.Name, d.CategoryID, d.Price, d.Image, d.Description, d.Status,
		d.CreateTime, d.UpdateTime, d.CreateUser, d.UpdateUser,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert dish: %w", err)
	}
	return nil
}

// GetByID returns the dish with its category name.
func (r *DishRepository) GetByID(ctx context.Context, id int64) (*model.DishVO, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx, `
		SELECT `+dishColumns+`, COALESCE(c.name, '') AS category_name
		FROM dish d LEFT JOIN category c ON c.id = d.category_id
		WHERE d.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query dish: %w", err)
	}

	dish, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.DishVO])
	if err != nil {
		return nil, fmt.Errorf("collect dish: %w", err)
	}
	return dish, nil
}

// ListByIDs returns the dishes among ids that exist.
func (r *DishRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Dish, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		"SELECT "+dishColumns+" FROM dish d WHERE d.id = ANY($1) ORDER BY d.id", ids)
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}

	dishes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Dish])
	if err != nil {
		return nil, fmt.Errorf("collect dishes: %w", err)
	}
	return dishes, nil
}

func (r *DishRepository) Page(ctx context.Context, df DishFilter, limit, offset int) ([]model.DishVO, int64, error) {
	q := database.Conn(ctx, r.pool)

	f := &filter{}
	if df.Name != "" {
		f.add("d.name ILIKE $%d", contains(df.Name))
	}
	if df.CategoryID != nil {
		f.add("d.category_id = $%d", *df.CategoryID)
	}
	if df.Status != nil {
		f.add("d.status = $%d", *df.Status)
	}

	total, err := count(ctx, q, "SELECT count(*) FROM dish d", f)
	if err != nil {
		return nil, 0, fmt.Errorf("count dishes: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	paging, args := f.page(limit, offset)
	rows, err := q.Query(ctx, `
		SELECT `+dishColumns+`, COALESCE(c.name, '') AS category_name
		FROM dish d LEFT JOIN category c ON c.id = d.category_id`+
		f.where()+" ORDER BY d.create_time DESC, d.id DESC"+paging, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query dishes: %w", err)
	}

	dishes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.DishVO])
	if err != nil {
		return nil, 0, fmt.Errorf("collect dishes: %w", err)
	}
	return dishes, total, nil
}

// ListEnabledByCategory returns the dishes on sale in a category.
func (r *DishRepository) ListEnabledByCategory(ctx context.Context, categoryID int64) ([]model.Dish, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		"SELECT "+dishColumns+" FROM dish d WHERE d.category_id = $1 AND d.status = $2 ORDER BY d.create_time DESC, d.id DESC",
		categoryID, model.StatusEnable)
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}

	dishes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Dish])
	if err != nil {
		return nil, fmt.Errorf("collect dishes: %w", err)
	}
	return dishes, nil
}

// ListBySetmealID returns the dishes referenced by a setmeal.
func (r *DishRepository) ListBySetmealID(ctx context.Context, setmealID int64) ([]model.Dish, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx, `
		SELECT `+dishColumns+`
		FROM dish d JOIN setmeal_dish sd ON sd.dish_id = d.id
		WHERE sd.setmeal_id = $1
		ORDER BY d.id`, setmealID)
	if err != nil {
		return nil, fmt.Errorf("query setmeal dishes: %w", err)
	}

	dishes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Dish])
	if err != nil {
		return nil, fmt.Errorf("collect setmeal dishes: %w", err)
	}
	return dishes, nil
}

func (r *DishRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		"SELECT count(*) FROM dish WHERE category_id = $1", categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count dishes by category: %w", err)
	}
	return n, nil
}

func (r *DishRepository) Update(ctx context.Context, d *model.Dish) error {
	audit.Fill(ctx, audit.Update, d)

	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE dish
		SET name = $1, category_id = $2, price = $3, image = $4, description = $5, status = $6,
			update_time = $7, update_user = $8
		WHERE id = $9`,
		d.Name, d.CategoryID, d.Price, d.Image, d.Description, d.Status,
		d.UpdateTime, d.UpdateUser, d.ID,
	))
}

func (r *DishRepository) UpdateStatus(ctx context.Context, id int64, status int) error {
	f := &audit.Fields{}
	audit.Fill(ctx, audit.Update, f)

	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE dish SET status = $1, update_time = $2, update_user = $3 WHERE id = $4`,
		status, f.UpdateTime, f.UpdateUser, id,
	))
}

func (r *DishRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if _, err := database.Conn(ctx, r.pool).Exec(ctx, "DELETE FROM dish WHERE id = ANY($1)", ids); err != nil {
		return fmt.Errorf("delete dishes: %w", err)
	}
	return nil
}

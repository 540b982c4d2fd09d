package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/database"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, name, username, password, phone, sex, id_number, status,
	create_time, update_time, create_user, update_user`

type EmployeeRepository struct {
	pool database.Pool
}

func NewEmployeeRepository(pool database.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *model.Employee) error {
	audit.Fill(ctx, audit.Insert, e)

	err := database.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO employee (name, username, password, phone, sex, id_number, status,
			create_time, update_time, create_user, update_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		e.Name, e.Username, e.Password, e.Phone, e.Sex, e.IDNumber, e.Status,
		e.CreateTime, e.UpdateTime, e.CreateUser, e.UpdateUser,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*model.Employee, error) {
	return r.getOne(ctx, "username = $1", username)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *EmployeeRepository) getOne(ctx context.Context, cond string, arg any) (*model.Employee, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx,
		"SELECT "+employeeColumns+" FROM employee WHERE "+cond, arg)
	if err != nil {
		return nil, fmt.Errorf("query employee: %w", err)
	}

	e, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Employee])
	if err != nil {
		return nil, fmt.Errorf("collect employee: %w", err)
	}
	return e, nil
}

// Page lists employees whose name contains name, newest first.
func (r *EmployeeRepository) Page(ctx context.Context, name string, limit, offset int) ([]model.Employee, int64, error) {
	q := database.Conn(ctx, r.pool)

	f := &filter{}
	if name != "" {
		f.add("name ILIKE $%d", contains(name))
	}

	total, err := count(ctx, q, "SELECT count(*) FROM employee", f)
	if err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	paging, args := f.page(limit, offset)
	rows, err := q.Query(ctx,
		"SELECT "+employeeColumns+" FROM employee"+f.where()+" ORDER BY create_time DESC, id DESC"+paging,
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query employees: %w", err)
	}

	employees, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Employee])
	if err != nil {
		return nil, 0, fmt.Errorf("collect employees: %w", err)
	}
	return employees, total, nil
}

// Update writes the descriptive fields. Password and status are left alone.
func (r *EmployeeRepository) Update(ctx context.Context, e *model.Employee) error {
	audit.Fill(ctx, audit.Update, e)

	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE employee
		SET name = $1, username = $2, phone = $3, sex = $4, id_number = $5,
			update_time = $6, update_user = $7
		WHERE id = $8`,
		e.Name, e.Username, e.Phone, e.Sex, e.IDNumber, e.UpdateTime, e.UpdateUser, e.ID,
	))
}

func (r *EmployeeRepository) UpdateStatus(ctx context.Context, id int64, status int) error {
	f := &audit.Fields{}
	audit.Fill(ctx, audit.Update, f)

	return expectOne(database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE employee SET status = $1, update_time = $2, update_user = $3 WHERE id = $4`,
		status, f.UpdateTime, f.UpdateUser, id,
	))
}

// UpdatePassword replaces the stored hash. It is a credential upgrade, not an
// edit by an operator, so the audit fields are not touched.
func (r *EmployeeRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return expectOne(database.Conn(ctx, r.pool).Exec(ctx,
		"UPDATE employee SET password = $1 WHERE id = $2", hash, id))
}

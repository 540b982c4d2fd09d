package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/lib/utils"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type EmployeeStore interface {
	Create(ctx context.Context, e *model.Employee) error
	GetByUsername(ctx context.Context, username string) (*model.Employee, error)
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	Page(ctx context.Context, name string, limit, offset int) ([]model.Employee, int64, error)
	Update(ctx context.Context, e *model.Employee) error
	UpdateStatus(ctx context.Context, id int64, status int) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type TokenIssuer interface {
	Issue(empID int64) (string, error)
}

type EmployeeService struct {
	employees EmployeeStore
	tokens    TokenIssuer
	logger    *zerolog.Logger
}

func NewEmployeeService(employees EmployeeStore, tokens TokenIssuer, logger *zerolog.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, tokens: tokens, logger: logger}
}

// Login checks the credentials and issues a session token.
// A password still stored in the legacy digest format is rehashed with bcrypt.
func (s *EmployeeService) Login(ctx context.Context, req *model.EmployeeLoginRequest) (*model.EmployeeLoginResponse, error) {
	e, err := s.employees.GetByUsername(ctx, req.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	ok, legacy, err := utils.VerifyPassword(e.Password, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password of employee %d: %w", e.ID, err)
	}
	if !ok {
		return nil, errs.ErrPasswordError
	}

	if e.Status == model.StatusDisable {
		return nil, errs.ErrAccountLocked
	}

	if legacy {
		s.upgradePassword(ctx, e.ID, req.Password)
	}

	token, err := s.tokens.Issue(e.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &model.EmployeeLoginResponse{
		ID:       e.ID,
		UserName: e.Username,
		Name:     e.Name,
		Token:    token,
	}, nil
}

// upgradePassword never fails the login, the digest keeps working until the next attempt.
func (s *EmployeeService) upgradePassword(ctx context.Context, id int64, password string) {
	hash, err := utils.HashPassword(password)
	if err == nil {
		err = s.employees.UpdatePassword(ctx, id, hash)
	}
	if err != nil {
		s.logger.Warn().Err(err).Int64("employee_id", id).Msg("failed to upgrade legacy password hash")
		return
	}
	s.logger.Info().Int64("employee_id", id).Msg("upgraded legacy password hash")
}

// Create stores a new enabled employee with the default password.
func (s *EmployeeService) Create(ctx context.Context, req *model.CreateEmployeeRequest) (*model.Employee, error) {
	hash, err := utils.HashPassword(model.DefaultPassword)
	if err != nil {
		return nil, err
	}

	e := &model.Employee{
		Name:     req.Name,
		Username: req.Username,
		Password: hash,
		Phone:    req.Phone,
		Sex:      req.Sex,
		IDNumber: req.IDNumber,
		Status:   model.StatusEnable,
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) Page(ctx context.Context, q *model.EmployeePageQuery) (*model.PageResult[model.Employee], error) {
	records, total, err := s.employees.Page(ctx, q.Name, q.Limit(), q.Offset())
	if err != nil {
		return nil, err
	}
	return model.NewPageResult(total, records), nil
}

func (s *EmployeeService) SetStatus(ctx context.Context, id int64, status int) error {
	return notFound(s.employees.UpdateStatus(ctx, id, status), "employee")
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "employee")
	}
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, req *model.UpdateEmployeeRequest) error {
	e := &model.Employee{
		ID:       req.ID,
		Name:     req.Name,
		Username: req.Username,
		Phone:    req.Phone,
		Sex:      req.Sex,
		IDNumber: req.IDNumber,
	}
	return notFound(s.employees.Update(ctx, e), "employee")
}

package service

import (
	"context"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/model"
)

type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	Page(ctx context.Context, name string, categoryType *int, limit, offset int) ([]model.Category, int64, error)
	ListEnabled(ctx context.Context, categoryType *int) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	UpdateStatus(ctx context.Context, id int64, status int) error
	Delete(ctx context.Context, id int64) error
}

// CategoryUsage counts the rows of one kind that reference a category.
type CategoryUsage interface {
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}

type CategoryService struct {
	categories CategoryStore
	dishes     CategoryUsage
	setmeals   CategoryUsage
}

func NewCategoryService(categories CategoryStore, dishes, setmeals CategoryUsage) *CategoryService {
	return &CategoryService{categories: categories, dishes: dishes, setmeals: setmeals}
}

// Create stores a category disabled, it is enabled explicitly once populated.
func (s *CategoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	c := &model.Category{
		Type:   req.Type,
		Name:   req.Name,
		Sort:   req.Sort,
		Status: model.StatusDisable,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Page(ctx context.Context, q *model.CategoryPageQuery) (*model.PageResult[model.Category], error) {
	records, total, err := s.categories.Page(ctx, q.Name, model.OptionalInt(q.Type), q.Limit(), q.Offset())
	if err != nil {
		return nil, err
	}
	return model.NewPageResult(total, records), nil
}

func (s *CategoryService) List(ctx context.Context, q *model.CategoryListQuery) ([]model.Category, error) {
	categories, err := s.categories.ListEnabled(ctx, model.OptionalInt(q.Type))
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// Delete refuses while dishes, then setmeals, still reference the category.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	n, err := s.dishes.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.ErrCategoryRelatedByDish
	}

	n, err = s.setmeals.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.ErrCategoryRelatedBySetmeal
	}

	return notFound(s.categories.Delete(ctx, id), "category")
}

func (s *CategoryService) Update(ctx context.Context, req *model.UpdateCategoryRequest) error {
	c := &model.Category{
		ID:   req.ID,
		Type: req.Type,
		Name: req.Name,
		Sort: req.Sort,
	}
	return notFound(s.categories.Update(ctx, c), "category")
}

func (s *CategoryService) SetStatus(ctx context.Context, id int64, status int) error {
	return notFound(s.categories.UpdateStatus(ctx, id, status), "category")
}

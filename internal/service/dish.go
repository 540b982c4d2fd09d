package service

import (
	"context"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/repository"
	"github.com/rs/zerolog"
)

type DishStore interface {
	Create(ctx context.Context, d *model.Dish) error
	GetByID(ctx context.Context, id int64) (*model.DishVO, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Dish, error)
	Page(ctx context.Context, f repository.DishFilter, limit, offset int) ([]model.DishVO, int64, error)
	ListEnabledByCategory(ctx context.Context, categoryID int64) ([]model.Dish, error)
	Update(ctx context.Context, d *model.Dish) error
	UpdateStatus(ctx context.Context, id int64, status int) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}

type FlavorStore interface {
	InsertBatch(ctx context.Context, dishID int64, flavors []model.DishFlavor) error
	ListByDishID(ctx context.Context, dishID int64) ([]model.DishFlavor, error)
	DeleteByDishIDs(ctx context.Context, dishIDs []int64) error
}

// SetmealLinks answers which setmeals use a dish.
type SetmealLinks interface {
	SetmealIDsByDishIDs(ctx context.Context, dishIDs []int64) ([]int64, error)
	CountEnabledByDishID(ctx context.Context, dishID int64) (int64, error)
}

type DishService struct {
	tx       Transactor
	dishes   DishStore
	flavors  FlavorStore
	setmeals SetmealLinks
	refs     ImageRefs
	images   ImageCleaner
	logger   *zerolog.Logger
}

func NewDishService(tx Transactor, dishes DishStore, flavors FlavorStore, setmeals SetmealLinks, refs ImageRefs, images ImageCleaner, logger *zerolog.Logger) *DishService {
	return &DishService{
		tx:       tx,
		dishes:   dishes,
		flavors:  flavors,
		setmeals: setmeals,
		refs:     refs,
		images:   images,
		logger:   logger,
	}
}

func toFlavors(reqs []model.FlavorRequest) []model.DishFlavor {
	flavors := make([]model.DishFlavor, len(reqs))
	for i, f := range reqs {
		flavors[i] = model.DishFlavor{Name: f.Name, Value: f.Value}
	}
	return flavors
}

// Create stores the dish and its flavors together. A dish without an
// explicit status goes on sale right away.
func (s *DishService) Create(ctx context.Context, req *model.CreateDishRequest) (*model.Dish, error) {
	d := &model.Dish{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Image:       req.Image,
		Description: req.Description,
		Status:      model.StatusEnable,
	}
	if req.Status != nil {
		d.Status = *req.Status
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.dishes.Create(ctx, d); err != nil {
			return err
		}
		return s.flavors.InsertBatch(ctx, d.ID, toFlavors(req.Flavors))
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DishService) Page(ctx context.Context, q *model.DishPageQuery) (*model.PageResult[model.DishVO], error) {
	f := repository.DishFilter{
		Name:       q.Name,
		CategoryID: model.OptionalInt64(q.CategoryID),
		Status:     model.OptionalInt(q.Status),
	}

	records, total, err := s.dishes.Page(ctx, f, q.Limit(), q.Offset())
	if err != nil {
		return nil, err
	}
	return model.NewPageResult(total, records), nil
}

// Delete removes dishes and their flavors. Ids that do not exist are ignored.
func (s *DishService) Delete(ctx context.Context, ids []int64) error {
	var images []string

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		dishes, err := s.dishes.ListByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, d := range dishes {
			if d.Status == model.StatusEnable {
				return errs.ErrDishOnSale
			}
		}

		linked, err := s.setmeals.SetmealIDsByDishIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(linked) > 0 {
			return errs.ErrDishRelatedBySetmeal
		}

		if err := s.dishes.DeleteByIDs(ctx, ids); err != nil {
			return err
		}
		if err := s.flavors.DeleteByDishIDs(ctx, ids); err != nil {
			return err
		}

		urls := make([]string, len(dishes))
		for i, d := range dishes {
			urls[i] = d.Image
		}
		images, err = orphanedImages(ctx, s.refs, urls...)
		return err
	})
	if err != nil {
		return err
	}

	cleanupImages(ctx, s.images, s.logger, images...)
	return nil
}

// GetByID returns the dish with its category name and flavors.
func (s *DishService) GetByID(ctx context.Context, id int64) (*model.DishVO, error) {
	vo, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "dish")
	}

	flavors, err := s.flavors.ListByDishID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flavors == nil {
		flavors = []model.DishFlavor{}
	}
	vo.Flavors = flavors
	return vo, nil
}

// Update rewrites the dish and replaces its flavors. A nil status keeps the current one.
func (s *DishService) Update(ctx context.Context, req *model.UpdateDishRequest) error {
	var images []string

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.dishes.GetByID(ctx, req.ID)
		if err != nil {
			return notFound(err, "dish")
		}

		d := &model.Dish{
			ID:          req.ID,
			Name:        req.Name,
			CategoryID:  req.CategoryID,
			Price:       req.Price,
			Image:       req.Image,
			Description: req.Description,
			Status:      current.Status,
		}
		if req.Status != nil {
			d.Status = *req.Status
		}

		if d.Status == model.StatusDisable && current.Status == model.StatusEnable {
			if err := s.ensureNotInEnabledSetmeal(ctx, d.ID); err != nil {
				return err
			}
		}

		if err := s.dishes.Update(ctx, d); err != nil {
			return notFound(err, "dish")
		}
		if err := s.flavors.DeleteByDishIDs(ctx, []int64{d.ID}); err != nil {
			return err
		}
		if err := s.flavors.InsertBatch(ctx, d.ID, toFlavors(req.Flavors)); err != nil {
			return err
		}

		if current.Image == d.Image {
			return nil
		}
		images, err = orphanedImages(ctx, s.refs, current.Image)
		return err
	})
	if err != nil {
		return err
	}

	cleanupImages(ctx, s.images, s.logger, images...)
	return nil
}

// List returns the dishes on sale in a category.
func (s *DishService) List(ctx context.Context, categoryID int64) ([]model.Dish, error) {
	dishes, err := s.dishes.ListEnabledByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if dishes == nil {
		dishes = []model.Dish{}
	}
	return dishes, nil
}

// SetStatus refuses to take a dish off sale while an enabled setmeal contains it.
func (s *DishService) SetStatus(ctx context.Context, id int64, status int) error {
	if status == model.StatusDisable {
		if err := s.ensureNotInEnabledSetmeal(ctx, id); err != nil {
			return err
		}
	}
	return notFound(s.dishes.UpdateStatus(ctx, id, status), "dish")
}

func (s *DishService) ensureNotInEnabledSetmeal(ctx context.Context, id int64) error {
	n, err := s.setmeals.CountEnabledByDishID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.ErrDishInSetmealOnSale
	}
	return nil
}

// cleanupImages enqueues removal of orphaned images once the transaction has committed.
// A failed enqueue leaves an orphaned blob, it never fails the request.
func cleanupImages(ctx context.Context, images ImageCleaner, logger *zerolog.Logger, urls ...string) {
	if images == nil {
		return
	}
	for _, url := range urls {
		if err := images.EnqueueImageCleanup(ctx, url); err != nil {
			logger.Warn().Err(err).Str("url", url).Msg("failed to enqueue image cleanup")
		}
	}
}

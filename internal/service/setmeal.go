package service

import (
	"context"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/repository"
	"github.com/rs/zerolog"
)

type SetmealStore interface {
	Create(ctx context.Context, s *model.Setmeal) error
	GetByID(ctx context.Context, id int64) (*model.SetmealVO, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Setmeal, error)
	Page(ctx context.Context, f repository.SetmealFilter, limit, offset int) ([]model.SetmealVO, int64, error)
	Update(ctx context.Context, s *model.Setmeal) error
	UpdateStatus(ctx context.Context, id int64, status int) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}

type SetmealDishStore interface {
	InsertBatch(ctx context.Context, setmealID int64, dishes []model.SetmealDish) error
	ListBySetmealID(ctx context.Context, setmealID int64) ([]model.SetmealDish, error)
	DeleteBySetmealIDs(ctx context.Context, setmealIDs []int64) error
}

// DishLookup loads the dishes a setmeal is built from.
type DishLookup interface {
	ListByIDs(ctx context.Context, ids []int64) ([]model.Dish, error)
	ListBySetmealID(ctx context.Context, setmealID int64) ([]model.Dish, error)
}

type SetmealService struct {
	tx            Transactor
	setmeals      SetmealStore
	setmealDishes SetmealDishStore
	dishes        DishLookup
	refs          ImageRefs
	images        ImageCleaner
	logger        *zerolog.Logger
}

func NewSetmealService(tx Transactor, setmeals SetmealStore, setmealDishes SetmealDishStore, dishes DishLookup, refs ImageRefs, images ImageCleaner, logger *zerolog.Logger) *SetmealService {
	return &SetmealService{
		tx:            tx,
		setmeals:      setmeals,
		setmealDishes: setmealDishes,
		dishes:        dishes,
		refs:          refs,
		images:        images,
		logger:        logger,
	}
}

func toSetmealDishes(reqs []model.SetmealDishRequest) []model.SetmealDish {
	dishes := make([]model.SetmealDish, len(reqs))
	for i, d := range reqs {
		dishes[i] = model.SetmealDish{
			DishID: d.DishID,
			Name:   d.Name,
			Price:  d.Price,
			Copies: d.Copies,
		}
	}
	return dishes
}

// checkDishes verifies every referenced dish exists and, for an enabled
// setmeal, that each one is on sale.
func (s *SetmealService) checkDishes(ctx context.Context, reqs []model.SetmealDishRequest, status int) error {
	if len(reqs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(reqs))
	seen := make(map[int64]struct{}, len(reqs))
	for _, d := range reqs {
		if _, ok := seen[d.DishID]; ok {
			continue
		}
		seen[d.DishID] = struct{}{}
		ids = append(ids, d.DishID)
	}

	dishes, err := s.dishes.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(dishes) != len(ids) {
		return errs.NotFound("dish")
	}

	if status == model.StatusEnable {
		return requireEnabled(dishes)
	}
	return nil
}

func requireEnabled(dishes []model.Dish) error {
	for _, d := range dishes {
		if d.Status == model.StatusDisable {
			return errs.ErrSetmealEnableFailed
		}
	}
	return nil
}

// Create stores the setmeal with its dishes. Without an explicit status the
// setmeal starts disabled.
func (s *SetmealService) Create(ctx context.Context, req *model.CreateSetmealRequest) (*model.Setmeal, error) {
	sm := &model.Setmeal{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Status:      model.StatusDisable,
		Description: req.Description,
		Image:       req.Image,
	}
	if req.Status != nil {
		sm.Status = *req.Status
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.checkDishes(ctx, req.SetmealDishes, sm.Status); err != nil {
			return err
		}
		if err := s.setmeals.Create(ctx, sm); err != nil {
			return err
		}
		return s.setmealDishes.InsertBatch(ctx, sm.ID, toSetmealDishes(req.SetmealDishes))
	})
	if err != nil {
		return nil, err
	}
	return sm, nil
}

func (s *SetmealService) Page(ctx context.Context, q *model.SetmealPageQuery) (*model.PageResult[model.SetmealVO], error) {
	f := repository.SetmealFilter{
		Name:       q.Name,
		CategoryID: model.OptionalInt64(q.CategoryID),
		Status:     model.OptionalInt(q.Status),
	}

	records, total, err := s.setmeals.Page(ctx, f, q.Limit(), q.Offset())
	if err != nil {
		return nil, err
	}
	return model.NewPageResult(total, records), nil
}

// Delete removes setmeals and their dish rows. Ids that do not exist are ignored.
func (s *SetmealService) Delete(ctx context.Context, ids []int64) error {
	var images []string

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		setmeals, err := s.setmeals.ListByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, sm := range setmeals {
			if sm.Status == model.StatusEnable {
				return errs.ErrSetmealOnSale
			}
		}

		if err := s.setmeals.DeleteByIDs(ctx, ids); err != nil {
			return err
		}
		if err := s.setmealDishes.DeleteBySetmealIDs(ctx, ids); err != nil {
			return err
		}

		urls := make([]string, len(setmeals))
		for i, sm := range setmeals {
			urls[i] = sm.Image
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

// GetByID returns the setmeal with its category name and dish rows.
func (s *SetmealService) GetByID(ctx context.Context, id int64) (*model.SetmealVO, error) {
	vo, err := s.setmeals.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "setmeal")
	}

	dishes, err := s.setmealDishes.ListBySetmealID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dishes == nil {
		dishes = []model.SetmealDish{}
	}
	vo.SetmealDishes = dishes
	return vo, nil
}

// Update rewrites the setmeal and replaces its dish rows. A nil status keeps the current one.
func (s *SetmealService) Update(ctx context.Context, req *model.UpdateSetmealRequest) error {
	var images []string

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.setmeals.GetByID(ctx, req.ID)
		if err != nil {
			return notFound(err, "setmeal")
		}

		sm := &model.Setmeal{
			ID:          req.ID,
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Price:       req.Price,
			Status:      current.Status,
			Description: req.Description,
			Image:       req.Image,
		}
		if req.Status != nil {
			sm.Status = *req.Status
		}

		if err := s.checkDishes(ctx, req.SetmealDishes, sm.Status); err != nil {
			return err
		}
		if err := s.setmeals.Update(ctx, sm); err != nil {
			return notFound(err, "setmeal")
		}
		if err := s.setmealDishes.DeleteBySetmealIDs(ctx, []int64{sm.ID}); err != nil {
			return err
		}
		if err := s.setmealDishes.InsertBatch(ctx, sm.ID, toSetmealDishes(req.SetmealDishes)); err != nil {
			return err
		}

		if current.Image == sm.Image {
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

// SetStatus refuses to enable a setmeal while any of its dishes is disabled.
func (s *SetmealService) SetStatus(ctx context.Context, id int64, status int) error {
	if status == model.StatusEnable {
		dishes, err := s.dishes.ListBySetmealID(ctx, id)
		if err != nil {
			return err
		}
		if err := requireEnabled(dishes); err != nil {
			return err
		}
	}
	return notFound(s.setmeals.UpdateStatus(ctx, id, status), "setmeal")
}

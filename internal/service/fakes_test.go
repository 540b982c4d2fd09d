package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/deppfellow/sky-takeout/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var nopLogger = zerolog.Nop()

type fakeTx struct {
	calls int
}

func (f *fakeTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeImages struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakeImages) EnqueueImageCleanup(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return f.err
}

type fakeEmployees struct {
	byUsername    map[string]*model.Employee
	created       *model.Employee
	passwordFor   int64
	passwordHash  string
	passwordErr   error
	updateErr     error
	statusUpdated map[int64]int
}

func (f *fakeEmployees) Create(_ context.Context, e *model.Employee) error {
	e.ID = 100
	f.created = e
	return nil
}

func (f *fakeEmployees) GetByUsername(_ context.Context, username string) (*model.Employee, error) {
	if e, ok := f.byUsername[username]; ok {
		return e, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployees) GetByID(_ context.Context, id int64) (*model.Employee, error) {
	for _, e := range f.byUsername {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployees) Page(context.Context, string, int, int) ([]model.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployees) Update(context.Context, *model.Employee) error {
	return f.updateErr
}

func (f *fakeEmployees) UpdateStatus(_ context.Context, id int64, status int) error {
	if f.statusUpdated == nil {
		f.statusUpdated = map[int64]int{}
	}
	f.statusUpdated[id] = status
	return nil
}

func (f *fakeEmployees) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.passwordFor = id
	f.passwordHash = hash
	return f.passwordErr
}

type fakeTokens struct{}

func (fakeTokens) Issue(empID int64) (string, error) {
	return "token-for-employee", nil
}

type fakeCategories struct {
	deleted []int64
	missing bool
}

func (f *fakeCategories) Create(_ context.Context, c *model.Category) error {
	c.ID = 1
	return nil
}

func (f *fakeCategories) Page(context.Context, string, *int, int, int) ([]model.Category, int64, error) {
	return nil, 0, nil
}

func (f *fakeCategories) ListEnabled(context.Context, *int) ([]model.Category, error) {
	return nil, nil
}

func (f *fakeCategories) Update(context.Context, *model.Category) error { return nil }

func (f *fakeCategories) UpdateStatus(context.Context, int64, int) error { return nil }

func (f *fakeCategories) Delete(_ context.Context, id int64) error {
	if f.missing {
		return pgx.ErrNoRows
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUsage int64

func (f fakeUsage) CountByCategory(context.Context, int64) (int64, error) {
	return int64(f), nil
}

// fakeCatalog keeps dishes, flavors, setmeals and their links in memory and
// serves every store interface of the dish and setmeal services.
type fakeCatalog struct {
	dishes        map[int64]*model.Dish
	flavors       map[int64][]model.DishFlavor
	setmeals      map[int64]*model.Setmeal
	setmealDishes map[int64][]model.SetmealDish
	nextID        int64
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		dishes:        map[int64]*model.Dish{},
		flavors:       map[int64][]model.DishFlavor{},
		setmeals:      map[int64]*model.Setmeal{},
		setmealDishes: map[int64][]model.SetmealDish{},
		nextID:        1000,
	}
}

func (c *fakeCatalog) addDish(id int64, status int, image string) {
	c.dishes[id] = &model.Dish{ID: id, Name: "dish", Status: status, Image: image}
}

func (c *fakeCatalog) addSetmeal(id int64, status int, image string, dishIDs ...int64) {
	c.setmeals[id] = &model.Setmeal{ID: id, Name: "setmeal", Status: status, Image: image}
	for _, d := range dishIDs {
		c.setmealDishes[id] = append(c.setmealDishes[id], model.SetmealDish{SetmealID: id, DishID: d, Copies: 1})
	}
}

type catalogDishes struct{ *fakeCatalog }

func (c catalogDishes) Create(_ context.Context, d *model.Dish) error {
	c.nextID++
	d.ID = c.nextID
	cp := *d
	c.dishes[d.ID] = &cp
	return nil
}

func (c catalogDishes) GetByID(_ context.Context, id int64) (*model.DishVO, error) {
	d, ok := c.dishes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &model.DishVO{Dish: *d, CategoryName: "Mains"}, nil
}

func (c catalogDishes) ListByIDs(_ context.Context, ids []int64) ([]model.Dish, error) {
	var out []model.Dish
	for _, id := range ids {
		if d, ok := c.dishes[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (c catalogDishes) Page(context.Context, repository.DishFilter, int, int) ([]model.DishVO, int64, error) {
	return nil, 0, nil
}

func (c catalogDishes) ListEnabledByCategory(context.Context, int64) ([]model.Dish, error) {
	return nil, nil
}

func (c catalogDishes) ListBySetmealID(_ context.Context, setmealID int64) ([]model.Dish, error) {
	var out []model.Dish
	for _, sd := range c.setmealDishes[setmealID] {
		if d, ok := c.dishes[sd.DishID]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (c catalogDishes) Update(_ context.Context, d *model.Dish) error {
	if _, ok := c.dishes[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *d
	c.dishes[d.ID] = &cp
	return nil
}

func (c catalogDishes) UpdateStatus(_ context.Context, id int64, status int) error {
	d, ok := c.dishes[id]
	if !ok {
		return pgx.ErrNoRows
	}
	d.Status = status
	return nil
}

func (c catalogDishes) DeleteByIDs(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(c.dishes, id)
	}
	return nil
}

type catalogFlavors struct{ *fakeCatalog }

func (c catalogFlavors) InsertBatch(_ context.Context, dishID int64, flavors []model.DishFlavor) error {
	for _, f := range flavors {
		f.DishID = dishID
		c.flavors[dishID] = append(c.flavors[dishID], f)
	}
	return nil
}

func (c catalogFlavors) ListByDishID(_ context.Context, dishID int64) ([]model.DishFlavor, error) {
	return c.flavors[dishID], nil
}

func (c catalogFlavors) DeleteByDishIDs(_ context.Context, dishIDs []int64) error {
	for _, id := range dishIDs {
		delete(c.flavors, id)
	}
	return nil
}

type catalogLinks struct{ *fakeCatalog }

func (c catalogLinks) SetmealIDsByDishIDs(_ context.Context, dishIDs []int64) ([]int64, error) {
	var out []int64
	for setmealID, rows := range c.setmealDishes {
		for _, sd := range rows {
			for _, id := range dishIDs {
				if sd.DishID == id {
					out = append(out, setmealID)
				}
			}
		}
	}
	return out, nil
}

func (c catalogLinks) CountEnabledByDishID(_ context.Context, dishID int64) (int64, error) {
	var n int64
	for setmealID, rows := range c.setmealDishes {
		if c.setmeals[setmealID] == nil || c.setmeals[setmealID].Status != model.StatusEnable {
			continue
		}
		for _, sd := range rows {
			if sd.DishID == dishID {
				n++
				break
			}
		}
	}
	return n, nil
}

type catalogSetmeals struct{ *fakeCatalog }

func (c catalogSetmeals) Create(_ context.Context, s *model.Setmeal) error {
	c.nextID++
	s.ID = c.nextID
	cp := *s
	c.setmeals[s.ID] = &cp
	return nil
}

func (c catalogSetmeals) GetByID(_ context.Context, id int64) (*model.SetmealVO, error) {
	s, ok := c.setmeals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &model.SetmealVO{Setmeal: *s, CategoryName: "Combos"}, nil
}

func (c catalogSetmeals) ListByIDs(_ context.Context, ids []int64) ([]model.Setmeal, error) {
	var out []model.Setmeal
	for _, id := range ids {
		if s, ok := c.setmeals[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (c catalogSetmeals) Page(context.Context, repository.SetmealFilter, int, int) ([]model.SetmealVO, int64, error) {
	return nil, 0, nil
}

func (c catalogSetmeals) Update(_ context.Context, s *model.Setmeal) error {
	if _, ok := c.setmeals[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *s
	c.setmeals[s.ID] = &cp
	return nil
}

func (c catalogSetmeals) UpdateStatus(_ context.Context, id int64, status int) error {
	s, ok := c.setmeals[id]
	if !ok {
		return pgx.ErrNoRows
	}
	s.Status = status
	return nil
}

func (c catalogSetmeals) DeleteByIDs(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(c.setmeals, id)
	}
	return nil
}

type catalogSetmealDishes struct{ *fakeCatalog }

func (c catalogSetmealDishes) InsertBatch(_ context.Context, setmealID int64, dishes []model.SetmealDish) error {
	for _, d := range dishes {
		d.SetmealID = setmealID
		c.setmealDishes[setmealID] = append(c.setmealDishes[setmealID], d)
	}
	return nil
}

func (c catalogSetmealDishes) ListBySetmealID(_ context.Context, setmealID int64) ([]model.SetmealDish, error) {
	return c.setmealDishes[setmealID], nil
}

func (c catalogSetmealDishes) DeleteBySetmealIDs(_ context.Context, setmealIDs []int64) error {
	for _, id := range setmealIDs {
		delete(c.setmealDishes, id)
	}
	return nil
}

type catalogImages struct{ *fakeCatalog }

func (c catalogImages) ImageInUse(_ context.Context, url string) (bool, error) {
	for _, d := range c.dishes {
		if d.Image == url {
			return true, nil
		}
	}
	for _, s := range c.setmeals {
		if s.Image == url {
			return true, nil
		}
	}
	return false, nil
}

type fakeShop struct {
	status *int
	err    error
}

func (f *fakeShop) SetStatus(_ context.Context, status int) error {
	if f.err != nil {
		return f.err
	}
	f.status = &status
	return nil
}

func (f *fakeShop) GetStatus(context.Context) (*int, error) {
	return f.status, f.err
}

type fakeUploader struct {
	body string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.body = string(b)
	return "https://acct.blob.core.windows.net/sky-takeout/2026/10/" + filename, nil
}

var errBoom = errors.New("boom")

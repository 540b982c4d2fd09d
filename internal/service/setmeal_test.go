package service

import (
	"context"
	"testing"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSetmealService(catalog *fakeCatalog) (*SetmealService, *fakeImages) {
	images := &fakeImages{}
	svc := NewSetmealService(&fakeTx{}, catalogSetmeals{catalog}, catalogSetmealDishes{catalog}, catalogDishes{catalog}, catalogImages{catalog}, images, &nopLogger)
	return svc, images
}

func intPtr(v int) *int { return &v }

func setmealRequest(status *int, dishIDs ...int64) model.SetmealFields {
	f := model.SetmealFields{
		CategoryID: 3,
		Name:       "Lunch set",
		Price:      decimal.RequireFromString("32.00"),
		Status:     status,
	}
	for _, id := range dishIDs {
		f.SetmealDishes = append(f.SetmealDishes, model.SetmealDishRequest{
			DishID: id, Name: "dish", Price: decimal.NewFromInt(10), Copies: 1,
		})
	}
	return f
}

func TestCreateSetmeal_DefaultsToDisabled(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusDisable, "")
	svc, _ := newSetmealService(catalog)

	sm, err := svc.Create(context.Background(), &model.CreateSetmealRequest{SetmealFields: setmealRequest(nil, 1)})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDisable, sm.Status)
	require.Len(t, catalog.setmealDishes[sm.ID], 1)
	assert.Equal(t, sm.ID, catalog.setmealDishes[sm.ID][0].SetmealID)
}

func TestCreateSetmeal_EnabledWithDisabledDish(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "")
	catalog.addDish(2, model.StatusDisable, "")
	svc, _ := newSetmealService(catalog)

	_, err := svc.Create(context.Background(), &model.CreateSetmealRequest{
		SetmealFields: setmealRequest(intPtr(model.StatusEnable), 1, 2),
	})
	assert.ErrorIs(t, err, errs.ErrSetmealEnableFailed)
	assert.Empty(t, catalog.setmeals)
}

func TestCreateSetmeal_UnknownDish(t *testing.T) {
	catalog := newFakeCatalog()
	svc, _ := newSetmealService(catalog)

	_, err := svc.Create(context.Background(), &model.CreateSetmealRequest{SetmealFields: setmealRequest(nil, 99)})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "DISH_NOT_FOUND", httpErr.Code)
}

func TestDeleteSetmeal_OnSale(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addSetmeal(10, model.StatusEnable, "")
	svc, _ := newSetmealService(catalog)

	err := svc.Delete(context.Background(), []int64{10})
	assert.ErrorIs(t, err, errs.ErrSetmealOnSale)
	assert.Contains(t, catalog.setmeals, int64(10))
}

func TestDeleteSetmeal_RemovesDishRows(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "")
	catalog.addSetmeal(10, model.StatusDisable, "https://blob/set.png", 1)
	svc, images := newSetmealService(catalog)

	require.NoError(t, svc.Delete(context.Background(), []int64{10}))
	assert.Empty(t, catalog.setmeals)
	assert.Empty(t, catalog.setmealDishes)
	assert.Contains(t, catalog.dishes, int64(1), "dishes themselves are kept")
	assert.Equal(t, []string{"https://blob/set.png"}, images.urls)
}

func TestSetSetmealStatus_EnableWithDisabledDish(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "")
	catalog.addDish(2, model.StatusDisable, "")
	catalog.addSetmeal(10, model.StatusDisable, "", 1, 2)
	svc, _ := newSetmealService(catalog)

	err := svc.SetStatus(context.Background(), 10, model.StatusEnable)
	assert.ErrorIs(t, err, errs.ErrSetmealEnableFailed)
	assert.Equal(t, model.StatusDisable, catalog.setmeals[10].Status)
}

func TestSetSetmealStatus_Enable(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "")
	catalog.addSetmeal(10, model.StatusDisable, "", 1)
	svc, _ := newSetmealService(catalog)

	require.NoError(t, svc.SetStatus(context.Background(), 10, model.StatusEnable))
	assert.Equal(t, model.StatusEnable, catalog.setmeals[10].Status)
}

func TestSetSetmealStatus_DisableSkipsDishCheck(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(2, model.StatusDisable, "")
	catalog.addSetmeal(10, model.StatusEnable, "", 2)
	svc, _ := newSetmealService(catalog)

	require.NoError(t, svc.SetStatus(context.Background(), 10, model.StatusDisable))
}

func TestUpdateSetmeal_ReplacesDishRows(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "")
	catalog.addDish(2, model.StatusEnable, "")
	catalog.addSetmeal(10, model.StatusEnable, "", 1)
	svc, images := newSetmealService(catalog)

	err := svc.Update(context.Background(), &model.UpdateSetmealRequest{ID: 10, SetmealFields: setmealRequest(nil, 2)})
	require.NoError(t, err)

	require.Len(t, catalog.setmealDishes[10], 1)
	assert.Equal(t, int64(2), catalog.setmealDishes[10][0].DishID)
	assert.Equal(t, model.StatusEnable, catalog.setmeals[10].Status)
	assert.Empty(t, images.urls, "no image before or after")
}

func TestUpdateSetmeal_Missing(t *testing.T) {
	svc, _ := newSetmealService(newFakeCatalog())

	err := svc.Update(context.Background(), &model.UpdateSetmealRequest{ID: 10, SetmealFields: setmealRequest(nil)})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "SETMEAL_NOT_FOUND", httpErr.Code)
}

func TestDeleteSetmeal_KeepsImageSharedWithDish(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "https://blob/shared.png")
	catalog.addSetmeal(10, model.StatusDisable, "https://blob/shared.png")
	svc, images := newSetmealService(catalog)

	require.NoError(t, svc.Delete(context.Background(), []int64{10}))
	assert.Empty(t, catalog.setmeals)
	assert.Empty(t, images.urls)
}

func TestUpdateSetmeal_ReplacesOldImage(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "")
	catalog.addSetmeal(10, model.StatusDisable, "https://blob/old.png", 1)
	svc, images := newSetmealService(catalog)

	req := setmealRequest(nil, 1)
	req.Image = "https://blob/new.png"
	require.NoError(t, svc.Update(context.Background(), &model.UpdateSetmealRequest{ID: 10, SetmealFields: req}))
	assert.Equal(t, []string{"https://blob/old.png"}, images.urls)
}

func TestUpdateSetmeal_EnabledWithDisabledDish(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "")
	catalog.addDish(2, model.StatusDisable, "")
	catalog.addSetmeal(10, model.StatusDisable, "", 1)
	svc, _ := newSetmealService(catalog)

	err := svc.Update(context.Background(), &model.UpdateSetmealRequest{
		ID:            10,
		SetmealFields: setmealRequest(intPtr(model.StatusEnable), 1, 2),
	})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "SETMEAL_ENABLE_FAILED", httpErr.Code)
	assert.Equal(t, model.StatusDisable, catalog.setmeals[10].Status)
	require.Len(t, catalog.setmealDishes[10], 1, "dish rows are left alone")
}

func TestUpdateSetmeal_UnknownDish(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDish(1, model.StatusEnable, "")
	catalog.addSetmeal(10, model.StatusDisable, "", 1)
	svc, _ := newSetmealService(catalog)

	err := svc.Update(context.Background(), &model.UpdateSetmealRequest{ID: 10, SetmealFields: setmealRequest(nil, 1, 99)})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "DISH_NOT_FOUND", httpErr.Code)
	assert.Equal(t, int64(1), catalog.setmealDishes[10][0].DishID)
}

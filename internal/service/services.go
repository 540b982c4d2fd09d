package service

import (
	"github.com/deppfellow/sky-takeout/internal/database"
	"github.com/deppfellow/sky-takeout/internal/lib/job"
	"github.com/deppfellow/sky-takeout/internal/lib/token"
	"github.com/deppfellow/sky-takeout/internal/repository"
	"github.com/deppfellow/sky-takeout/internal/server"
)

type Services struct {
	Employee *EmployeeService
	Category *CategoryService
	Dish     *DishService
	Setmeal  *SetmealService
	Shop     *ShopService
	Common   *CommonService

	Token *token.Manager
	Job   *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	tokens := token.NewManager(s.Config.Auth.AdminSecretKey, s.Config.Auth.AdminTTL)
	tx := database.NewTransactor(s.DB.Pool)

	return &Services{
		Employee: NewEmployeeService(repos.Employee, tokens, s.Logger),
		Category: NewCategoryService(repos.Category, repos.Dish, repos.Setmeal),
		Dish: NewDishService(tx, repos.Dish, repos.DishFlavor,
			setmealLinks{repos.SetmealDish, repos.Setmeal}, repos.Image, s.Job, s.Logger),
		Setmeal: NewSetmealService(tx, repos.Setmeal, repos.SetmealDish, repos.Dish, repos.Image, s.Job, s.Logger),
		Shop:    NewShopService(repos.Shop, s.Logger),
		Common:  NewCommonService(s.Storage, s.Logger),
		Token:   tokens,
		Job:     s.Job,
	}, nil
}

// setmealLinks joins the two repositories that know about dish usage.
type setmealLinks struct {
	*repository.SetmealDishRepository
	*repository.SetmealRepository
}

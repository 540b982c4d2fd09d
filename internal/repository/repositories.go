package repository

import (
	"github.com/deppfellow/sky-takeout/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Employee    *EmployeeRepository
	Category    *CategoryRepository
	Dish        *DishRepository
	DishFlavor  *DishFlavorRepository
	Setmeal     *SetmealRepository
	SetmealDish *SetmealDishRepository
	Image       *ImageRepository
	Shop        *ShopRepository
}

// NewRepositories wires every repository to the shared pool and Redis client.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Employee:    NewEmployeeRepository(pool),
		Category:    NewCategoryRepository(pool),
		Dish:        NewDishRepository(pool),
		DishFlavor:  NewDishFlavorRepository(pool),
		Setmeal:     NewSetmealRepository(pool),
		SetmealDish: NewSetmealDishRepository(pool),
		Image:       NewImageRepository(pool),
		Shop:        NewShopRepository(s.Redis),
	}
}

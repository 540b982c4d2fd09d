package handler

import (
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/deppfellow/sky-takeout/internal/service"
)

// Handlers groups every HTTP handler so the router takes one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler

	Employee *EmployeeHandler
	Category *CategoryHandler
	Dish     *DishHandler
	Setmeal  *SetmealHandler
	Shop     *ShopHandler
	Common   *CommonHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Employee: NewEmployeeHandler(s, services.Employee),
		Category: NewCategoryHandler(s, services.Category),
		Dish:     NewDishHandler(s, services.Dish),
		Setmeal:  NewSetmealHandler(s, services.Setmeal),
		Shop:     NewShopHandler(s, services.Shop),
		Common:   NewCommonHandler(s, services.Common),
	}
}

package router

import (
	"github.com/deppfellow/sky-takeout/internal/handler"
	"github.com/deppfellow/sky-takeout/internal/middleware"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// registerAdminRoutes mounts /admin. Only login is reachable without a token.
func registerAdminRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.POST("/admin/employee/login", h.Employee.Login(), m.RateLimit.Login())

	admin := r.Group("/admin", m.Auth.RequireAuth, m.Tracing.EnhanceTracing())

	employee := admin.Group("/employee")
	employee.POST("/logout", h.Employee.Logout())
	employee.POST("", h.Employee.Create())
	employee.GET("/page", h.Employee.Page())
	employee.POST("/status/:status", h.Employee.SetStatus())
	employee.GET("/:id", h.Employee.GetByID())
	employee.PUT("", h.Employee.Update())

	category := admin.Group("/category")
	category.POST("", h.Category.Create())
	category.GET("/page", h.Category.Page())
	category.DELETE("", h.Category.Delete())
	category.PUT("", h.Category.Update())
	category.POST("/status/:status", h.Category.SetStatus())
	category.GET("/list", h.Category.List())

	dish := admin.Group("/dish")
	dish.POST("", h.Dish.Create())
	dish.GET("/page", h.Dish.Page())
	dish.DELETE("", h.Dish.Delete())
	dish.GET("/:id", h.Dish.GetByID())
	dish.PUT("", h.Dish.Update())
	dish.GET("/list", h.Dish.List())
	dish.POST("/status/:status", h.Dish.SetStatus())

	setmeal := admin.Group("/setmeal")
	setmeal.POST("", h.Setmeal.Create())
	setmeal.GET("/page", h.Setmeal.Page())
	setmeal.DELETE("", h.Setmeal.Delete())
	setmeal.GET("/:id", h.Setmeal.GetByID())
	setmeal.PUT("", h.Setmeal.Update())
	setmeal.POST("/status/:status", h.Setmeal.SetStatus())

	shop := admin.Group("/shop")
	shop.PUT("/:status", h.Shop.SetStatus())
	shop.GET("/status", h.Shop.GetStatus())

	common := admin.Group("/common")
	common.POST("/upload", h.Common.Upload(), echoMiddleware.BodyLimit(UploadBodyLimit))
}

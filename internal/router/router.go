// Package router builds the echo instance: the global middleware chain,
// the system routes and the /admin API groups.
package router

import (
	"github.com/deppfellow/sky-takeout/internal/handler"
	"github.com/deppfellow/sky-takeout/internal/middleware"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/deppfellow/sky-takeout/internal/service"
	"github.com/labstack/echo/v4"
)

// UploadBodyLimit caps multipart uploads.
const UploadBodyLimit = "10M"

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Token)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the context logger
	// picks it up, and Recover must sit inside the request logger.
	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerAdminRoutes(router, h, middlewares)

	return router
}

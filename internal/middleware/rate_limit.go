package middleware

import (
	"time"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	loginBurst     = 5
	loginStoreTTL  = 3 * time.Minute
	loginRateEvent = "RateLimitHit"
)

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// RecordRateLimitHit sends a custom event to New Relic when it is enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent(loginRateEvent, map[string]any{
			"endpoint": endpoint,
		})
	}
}

// Login limits login attempts per client IP, using an in-memory store.
func (r *RateLimitMiddleware) Login() echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(r.server.Config.Server.LoginRateLimit),
		Burst:     loginBurst,
		ExpiresIn: loginStoreTTL,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("client could not be identified", nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("login rate limit exceeded")
			return errs.NewTooManyRequestsError("too many login attempts, try again later")
		},
	})
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/sky-takeout/internal/middleware"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the process and its stores are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// dependencyCheck pings one dependency within the configured timeout.
type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

func (h *HealthHandler) checks() []dependencyCheck {
	cfg := h.server.Config.Observability.HealthChecks
	if !cfg.Enabled {
		return nil
	}

	var list []dependencyCheck
	for _, name := range cfg.Checks {
		switch name {
		case "database":
			if h.server.DB != nil {
				list = append(list, dependencyCheck{name: name, ping: h.server.DB.Pool.Ping})
			}
		case "redis":
			if h.server.Redis != nil {
				list = append(list, dependencyCheck{name: name, ping: func(ctx context.Context) error {
					return h.server.Redis.Ping(ctx).Err()
				}})
			}
		}
	}
	return list
}

// CheckHealth answers 200 when every check passes and 503 otherwise.
// Redis is required here because the shop status lives there.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}
	isHealthy := true

	for _, check := range h.checks() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Observability.HealthChecks.Timeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		cancel()

		if err != nil {
			isHealthy = false
			checks[check.name] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(checkStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":       check.name,
					"operation":        "health_check",
					"error_type":       check.name + "_unhealthy",
					"response_time_ms": time.Since(checkStart).Milliseconds(),
					"error_message":    err.Error(),
				})
			}
			continue
		}

		checks[check.name] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(checkStart).String(),
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

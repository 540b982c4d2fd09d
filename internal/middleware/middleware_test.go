package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/deppfellow/sky-takeout/internal/config"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestServer(logs *bytes.Buffer) *server.Server {
	l := zerolog.New(logs)
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				LoginRateLimit:     1,
			},
			Auth: config.AuthConfig{
				AdminSecretKey: testSecret,
				AdminTTL:       time.Hour,
				AdminTokenName: "token",
			},
		},
		Logger: &l,
	}
}

// newTestEcho mirrors the router's global chain.
func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	global := NewGlobalMiddlewares(s)
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

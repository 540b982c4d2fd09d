package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/sky-takeout/internal/config"
	"github.com/deppfellow/sky-takeout/internal/handler"
	"github.com/deppfellow/sky-takeout/internal/lib/token"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/deppfellow/sky-takeout/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// newTestRouter builds the real route table. Services are nil, so only
// requests rejected before the service layer can be exercised.
func newTestRouter(t *testing.T) (*echo.Echo, *token.Manager) {
	t.Helper()
	l := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				LoginRateLimit:     100,
			},
			Auth: config.AuthConfig{
				AdminSecretKey: testSecret,
				AdminTTL:       time.Hour,
				AdminTokenName: "token",
			},
		},
		Logger: &l,
	}

	tokens := token.NewManager(testSecret, time.Hour)
	h := &handler.Handlers{
		Health:   handler.NewHealthHandler(s),
		OpenAPI:  handler.NewOpenAPIHandler(s),
		Employee: handler.NewEmployeeHandler(s, nil),
		Category: handler.NewCategoryHandler(s, nil),
		Dish:     handler.NewDishHandler(s, nil),
		Setmeal:  handler.NewSetmealHandler(s, nil),
		Shop:     handler.NewShopHandler(s, nil),
		Common:   handler.NewCommonHandler(s, nil),
	}
	return NewRouter(s, h, &service.Services{Token: tokens}), tokens
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		ErrorCode string `json:"errorCode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.ErrorCode
}

func TestAdminRoutesRequireToken(t *testing.T) {
	e, _ := newTestRouter(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/admin/employee/page"},
		{http.MethodPost, "/admin/employee/logout"},
		{http.MethodDelete, "/admin/category?id=1"},
		{http.MethodGet, "/admin/dish/1"},
		{http.MethodPut, "/admin/setmeal"},
		{http.MethodPut, "/admin/shop/1"},
		{http.MethodGet, "/admin/shop/status"},
		{http.MethodPost, "/admin/common/upload"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "NOT_LOGIN", errorCode(t, rec))
		})
	}
}

func TestLoginIsPublic(t *testing.T) {
	e, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/employee/login", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Rejected by validation, so auth did not run.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidTokenReachesHandler(t *testing.T) {
	e, tokens := newTestRouter(t)
	raw, err := tokens.Issue(1)
	require.NoError(t, err)

	for _, set := range []func(*http.Request){
		func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+raw) },
		func(r *http.Request) { r.Header.Set("token", raw) },
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin/dish/0", nil)
		set(req)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

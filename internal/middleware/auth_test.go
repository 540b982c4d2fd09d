package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/lib/token"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seen struct {
	userID      string
	auditUserID int64
	hasAuditID  bool
}

func newAuthEcho(t *testing.T) (*echo.Echo, *token.Manager, *seen) {
	t.Helper()
	s := newTestServer(&bytes.Buffer{})
	tokens := token.NewManager(testSecret, time.Hour)
	got := &seen{}

	e := newTestEcho(s)
	admin := e.Group("/admin", NewAuthMiddleware(s, tokens).RequireAuth)
	admin.GET("/ping", func(c echo.Context) error {
		got.userID = GetUserID(c)
		got.auditUserID, got.hasAuditID = audit.UserID(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})
	return e, tokens, got
}

func assertNotLogin(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["code"])
	assert.Equal(t, "NOT_LOGIN", body["errorCode"])
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	e, tokens, got := newAuthEcho(t)
	tok, err := tokens.Issue(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)

	rec := serve(e, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "42", got.userID)
	assert.True(t, got.hasAuditID)
	assert.Equal(t, int64(42), got.auditUserID)
}

func TestRequireAuth_TokenHeader(t *testing.T) {
	e, tokens, got := newAuthEcho(t)
	tok, err := tokens.Issue(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("token", tok)

	rec := serve(e, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "7", got.userID)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	e, _, _ := newAuthEcho(t)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	assertNotLogin(t, rec)
}

func TestRequireAuth_InvalidTokens(t *testing.T) {
	e, _, _ := newAuthEcho(t)

	other := token.NewManager("ffffffffffffffffffffffffffffffff", time.Hour)
	forged, err := other.Issue(1)
	require.NoError(t, err)

	expiredManager := token.NewManager(testSecret, -time.Minute)
	expired, err := expiredManager.Issue(1)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"malformed":    "not-a-jwt",
		"wrong secret": forged,
		"expired":      expired,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
			assertNotLogin(t, serve(e, req))
		})
	}
}

package middleware

import (
	"strconv"
	"strings"

	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/lib/token"
	"github.com/deppfellow/sky-takeout/internal/server"
	"github.com/labstack/echo/v4"
)

// TokenParser validates a session token and returns its claims.
type TokenParser interface {
	Parse(tokenString string) (*token.Claims, error)
}

type AuthMiddleware struct {
	server *server.Server
	tokens TokenParser
}

func NewAuthMiddleware(s *server.Server, tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: tokens,
	}
}

// RequireAuth rejects requests without a valid employee token with 401 NOT_LOGIN.
//
// The token is read from "Authorization: Bearer <jwt>", falling back to the
// configured raw header the admin client sends. On success the employee id
// is put in the echo context, in the request context for audit stamping
// and on the request logger.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := auth.extractToken(c)
		if raw == "" {
			GetLogger(c).Warn().Msg("request without session token")
			return errs.ErrNotLogin
		}

		claims, err := auth.tokens.Parse(raw)
		if err != nil {
			GetLogger(c).Warn().Err(err).Msg("rejected session token")
			return errs.ErrNotLogin
		}

		userID := strconv.FormatInt(claims.EmpID, 10)
		c.Set(UserIDKey, userID)

		req := c.Request()
		c.SetRequest(req.WithContext(audit.WithUserID(req.Context(), claims.EmpID)))

		SetLogger(c, GetLogger(c).With().Str("user_id", userID).Logger())

		return next(c)
	}
}

func (auth *AuthMiddleware) extractToken(c echo.Context) string {
	header := c.Request().Header

	if authz := header.Get(echo.HeaderAuthorization); authz != "" {
		scheme, value, ok := strings.Cut(authz, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
	}

	return strings.TrimSpace(header.Get(auth.server.Config.Auth.AdminTokenName))
}

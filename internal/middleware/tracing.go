package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/sky-takeout/internal/audit"
	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/deppfellow/sky-takeout/internal/server"
)

// TracingMiddleware owns the New Relic middleware. With a nil nrApp every
// method degrades to a pass-through.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts a transaction per request, which makes
// newrelic.FromContext work further down the chain.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the admin transaction with the operator and route and
// reports failures. It runs after RequireAuth so the employee id is on the
// request context.
//
// Business rejections such as a dish still on sale are recorded as an
// error.code attribute only. Errors that render as 5xx are noticed.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.route", c.Path())

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			if empID, ok := audit.UserID(c.Request().Context()); ok {
				txn.AddAttribute("employee.id", empID)
			}

			err := next(c)
			if err == nil {
				txn.AddAttribute("http.status_code", c.Response().Status)
				return nil
			}

			rendered := renderedError(err)
			txn.AddAttribute("http.status_code", rendered.Status)
			txn.AddAttribute("error.code", rendered.Code)
			if noticeable(rendered) {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}
			return err
		}
	}
}

func noticeable(rendered *errs.HTTPError) bool {
	return rendered.Status >= http.StatusInternalServerError
}

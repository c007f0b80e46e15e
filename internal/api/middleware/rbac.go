package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/mikemajesty/admin-api/internal/api/metrics"
	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

// Operation is the identity a route is registered under in the permission
// registry: the method and the route template, e.g. "DELETE /api/v1/roles/:id".
func Operation(method, path string) string {
	return method + " " + path
}

// RequirePermission asks the authorizer whether the caller set by Auth may
// invoke the matched route.
func RequirePermission(authz ports.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			op := Operation(c.Request().Method, c.Path())
			userID, _ := c.Get(UserIDKey).(string)

			if err := authz.Authorize(c.Request().Context(), op, userID); err != nil {
				result := "denied"
				if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrMissingIdentity) {
					result = "unauthenticated"
				}
				metrics.AuthorizationDecisionsTotal.WithLabelValues(op, result).Inc()
				return err
			}

			metrics.AuthorizationDecisionsTotal.WithLabelValues(op, "granted").Inc()
			return next(c)
		}
	}
}

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	UserIDKey = "user_id"
	RolesKey  = "roles"
	ClaimsKey = "token_claims"
)

// Auth verifies the bearer token, rejects revoked tokens and tokens issued for
// anything but access, and injects the caller identity into the echo context.
func Auth(tokens ports.TokenService, revocations ports.TokenRevocationStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.NewError(domain.ErrUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.NewError(domain.ErrUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}
			if claims.UserID == "" || claims.Use != ports.TokenUseAccess {
				return domain.ErrInvalidToken
			}

			if claims.TokenID != "" {
				revoked, err := revocations.IsRevoked(c.Request().Context(), claims.TokenID)
				if err != nil {
					return err
				}
				if revoked {
					return domain.ErrTokenRevoked
				}
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(RolesKey, claims.Roles)
			c.Set(ClaimsKey, claims)

			return next(c)
		}
	}
}

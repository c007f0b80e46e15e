package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mikemajesty/admin-api/internal/api/middleware"
	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

// callerClaims returns the verified token claims injected by the Auth
// middleware. Their absence means the route was mounted without Auth.
func callerClaims(c echo.Context) (*ports.TokenClaims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*ports.TokenClaims)
	if claims == nil || claims.UserID == "" {
		return nil, domain.ErrMissingIdentity
	}
	return claims, nil
}

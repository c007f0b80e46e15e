package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mikemajesty/admin-api/internal/api/metrics"
	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges credentials for an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.LoginInput  true  "Login credentials"
// @Success      200   {object}  ports.TokenPair
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/v1/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var in ports.LoginInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := validate(c, &in); err != nil {
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), in)
	observe("login", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RefreshTokenInput  true  "Refresh token"
// @Success      200   {object}  ports.TokenPair
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var in ports.RefreshTokenInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := validate(c, &in); err != nil {
		return err
	}

	pair, err := h.authService.RefreshToken(c.Request().Context(), in)
	observe("refresh", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// Logout revokes the caller's access token and, optionally, a refresh token.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  logoutRequest  false  "Refresh token to revoke"
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req logoutRequest
	if c.Request().ContentLength != 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	err = h.authService.Logout(c.Request().Context(), ports.LogoutInput{
		AccessToken:  *claims,
		RefreshToken: req.RefreshToken,
	})
	observe("logout", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword changes the caller's own password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  ports.ChangePasswordInput  true  "Current and new password"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/users/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var in ports.ChangePasswordInput
	if err := bind(c, &in); err != nil {
		return err
	}
	in.ID = claims.UserID
	if err := validate(c, &in); err != nil {
		return err
	}

	err = h.authService.ChangePassword(c.Request().Context(), in)
	observe("change_password", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SendResetPasswordEmail starts the reset-password flow.
//
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Param        body  body  ports.SendResetPasswordEmailInput  true  "Account email"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/reset-password/send-email [post]
func (h *AuthHandler) SendResetPasswordEmail(c echo.Context) error {
	var in ports.SendResetPasswordEmailInput
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := validate(c, &in); err != nil {
		return err
	}

	err := h.authService.SendResetPasswordEmail(c.Request().Context(), in)
	observe("reset_send", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmResetPassword sets a new password using a reset token.
//
// @Summary      Confirm a password reset
// @Tags         auth
// @Accept       json
// @Param        token  path  string                           true  "Reset token"
// @Param        body   body  ports.ConfirmResetPasswordInput  true  "New password"
// @Success      204
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/v1/reset-password/{token} [post]
func (h *AuthHandler) ConfirmResetPassword(c echo.Context) error {
	var in ports.ConfirmResetPasswordInput
	if err := bind(c, &in); err != nil {
		return err
	}
	in.Token = c.Param("token")
	if err := validate(c, &in); err != nil {
		return err
	}

	err := h.authService.ConfirmResetPassword(c.Request().Context(), in)
	observe("reset_confirm", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// observe records the outcome of a credential operation.
func observe(operation string, err error) {
	metrics.AuthOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrBadRequest):
		return "bad_request"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

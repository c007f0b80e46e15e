package ports

import (
	"context"
)

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is the result of a login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenInput carries the refresh token to rotate.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutInput identifies the tokens to revoke. AccessToken is the already
// verified caller token; RefreshToken is optional.
type LogoutInput struct {
	AccessToken  TokenClaims
	RefreshToken string
}

// ChangePasswordInput carries a self-service password change.
type ChangePasswordInput struct {
	ID              string `json:"-" validate:"required"`
	Password        string `json:"password" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// SendResetPasswordEmailInput starts the reset flow.
type SendResetPasswordEmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmResetPasswordInput completes the reset flow.
type ConfirmResetPasswordInput struct {
	Token           string `json:"-" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// AuthService is the credential lifecycle.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*TokenPair, error)
	RefreshToken(ctx context.Context, in RefreshTokenInput) (*TokenPair, error)
	Logout(ctx context.Context, in LogoutInput) error
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
	SendResetPasswordEmail(ctx context.Context, in SendResetPasswordEmailInput) error
	ConfirmResetPassword(ctx context.Context, in ConfirmResetPasswordInput) error
}

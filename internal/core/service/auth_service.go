package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
	"github.com/mikemajesty/admin-api/internal/pkg/validation"
)

// AuthConfig holds the token lifetimes and the public base URL used to build
// reset links.
type AuthConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
	// ResetURL is the prefix the reset token is appended to.
	ResetURL string
}

// AuthDeps groups the collaborators of AuthService.
type AuthDeps struct {
	Users       ports.UserRepository
	ResetTokens ports.ResetTokenRepository
	Tokens      ports.TokenService
	Revocations ports.TokenRevocationStore
	Hasher      ports.PasswordHasher
	Emitter     ports.NotificationEmitter
	Transactor  ports.Transactor
}

// AuthService implements login, token refresh, logout, password change and
// the reset-password flow.
type AuthService struct {
	AuthDeps
	cfg AuthConfig
	log zerolog.Logger
	now func() time.Time
}

func NewAuthService(deps AuthDeps, cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 15 * time.Minute
	}
	cfg.ResetURL = strings.TrimRight(cfg.ResetURL, "/")
	return &AuthService{AuthDeps: deps, cfg: cfg, log: log, now: time.Now}
}

var _ ports.AuthService = (*AuthService)(nil)

// Login checks the password of the user identified by email and issues an
// access/refresh pair. A wrong password is a BadRequest, not Unauthorized.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.TokenPair, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}

	user, err := s.Users.FindByEmail(ctx, domain.NormalizeEmail(in.Email), domain.RelationRoles, domain.RelationCredential)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.checkPassword(user, in.Password); err != nil {
		return nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return pair, nil
}

// RefreshToken exchanges a valid refresh token for a new pair. The presented
// refresh token is not revoked: rotation is additive.
func (s *AuthService) RefreshToken(ctx context.Context, in ports.RefreshTokenInput) (*ports.TokenPair, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}

	claims, err := s.verifyAs(in.RefreshToken, ports.TokenUseRefresh)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, domain.ErrTokenMissingSubject
	}
	if err := s.ensureNotRevoked(ctx, claims.TokenID); err != nil {
		return nil, err
	}

	user, err := s.Users.FindByID(ctx, claims.UserID, domain.RelationRoles)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if len(user.Roles) == 0 {
		return nil, domain.ErrRoleNotFound
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return pair, nil
}

// Logout revokes the caller's access token and, when given, its refresh token
// until their natural expiry.
func (s *AuthService) Logout(ctx context.Context, in ports.LogoutInput) error {
	if in.AccessToken.TokenID == "" {
		return domain.ErrInvalidToken
	}

	// Check the refresh token first so a rejected logout revokes nothing.
	var refresh *ports.TokenClaims
	if in.RefreshToken != "" {
		claims, err := s.verifyAs(in.RefreshToken, ports.TokenUseRefresh)
		if err != nil {
			return err
		}
		if claims.UserID != in.AccessToken.UserID {
			return domain.ErrInvalidToken
		}
		refresh = claims
	}

	if err := s.Revocations.Revoke(ctx, in.AccessToken.TokenID, in.AccessToken.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if refresh != nil {
		if err := s.Revocations.Revoke(ctx, refresh.TokenID, refresh.ExpiresAt); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}

	s.log.Info().Str("user_id", in.AccessToken.UserID).Msg("user logged out")
	return nil
}

// ChangePassword verifies the current password, then stores the hash of the
// new one by re-persisting the user aggregate.
func (s *AuthService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	if err := validation.Struct(in); err != nil {
		return domain.Validation(err.Error())
	}

	user, err := s.Users.FindByID(ctx, in.ID, domain.RelationRoles, domain.RelationCredential)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.checkPassword(user, in.Password); err != nil {
		return err
	}
	if in.NewPassword != in.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}

	if err := s.setPassword(user, in.NewPassword); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// SendResetPasswordEmail emits a reset link for the user owning email. An
// active token is reused so a user never holds more than one.
func (s *AuthService) SendResetPasswordEmail(ctx context.Context, in ports.SendResetPasswordEmailInput) error {
	if err := validation.Struct(in); err != nil {
		return domain.Validation(err.Error())
	}

	user, err := s.Users.FindByEmail(ctx, domain.NormalizeEmail(in.Email))
	if err != nil {
		return fmt.Errorf("send reset password email: %w", err)
	}

	token, err := s.activeResetToken(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("send reset password email: %w", err)
	}

	s.Emitter.Emit(ctx, domain.Notification{
		Event:     domain.EventResetPasswordRequested,
		Recipient: user.Email,
		Subject:   "Reset password",
		Data: map[string]string{
			"name": user.Name,
			"link": s.cfg.ResetURL + "/" + token.Token,
		},
		OccurredAt: s.now().UTC(),
	})

	s.log.Info().Str("user_id", user.ID).Str("reset_token_id", token.ID).Msg("reset password requested")
	return nil
}

// activeResetToken returns the user's usable token row, minting one when none
// exists. Rows whose token no longer verifies are replaced.
func (s *AuthService) activeResetToken(ctx context.Context, userID string) (*domain.ResetToken, error) {
	existing, err := s.ResetTokens.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if _, verr := s.verifyAs(existing.Token, ports.TokenUseReset); verr == nil {
			return existing, nil
		}
		if err := s.ResetTokens.Remove(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	signed, err := s.Tokens.Sign(ports.TokenPayload{UserID: userID, Use: ports.TokenUseReset}, ports.WithExpiry(s.cfg.ResetTTL))
	if err != nil {
		return nil, err
	}
	row := domain.NewResetToken(uuid.NewString(), signed, userID, s.now().UTC())

	if err := s.ResetTokens.Create(ctx, row); err != nil {
		if !errors.Is(err, domain.ErrResetTokenExists) {
			return nil, err
		}
		// Lost a concurrent create; the winner's row is the active token.
		winner, ferr := s.ResetTokens.FindByUserID(ctx, userID)
		if ferr != nil {
			return nil, ferr
		}
		if winner == nil {
			return nil, err
		}
		return winner, nil
	}
	return row, nil
}

// ConfirmResetPassword consumes a reset token and sets the new password. The
// token row, not the signature, decides whether the token is still usable.
func (s *AuthService) ConfirmResetPassword(ctx context.Context, in ports.ConfirmResetPasswordInput) error {
	if in.Password != in.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if err := validation.Struct(in); err != nil {
		return domain.Validation(err.Error())
	}

	claims, err := s.verifyAs(in.Token, ports.TokenUseReset)
	if err != nil {
		return err
	}
	if claims.UserID == "" {
		return domain.ErrTokenMissingSubject
	}

	user, err := s.Users.FindByID(ctx, claims.UserID, domain.RelationRoles, domain.RelationCredential)
	if err != nil {
		return fmt.Errorf("confirm reset password: %w", err)
	}

	row, err := s.ResetTokens.FindByUserID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("confirm reset password: %w", err)
	}
	if row == nil || row.Token != in.Token {
		return domain.ErrTokenExpired
	}

	if err := s.setPassword(user, in.Password); err != nil {
		return fmt.Errorf("confirm reset password: %w", err)
	}

	err = s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.Users.Update(ctx, user); err != nil {
			return err
		}
		return s.ResetTokens.Remove(ctx, row.ID)
	})
	if err != nil {
		return fmt.Errorf("confirm reset password: %w", err)
	}

	s.Emitter.Emit(ctx, domain.Notification{
		Event:      domain.EventPasswordChanged,
		Recipient:  user.Email,
		Subject:    "Password changed",
		Data:       map[string]string{"name": user.Name},
		OccurredAt: s.now().UTC(),
	})

	s.log.Info().Str("user_id", user.ID).Msg("password reset confirmed")
	return nil
}

func (s *AuthService) checkPassword(user *domain.User, plaintext string) error {
	if user.Credential == nil || user.Credential.Password == "" {
		return domain.ErrIncorrectPassword
	}
	if s.Hasher.Compare(user.Credential.Password, plaintext) != nil {
		return domain.ErrIncorrectPassword
	}
	return nil
}

func (s *AuthService) setPassword(user *domain.User, plaintext string) error {
	hash, err := s.Hasher.Hash(plaintext)
	if err != nil {
		return err
	}
	user.Credential = &domain.Credential{ID: user.ID, Password: hash}
	user.UpdatedAt = s.now().UTC()
	return nil
}

// verifyAs verifies token and rejects it unless it was issued for use.
func (s *AuthService) verifyAs(token string, use ports.TokenUse) (*ports.TokenClaims, error) {
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Use != use {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) ensureNotRevoked(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return nil
	}
	revoked, err := s.Revocations.IsRevoked(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		return domain.ErrTokenRevoked
	}
	return nil
}

func (s *AuthService) issuePair(user *domain.User) (*ports.TokenPair, error) {
	access, err := s.Tokens.Sign(ports.TokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Roles:  user.RoleNames(),
		Use:    ports.TokenUseAccess,
	}, ports.WithExpiry(s.cfg.AccessTTL))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := s.Tokens.Sign(ports.TokenPayload{UserID: user.ID, Use: ports.TokenUseRefresh}, ports.WithExpiry(s.cfg.RefreshTTL))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

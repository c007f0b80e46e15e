package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

// AuthorizationGuard enforces the permission registered for an operation
// against the caller's effective permission set.
type AuthorizationGuard struct {
	requirements ports.PermissionRequirements
	users        ports.UserRepository
	log          zerolog.Logger
}

func NewAuthorizationGuard(requirements ports.PermissionRequirements, users ports.UserRepository, log zerolog.Logger) *AuthorizationGuard {
	return &AuthorizationGuard{requirements: requirements, users: users, log: log}
}

var _ ports.Authorizer = (*AuthorizationGuard)(nil)

// Authorize returns nil when operation carries no requirement or when one of
// the caller's roles grants it, domain.ErrPermissionDenied otherwise.
func (g *AuthorizationGuard) Authorize(ctx context.Context, operation, userID string) error {
	required, ok := g.requirements.Required(operation)
	if !ok {
		return nil
	}
	if userID == "" {
		return fmt.Errorf("authorize %s: %w", operation, domain.ErrMissingIdentity)
	}

	user, err := g.users.FindByID(ctx, userID, domain.RelationRoles)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnknownCaller
		}
		return fmt.Errorf("authorize %s: %w", operation, err)
	}

	if _, granted := user.EffectivePermissions()[required]; !granted {
		g.log.Warn().
			Str("user_id", userID).
			Str("operation", operation).
			Str("permission", required).
			Msg("permission denied")
		return domain.ErrPermissionDenied
	}
	return nil
}

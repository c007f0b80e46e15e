package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
	"github.com/mikemajesty/admin-api/internal/core/service"
)

// seedRoles makes sure the built-in roles exist and that BACKOFFICE holds
// every permission the router protects. Safe to run on every start.
func seedRoles(ctx context.Context, repo ports.RoleRepository, roles ports.RoleService, registry *service.PermissionRegistry, log zerolog.Logger) error {
	for _, name := range []string{domain.RoleUser, domain.RoleBackoffice} {
		if _, err := roles.Create(ctx, ports.CreateRoleInput{Name: name}); err != nil && !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("create role %s: %w", name, err)
		}
	}

	backoffice, err := repo.FindByName(ctx, domain.RoleBackoffice)
	if err != nil {
		return fmt.Errorf("find role %s: %w", domain.RoleBackoffice, err)
	}

	names := requiredPermissions(registry)
	if _, err := roles.AddPermissions(ctx, ports.RolePermissionsInput{RoleID: backoffice.ID, Permissions: names}); err != nil {
		return fmt.Errorf("grant %s: %w", domain.RoleBackoffice, err)
	}
	log.Info().Int("permissions", len(names)).Msg("built-in roles ready")
	return nil
}

func requiredPermissions(registry *service.PermissionRegistry) []string {
	seen := make(map[string]struct{})
	for _, p := range registry.Operations() {
		seen[p] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for p := range seen {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

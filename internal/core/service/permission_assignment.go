package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
	"github.com/mikemajesty/admin-api/internal/pkg/validation"
)

// AddPermissions attaches the named permissions to a role. Names missing from
// the catalog are created first; names already attached are skipped, so the
// call is idempotent.
func (s *RoleService) AddPermissions(ctx context.Context, in ports.RolePermissionsInput) (*domain.Role, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}

	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, fmt.Errorf("add permissions: %w", err)
	}

	catalog, err := s.catalogByName(ctx, in.Permissions)
	if err != nil {
		return nil, fmt.Errorf("add permissions: %w", err)
	}

	now := s.now().UTC()
	changed := false
	for _, name := range dedupe(in.Permissions) {
		if role.HasPermission(name) {
			continue
		}
		p, ok := catalog[name]
		if !ok {
			p, err = domain.NewPermission(uuid.NewString(), name, now)
			if err != nil {
				return nil, err
			}
			p, err = s.createPermission(ctx, p)
			if err != nil {
				return nil, fmt.Errorf("add permissions: create %q: %w", name, err)
			}
		}
		role.AddPermission(*p)
		changed = true
	}

	if !changed {
		return role, nil
	}
	role.UpdatedAt = now
	if err := s.roles.Save(ctx, role); err != nil {
		return nil, fmt.Errorf("add permissions: %w", err)
	}

	s.log.Info().Str("role_id", role.ID).Strs("permissions", in.Permissions).Msg("permissions added to role")
	return role, nil
}

// RemovePermissions detaches the named permissions from a role. Names that
// are unknown or not attached are ignored.
func (s *RoleService) RemovePermissions(ctx context.Context, in ports.RolePermissionsInput) (*domain.Role, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}

	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, fmt.Errorf("remove permissions: %w", err)
	}

	catalog, err := s.catalogByName(ctx, in.Permissions)
	if err != nil {
		return nil, fmt.Errorf("remove permissions: %w", err)
	}

	changed := false
	for _, name := range dedupe(in.Permissions) {
		if _, ok := catalog[name]; !ok {
			continue
		}
		if role.RemovePermission(name) {
			changed = true
		}
	}

	if !changed {
		return role, nil
	}
	role.UpdatedAt = s.now().UTC()
	if err := s.roles.Save(ctx, role); err != nil {
		return nil, fmt.Errorf("remove permissions: %w", err)
	}

	s.log.Info().Str("role_id", role.ID).Strs("permissions", in.Permissions).Msg("permissions removed from role")
	return role, nil
}

// createPermission inserts p into the catalog. When a concurrent caller
// created the same name first, the winner's entry is returned instead.
func (s *RoleService) createPermission(ctx context.Context, p *domain.Permission) (*domain.Permission, error) {
	err := s.permissions.Create(ctx, p)
	if err == nil {
		s.log.Info().Str("permission", p.Name).Msg("permission created on demand")
		return p, nil
	}
	if !errors.Is(err, domain.ErrPermissionExists) {
		return nil, err
	}
	found, ferr := s.permissions.FindIn(ctx, []string{p.Name})
	if ferr != nil {
		return nil, ferr
	}
	if len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

func (s *RoleService) catalogByName(ctx context.Context, names []string) (map[string]*domain.Permission, error) {
	found, err := s.permissions.FindIn(ctx, dedupe(names))
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*domain.Permission, len(found))
	for _, p := range found {
		byName[p.Name] = p
	}
	return byName, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
	"github.com/mikemajesty/admin-api/internal/pkg/validation"
)

// RoleService manages roles and is the only writer of a role's permission set.
type RoleService struct {
	roles       ports.RoleRepository
	permissions ports.PermissionRepository
	log         zerolog.Logger
	now         func() time.Time
}

func NewRoleService(roles ports.RoleRepository, permissions ports.PermissionRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, permissions: permissions, log: log, now: time.Now}
}

var _ ports.RoleService = (*RoleService)(nil)

func (s *RoleService) Create(ctx context.Context, in ports.CreateRoleInput) (*domain.Role, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}
	role, err := domain.NewRole(uuid.NewString(), in.Name, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	s.log.Info().Str("role_id", role.ID).Str("name", role.Name).Msg("role created")
	return role, nil
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (s *RoleService) Rename(ctx context.Context, in ports.RenameRoleInput) (*domain.Role, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}
	role, err := s.roles.FindByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("rename role: %w", err)
	}
	if role.Name == in.Name {
		return role, nil
	}
	if clash, err := s.roles.FindByName(ctx, in.Name); err == nil && clash.ID != role.ID {
		return nil, domain.ErrRoleExists
	}

	role.Name = in.Name
	role.UpdatedAt = s.now().UTC()
	if err := s.roles.Save(ctx, role); err != nil {
		return nil, fmt.Errorf("rename role: %w", err)
	}
	return role, nil
}

// Delete tombstones a role. Roles that still carry permissions are refused.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if !role.CanBeDeleted() {
		return domain.ErrRoleHasPermissions
	}
	if err := s.roles.SoftDelete(ctx, role.ID, s.now().UTC()); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	s.log.Info().Str("role_id", role.ID).Msg("role deleted")
	return nil
}

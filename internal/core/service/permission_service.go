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

// PermissionService manages the permission catalog.
type PermissionService struct {
	permissions ports.PermissionRepository
	roles       ports.RoleRepository
	log         zerolog.Logger
	now         func() time.Time
}

func NewPermissionService(permissions ports.PermissionRepository, roles ports.RoleRepository, log zerolog.Logger) *PermissionService {
	return &PermissionService{permissions: permissions, roles: roles, log: log, now: time.Now}
}

var _ ports.PermissionService = (*PermissionService)(nil)

func (s *PermissionService) Create(ctx context.Context, in ports.CreatePermissionInput) (*domain.Permission, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}
	p, err := domain.NewPermission(uuid.NewString(), in.Name, s.now().UTC())
	if err != nil {
		return nil, err
	}

	existing, err := s.permissions.FindIn(ctx, []string{p.Name})
	if err != nil {
		return nil, fmt.Errorf("create permission: %w", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrPermissionExists
	}

	if err := s.permissions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create permission: %w", err)
	}
	s.log.Info().Str("permission_id", p.ID).Str("name", p.Name).Msg("permission created")
	return p, nil
}

func (s *PermissionService) Get(ctx context.Context, id string) (*domain.Permission, error) {
	p, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return p, nil
}

func (s *PermissionService) List(ctx context.Context) ([]*domain.Permission, error) {
	list, err := s.permissions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return list, nil
}

// Delete removes a catalog entry that no live role references.
func (s *PermissionService) Delete(ctx context.Context, id string) error {
	p, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	inUse, err := s.roles.ExistsWithPermission(ctx, p.Name)
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	if inUse {
		return domain.ErrPermissionInUse
	}
	if err := s.permissions.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	s.log.Info().Str("permission_id", p.ID).Msg("permission deleted")
	return nil
}

package ports

import (
	"context"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

// CreateRoleInput carries a new role.
type CreateRoleInput struct {
	Name string `json:"name" validate:"required,max=64"`
}

// RenameRoleInput renames an existing role.
type RenameRoleInput struct {
	ID   string `json:"-" validate:"required"`
	Name string `json:"name" validate:"required,max=64"`
}

// RolePermissionsInput names the permissions to attach to or detach from a role.
type RolePermissionsInput struct {
	RoleID      string   `json:"-" validate:"required"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,permission"`
}

// RoleService manages roles and their permission sets.
type RoleService interface {
	Create(ctx context.Context, in CreateRoleInput) (*domain.Role, error)
	Get(ctx context.Context, id string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	Rename(ctx context.Context, in RenameRoleInput) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
	AddPermissions(ctx context.Context, in RolePermissionsInput) (*domain.Role, error)
	RemovePermissions(ctx context.Context, in RolePermissionsInput) (*domain.Role, error)
}

package ports

import (
	"context"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

// CreatePermissionInput carries a new catalog entry.
type CreatePermissionInput struct {
	Name string `json:"name" validate:"required,permission"`
}

// PermissionService manages the permission catalog.
type PermissionService interface {
	Create(ctx context.Context, in CreatePermissionInput) (*domain.Permission, error)
	Get(ctx context.Context, id string) (*domain.Permission, error)
	List(ctx context.Context) ([]*domain.Permission, error)
	Delete(ctx context.Context, id string) error
}

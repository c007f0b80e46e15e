package ports

import (
	"context"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

// PermissionRepository is the permission catalog.
type PermissionRepository interface {
	// FindIn bulk-resolves names; unknown names are absent from the result.
	FindIn(ctx context.Context, names []string) ([]*domain.Permission, error)
	// Create inserts a new entry; duplicate names yield domain.ErrPermissionExists.
	Create(ctx context.Context, permission *domain.Permission) error
	FindByID(ctx context.Context, id string) (*domain.Permission, error)
	List(ctx context.Context) ([]*domain.Permission, error)
	Delete(ctx context.Context, id string) error
}

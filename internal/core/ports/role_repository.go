package ports

import (
	"context"
	"time"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

// RoleRepository persists roles together with their permission set.
type RoleRepository interface {
	// Create inserts a new role; duplicate names yield domain.ErrRoleExists.
	Create(ctx context.Context, role *domain.Role) error
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// FindByNames returns the live roles matching names; missing names are
	// simply absent from the result.
	FindByNames(ctx context.Context, names []string) ([]*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	// Save upserts the whole aggregate, permission set included.
	Save(ctx context.Context, role *domain.Role) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// ExistsWithPermission reports whether any live role references the
	// permission name.
	ExistsWithPermission(ctx context.Context, permissionName string) (bool, error)
}

package ports

import (
	"context"
	"time"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

// UserRepository persists the user aggregate. Lookups return
// domain.ErrUserNotFound when no live (non-tombstoned) user matches; the
// optional relations select what is eagerly loaded.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string, relations ...domain.Relation) (*domain.User, error)
	FindByEmail(ctx context.Context, email string, relations ...domain.Relation) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update replaces the whole aggregate. The stored password hash is only
	// overwritten when user.Credential is non-nil.
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

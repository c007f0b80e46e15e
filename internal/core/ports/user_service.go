package ports

import (
	"context"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

// CreateUserInput carries a registration.
type CreateUserInput struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,required"`
}

// UpdateUserInput carries a profile/role update. Nil fields are left unchanged.
type UpdateUserInput struct {
	ID    string    `json:"-" validate:"required"`
	Name  *string   `json:"name" validate:"omitempty,max=200"`
	Email *string   `json:"email" validate:"omitempty,email"`
	Roles *[]string `json:"roles" validate:"omitempty,min=1,dive,required"`
}

// UserService manages user accounts.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

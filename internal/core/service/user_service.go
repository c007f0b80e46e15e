package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
	"github.com/mikemajesty/admin-api/internal/pkg/validation"
)

// UserService manages user accounts and their role sets.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, hasher: hasher, log: log, now: time.Now}
}

var _ ports.UserService = (*UserService)(nil)

// Create registers a user with a hashed password and the named roles.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}
	user, err := domain.NewUser(uuid.NewString(), in.Name, in.Email, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, user.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	roles, err := s.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.SetRoles(roles)

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.Credential = &domain.Credential{ID: user.ID, Password: hash}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Strs("roles", user.RoleNames()).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id, domain.RelationRoles)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update changes profile fields and/or the role set, then re-persists the
// aggregate. The credential is not loaded, so the password is untouched.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, domain.Validation(err.Error())
	}

	user, err := s.users.FindByID(ctx, in.ID, domain.RelationRoles)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		if email != user.Email {
			if other, err := s.users.FindByEmail(ctx, email); err == nil && other.ID != user.ID {
				return nil, domain.ErrUserExists
			}
		}
		user.Email = email
	}
	if in.Roles != nil {
		roles, err := s.resolveRoles(ctx, *in.Roles)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		user.SetRoles(roles)
	}
	if err := validation.Struct(user); err != nil {
		return nil, domain.Validation(err.Error())
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete tombstones the user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.users.SoftDelete(ctx, user.ID, s.now().UTC()); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Msg("user deleted")
	return nil
}

// resolveRoles maps role names to live roles; any unknown name is NotFound.
func (s *UserService) resolveRoles(ctx context.Context, names []string) ([]domain.Role, error) {
	names = dedupe(names)
	found, err := s.roles.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*domain.Role, len(found))
	for _, r := range found {
		byName[r.Name] = r
	}
	roles := make([]domain.Role, 0, len(names))
	for _, name := range names {
		r, ok := byName[name]
		if !ok {
			return nil, domain.NewError(domain.ErrNotFound, fmt.Sprintf("role %s not found", name))
		}
		roles = append(roles, *r)
	}
	return roles, nil
}

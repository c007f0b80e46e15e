package domain

import (
	"strings"
	"time"

	"github.com/mikemajesty/admin-api/internal/pkg/validation"
)

// RoleName identifies a role. USER and BACKOFFICE are seeded; administrators
// may create roles with any other non-empty name.
type RoleName = string

const (
	RoleUser       RoleName = "USER"
	RoleBackoffice RoleName = "BACKOFFICE"
)

// Role groups permissions. The permission list behaves as a set keyed by
// permission name and is always persisted as part of the whole aggregate.
type Role struct {
	ID          string       `json:"id" validate:"required"`
	Name        RoleName     `json:"name" validate:"required,max=64"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	DeletedAt   *time.Time   `json:"deleted_at,omitempty"`
}

// NewRole validates the raw fields and returns a Role with no permissions.
func NewRole(id, name string, now time.Time) (*Role, error) {
	r := &Role{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Permissions: []Permission{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validation.Struct(r); err != nil {
		return nil, Validation(err.Error())
	}
	return r, nil
}

// HasPermission reports whether a permission with the given name is attached.
func (r *Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// AddPermission attaches p unless a permission with the same name is already
// present. It reports whether the set changed.
func (r *Role) AddPermission(p Permission) bool {
	if r.HasPermission(p.Name) {
		return false
	}
	r.Permissions = append(r.Permissions, p)
	return true
}

// RemovePermission detaches the permission with the given name. Absent names
// are ignored; it reports whether the set changed.
func (r *Role) RemovePermission(name string) bool {
	for i, p := range r.Permissions {
		if p.Name == name {
			r.Permissions = append(r.Permissions[:i:i], r.Permissions[i+1:]...)
			return true
		}
	}
	return false
}

// PermissionNames returns the names of the attached permissions.
func (r *Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Name)
	}
	return names
}

// CanBeDeleted reports whether the role may be tombstoned: only roles with no
// associated permission can be.
func (r *Role) CanBeDeleted() bool {
	return len(r.Permissions) == 0
}

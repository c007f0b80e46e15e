package domain

import (
	"strings"
	"time"

	"github.com/mikemajesty/admin-api/internal/pkg/validation"
)

// Relation names an association a user lookup may eagerly load.
type Relation string

const (
	// RelationRoles loads the user's roles together with their permissions.
	RelationRoles Relation = "roles"
	// RelationCredential loads the password hash.
	RelationCredential Relation = "credential"
)

// User models an authenticated actor. Users are never hard-deleted; DeletedAt
// tombstones them.
type User struct {
	ID         string      `json:"id" validate:"required"`
	Name       string      `json:"name" validate:"required,max=200"`
	Email      string      `json:"email" validate:"required,email"`
	Roles      []Role      `json:"roles"`
	Credential *Credential `json:"-"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	DeletedAt  *time.Time  `json:"deleted_at,omitempty"`
}

// NewUser validates the raw profile fields and returns a User with no roles.
func NewUser(id, name, email string, now time.Time) (*User, error) {
	u := &User{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Roles:     []Role{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validation.Struct(u); err != nil {
		return nil, Validation(err.Error())
	}
	return u, nil
}

// NormalizeEmail lower-cases and trims an address so lookups are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetRoles replaces the role set, dropping duplicate role IDs.
func (u *User) SetRoles(roles []Role) {
	seen := make(map[string]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	u.Roles = out
}

// RoleIDs returns the IDs of the user's roles.
func (u *User) RoleIDs() []string {
	ids := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}

// RoleNames returns the names of the user's roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// EffectivePermissions is the union of permission names over every role the
// user holds.
func (u *User) EffectivePermissions() map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range u.Roles {
		for _, p := range r.Permissions {
			set[p.Name] = struct{}{}
		}
	}
	return set
}

// HasPermission reports whether any of the user's roles grants name.
func (u *User) HasPermission(name string) bool {
	_, ok := u.EffectivePermissions()[name]
	return ok
}

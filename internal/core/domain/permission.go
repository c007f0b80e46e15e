package domain

import (
	"strings"
	"time"

	"github.com/mikemajesty/admin-api/internal/pkg/validation"
)

// Permission is an atomic named capability following the resource:action
// convention (e.g. "user:create"). Permissions are immutable once created and
// are referenced, never owned, by roles.
type Permission struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required,permission"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPermission validates the raw fields and returns a Permission.
func NewPermission(id, name string, now time.Time) (*Permission, error) {
	p := &Permission{
		ID:        id,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
	}
	if err := validation.Struct(p); err != nil {
		return nil, Validation(err.Error())
	}
	return p, nil
}

package service

import (
	"sync"

	"github.com/mikemajesty/admin-api/internal/core/ports"
)

// PermissionRegistry is the declarative side table mapping an operation
// identity to the permission it requires. Operations never registered are
// unprotected.
type PermissionRegistry struct {
	mu           sync.RWMutex
	requirements map[string]string
}

func NewPermissionRegistry() *PermissionRegistry {
	return &PermissionRegistry{requirements: make(map[string]string)}
}

var _ ports.PermissionRequirements = (*PermissionRegistry)(nil)

// Register attaches permission to operation, replacing any earlier entry.
func (r *PermissionRegistry) Register(operation, permission string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requirements[operation] = permission
}

// Required returns the permission attached to operation, if any.
func (r *PermissionRegistry) Required(operation string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.requirements[operation]
	return p, ok
}

// Operations returns a copy of the table.
func (r *PermissionRegistry) Operations() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.requirements))
	for k, v := range r.requirements {
		out[k] = v
	}
	return out
}

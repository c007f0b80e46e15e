package ports

import "context"

// PermissionRequirements resolves the permission attached to an operation.
type PermissionRequirements interface {
	Required(operation string) (permission string, ok bool)
}

// Authorizer decides whether the caller may run an operation.
type Authorizer interface {
	Authorize(ctx context.Context, operation, userID string) error
}

package ports

import "context"

// Transactor runs fn as one atomic unit of persistence work. Repositories
// called with the ctx handed to fn take part in the unit.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

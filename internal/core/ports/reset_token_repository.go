package ports

import (
	"context"
	"time"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

// ResetTokenRepository stores single-use password reset tokens. Row presence
// is the source of truth for whether a token may still be used.
type ResetTokenRepository interface {
	// FindByUserID returns the active token row or (nil, nil) when none exists.
	FindByUserID(ctx context.Context, userID string) (*domain.ResetToken, error)
	// Create inserts a row; a second row for the same user yields
	// domain.ErrResetTokenExists.
	Create(ctx context.Context, token *domain.ResetToken) error
	Remove(ctx context.Context, id string) error
	// RemoveCreatedBefore deletes rows created before t and returns how many.
	RemoveCreatedBefore(ctx context.Context, t time.Time) (int64, error)
}

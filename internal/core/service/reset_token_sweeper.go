package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/ports"
)

// ResetTokenSweeper deletes reset-token rows whose signed token has outlived
// its lifetime, returning their users to the no-token state.
type ResetTokenSweeper struct {
	tokens ports.ResetTokenRepository
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewResetTokenSweeper(tokens ports.ResetTokenRepository, ttl time.Duration, log zerolog.Logger) *ResetTokenSweeper {
	return &ResetTokenSweeper{tokens: tokens, ttl: ttl, log: log, now: time.Now}
}

// Sweep removes expired rows and returns how many were deleted.
func (s *ResetTokenSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.ttl)
	n, err := s.tokens.RemoveCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep reset tokens: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("removed", n).Time("cutoff", cutoff).Msg("expired reset tokens removed")
	}
	return n, nil
}

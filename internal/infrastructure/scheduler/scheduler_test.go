package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestScheduler_RunsJob(t *testing.T) {
	s := New(zerolog.Nop())
	var runs atomic.Int32
	ran := make(chan struct{}, 4)

	err := s.Add("@every 1s", "tick", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("job context must carry a deadline")
		}
		runs.Add(1)
		ran <- struct{}{}
		return errors.New("ignored")
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
	if runs.Load() < 1 {
		t.Fatal("expected at least one run")
	}
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := New(zerolog.Nop())
	if err := s.Add("not a schedule", "bad", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected an error for an invalid spec")
	}
}

package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{ErrUserNotFound, ErrNotFound},
		{ErrRoleHasPermissions, ErrConflict},
		{ErrIncorrectPassword, ErrBadRequest},
		{ErrTokenExpired, ErrUnauthorized},
		{ErrPermissionDenied, ErrForbidden},
		{Validation("name is required"), ErrBadRequest},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("op: %w", tc.err)
		if !errors.Is(wrapped, tc.kind) {
			t.Errorf("%v: expected kind %v", tc.err, tc.kind)
		}
		var de *Error
		if !errors.As(wrapped, &de) || de.Message != tc.err.Error() {
			t.Errorf("%v: message not recoverable through wrapping", tc.err)
		}
	}
}

func TestNewPermission(t *testing.T) {
	if _, err := NewPermission("p1", "user:create", time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewPermission("p2", "user-create", time.Time{}); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}

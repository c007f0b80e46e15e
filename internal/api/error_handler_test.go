package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", fmt.Errorf("get user: %w", domain.ErrUserNotFound), http.StatusNotFound, "user not found"},
		{"conflict", domain.ErrRoleHasPermissions, http.StatusConflict, "role is associated with permissions"},
		{"validation", domain.Validation("email is required"), http.StatusBadRequest, "email is required"},
		{"incorrect password", domain.ErrIncorrectPassword, http.StatusBadRequest, "incorrect password"},
		{"expired", domain.ErrTokenExpired, http.StatusUnauthorized, "token was expired"},
		{"forbidden", domain.ErrPermissionDenied, http.StatusForbidden, "permission denied"},
		{"bare kind", domain.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, "rate limit exceeded"},
		{"missing identity", domain.ErrMissingIdentity, http.StatusInternalServerError, "internal server error"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

type stubAuthorizer struct {
	gotOperation string
	gotUserID    string
	err          error
}

func (s *stubAuthorizer) Authorize(_ context.Context, operation, userID string) error {
	s.gotOperation = operation
	s.gotUserID = userID
	return s.err
}

func newRBACContext(userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/roles/r1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/roles/:id")
	if userID != "" {
		c.Set(UserIDKey, userID)
	}
	return c, rec
}

func TestRequirePermission_Allows(t *testing.T) {
	authz := &stubAuthorizer{}
	c, rec := newRBACContext("u1")

	called := false
	handler := RequirePermission(authz)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if authz.gotOperation != "DELETE /api/v1/roles/:id" || authz.gotUserID != "u1" {
		t.Fatalf("unexpected authorize call: %q %q", authz.gotOperation, authz.gotUserID)
	}
}

func TestRequirePermission_Forbids(t *testing.T) {
	authz := &stubAuthorizer{err: domain.ErrPermissionDenied}
	c, _ := newRBACContext("u1")

	handler := RequirePermission(authz)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}

func TestRequirePermission_WithoutIdentity(t *testing.T) {
	authz := &stubAuthorizer{err: domain.ErrMissingIdentity}
	c, _ := newRBACContext("")

	handler := RequirePermission(authz)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrMissingIdentity) {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
	if authz.gotUserID != "" {
		t.Fatalf("expected empty user id to be passed through")
	}
}

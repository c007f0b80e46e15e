package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
	"github.com/mikemajesty/admin-api/internal/core/service"
	"github.com/mikemajesty/admin-api/internal/infrastructure/token"
)

type stubRevocations struct{}

func (stubRevocations) Revoke(context.Context, string, time.Time) error { return nil }
func (stubRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// denyAuthorizer refuses the caller "blocked" and allows everyone else.
type denyAuthorizer struct{}

func (denyAuthorizer) Authorize(_ context.Context, _ string, userID string) error {
	if userID == "blocked" {
		return domain.ErrPermissionDenied
	}
	return nil
}

type emptyRoleService struct{ ports.RoleService }

func (emptyRoleService) List(context.Context) ([]*domain.Role, error) { return []*domain.Role{}, nil }

var (
	routerOnce sync.Once
	testRouter *echo.Echo
	testReg    *service.PermissionRegistry
	testTokens = token.NewJWTService("router-secret", "admin-api", time.Minute)
)

// sharedRouter builds the router once: the prometheus middleware registers its
// collectors with the default registry.
func sharedRouter() (*echo.Echo, *service.PermissionRegistry) {
	routerOnce.Do(func() {
		testReg = service.NewPermissionRegistry()
		testRouter = NewRouter(Dependencies{
			Log:         zerolog.Nop(),
			Roles:       emptyRoleService{},
			Tokens:      testTokens,
			Revocations: stubRevocations{},
			Authorizer:  denyAuthorizer{},
			Registry:    testReg,
		})
	})
	return testRouter, testReg
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := testTokens.Sign(ports.TokenPayload{UserID: userID, Use: ports.TokenUseAccess})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + tok
}

func serve(e *echo.Echo, method, target, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RegistersProtectedOperations(t *testing.T) {
	_, reg := sharedRouter()

	cases := map[string]string{
		"POST /api/v1/roles":                       "role:create",
		"DELETE /api/v1/roles/:id":                 "role:delete",
		"PUT /api/v1/roles/:id/add-permissions":    "role:addpermissions",
		"PUT /api/v1/roles/:id/remove-permissions": "role:deletepermissions",
		"GET /api/v1/permissions/:id":              "permission:get",
		"PUT /api/v1/users/:id":                    "user:update",
	}
	for op, want := range cases {
		if got, ok := reg.Required(op); !ok || got != want {
			t.Errorf("%s: expected %q, got %q (%v)", op, want, got, ok)
		}
	}
	for _, op := range []string{"POST /api/v1/login", "POST /api/v1/logout", "PUT /api/v1/users/change-password"} {
		if _, ok := reg.Required(op); ok {
			t.Errorf("%s must not require a permission", op)
		}
	}
}

func TestRouter_Liveness(t *testing.T) {
	e, _ := sharedRouter()

	if rec := serve(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_ProtectedRoute(t *testing.T) {
	e, _ := sharedRouter()

	if rec := serve(e, http.MethodGet, "/api/v1/roles", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/api/v1/roles", bearer(t, "blocked"), ""); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for denied caller, got %d", rec.Code)
	}

	rec := serve(e, http.MethodGet, "/api/v1/roles", bearer(t, "u1"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouter_InvalidLoginPayload(t *testing.T) {
	e, _ := sharedRouter()

	rec := serve(e, http.MethodPost, "/api/v1/login", "", "{")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid payload") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthRateLimiter(t *testing.T) {
	if mw := authRateLimiter(0, 10); mw != nil {
		t.Fatalf("zero rate must disable the limiter")
	}

	mw := authRateLimiter(0.001, 1)
	if len(mw) != 1 {
		t.Fatalf("expected one middleware, got %d", len(mw))
	}
	h := mw[0](func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	e := echo.New()
	call := func() error {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
		return h(e.NewContext(req, httptest.NewRecorder()))
	}

	if err := call(); err != nil {
		t.Fatalf("first call must pass, got %v", err)
	}
	var he *echo.HTTPError
	if err := call(); !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}

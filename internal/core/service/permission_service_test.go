package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

func TestPermissionService_Create(t *testing.T) {
	perms := newStubPermissionRepo()
	svc := NewPermissionService(perms, newStubRoleRepo(), discardLogger)
	ctx := context.Background()

	p, err := svc.Create(ctx, ports.CreatePermissionInput{Name: "report:export"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.ID == "" || perms.byName["report:export"] == nil {
		t.Fatalf("permission not persisted: %+v", p)
	}

	if _, err := svc.Create(ctx, ports.CreatePermissionInput{Name: "report:export"}); !errors.Is(err, domain.ErrPermissionExists) {
		t.Fatalf("expected ErrPermissionExists, got %v", err)
	}
}

func TestPermissionService_Create_InvalidName(t *testing.T) {
	svc := NewPermissionService(newStubPermissionRepo(), newStubRoleRepo(), discardLogger)

	for _, name := range []string{"", "export", "Report:export", "report:"} {
		if _, err := svc.Create(context.Background(), ports.CreatePermissionInput{Name: name}); !errors.Is(err, domain.ErrBadRequest) {
			t.Errorf("name %q: expected BadRequest, got %v", name, err)
		}
	}
}

func TestPermissionService_Delete(t *testing.T) {
	perms := newStubPermissionRepo()
	roles := newStubRoleRepo()
	svc := NewPermissionService(perms, roles, discardLogger)
	perms.byName["a:x"] = &domain.Permission{ID: "p-a", Name: "a:x"}
	perms.byName["b:y"] = &domain.Permission{ID: "p-b", Name: "b:y"}
	seedRole(roles, "r1", "EDITOR", "a:x")
	ctx := context.Background()

	if err := svc.Delete(ctx, "p-a"); !errors.Is(err, domain.ErrPermissionInUse) {
		t.Fatalf("expected ErrPermissionInUse, got %v", err)
	}
	if err := svc.Delete(ctx, "p-b"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, "p-b"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

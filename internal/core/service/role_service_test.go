package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/core/ports"
)

func newRoleFixture() (*RoleService, *stubRoleRepo, *stubPermissionRepo) {
	roles := newStubRoleRepo()
	perms := newStubPermissionRepo()
	return NewRoleService(roles, perms, discardLogger), roles, perms
}

func sortedNames(r *domain.Role) []string {
	names := r.PermissionNames()
	sort.Strings(names)
	return names
}

func TestRoleService_Create(t *testing.T) {
	svc, roles, _ := newRoleFixture()

	role, err := svc.Create(context.Background(), ports.CreateRoleInput{Name: "AUDITOR"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if role.ID == "" || len(role.Permissions) != 0 {
		t.Fatalf("unexpected role: %+v", role)
	}
	if _, ok := roles.roles[role.ID]; !ok {
		t.Fatalf("role not persisted")
	}

	_, err = svc.Create(context.Background(), ports.CreateRoleInput{Name: "AUDITOR"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected Conflict for duplicate name, got %v", err)
	}
}

func TestRoleService_Create_Validation(t *testing.T) {
	svc, _, _ := newRoleFixture()

	_, err := svc.Create(context.Background(), ports.CreateRoleInput{Name: ""})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}

func TestRoleService_AddPermissions_Idempotent(t *testing.T) {
	svc, roles, _ := newRoleFixture()
	seedRole(roles, "r1", "EDITOR", "a:x")
	ctx := context.Background()
	in := ports.RolePermissionsInput{RoleID: "r1", Permissions: []string{"a:x", "b:y"}}

	role, err := svc.AddPermissions(ctx, in)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := sortedNames(role); len(got) != 2 || got[0] != "a:x" || got[1] != "b:y" {
		t.Fatalf("expected {a:x, b:y}, got %v", got)
	}

	role, err = svc.AddPermissions(ctx, in)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if got := sortedNames(role); len(got) != 2 {
		t.Fatalf("repeat add must not duplicate, got %v", got)
	}
	if roles.saves != 1 {
		t.Fatalf("unchanged set must not be re-saved, saves=%d", roles.saves)
	}
}

func TestRoleService_AddPermissions_CreatesMissingCatalogEntries(t *testing.T) {
	svc, roles, perms := newRoleFixture()
	seedRole(roles, "r1", "EDITOR")
	perms.byName["a:x"] = &domain.Permission{ID: "p-a", Name: "a:x"}

	role, err := svc.AddPermissions(context.Background(), ports.RolePermissionsInput{
		RoleID: "r1", Permissions: []string{"a:x", "c:z", "c:z"},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(perms.byName) != 2 {
		t.Fatalf("expected c:z to be created in the catalog, got %d entries", len(perms.byName))
	}
	for _, p := range role.Permissions {
		if p.Name == "a:x" && p.ID != "p-a" {
			t.Fatalf("existing catalog entry must be reused, got id %q", p.ID)
		}
		if p.Name == "c:z" && p.ID != perms.byName["c:z"].ID {
			t.Fatalf("role must reference the created entry")
		}
	}
	if len(role.Permissions) != 2 {
		t.Fatalf("expected two permissions, got %v", role.PermissionNames())
	}
}

// racingPermissionRepo behaves as if another caller created every name just
// before this caller's insert.
type racingPermissionRepo struct {
	*stubPermissionRepo
}

func (r racingPermissionRepo) Create(_ context.Context, p *domain.Permission) error {
	r.byName[p.Name] = &domain.Permission{ID: "winner-" + p.Name, Name: p.Name}
	return domain.ErrPermissionExists
}

func TestRoleService_AddPermissions_ConcurrentCatalogCreate(t *testing.T) {
	roles := newStubRoleRepo()
	perms := racingPermissionRepo{newStubPermissionRepo()}
	svc := NewRoleService(roles, perms, discardLogger)
	seedRole(roles, "r1", "EDITOR")

	role, err := svc.AddPermissions(context.Background(), ports.RolePermissionsInput{
		RoleID: "r1", Permissions: []string{"user:create"},
	})
	if err != nil {
		t.Fatalf("losing the create race must not fail, got %v", err)
	}
	if len(role.Permissions) != 1 || role.Permissions[0].ID != "winner-user:create" {
		t.Fatalf("expected the winner's entry to be attached, got %+v", role.Permissions)
	}
	if roles.saves != 1 {
		t.Fatalf("expected one save, got %d", roles.saves)
	}
}

func TestRoleService_AddPermissions_RoleNotFound(t *testing.T) {
	svc, _, _ := newRoleFixture()

	_, err := svc.AddPermissions(context.Background(), ports.RolePermissionsInput{RoleID: "ghost", Permissions: []string{"a:x"}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestRoleService_AddPermissions_InvalidName(t *testing.T) {
	svc, roles, _ := newRoleFixture()
	seedRole(roles, "r1", "EDITOR")

	_, err := svc.AddPermissions(context.Background(), ports.RolePermissionsInput{RoleID: "r1", Permissions: []string{"NoColon"}})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}

func TestRoleService_RemovePermissions(t *testing.T) {
	svc, roles, perms := newRoleFixture()
	seedRole(roles, "r1", "EDITOR", "a:x", "b:y")
	perms.byName["a:x"] = &domain.Permission{ID: "p-a", Name: "a:x"}
	perms.byName["b:y"] = &domain.Permission{ID: "p-b", Name: "b:y"}
	ctx := context.Background()
	in := ports.RolePermissionsInput{RoleID: "r1", Permissions: []string{"a:x", "q:q"}}

	role, err := svc.RemovePermissions(ctx, in)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if got := sortedNames(role); len(got) != 1 || got[0] != "b:y" {
		t.Fatalf("expected {b:y}, got %v", got)
	}

	role, err = svc.RemovePermissions(ctx, in)
	if err != nil {
		t.Fatalf("repeat remove failed: %v", err)
	}
	if got := sortedNames(role); len(got) != 1 {
		t.Fatalf("repeat remove must be a no-op, got %v", got)
	}
	if roles.saves != 1 {
		t.Fatalf("expected a single save, got %d", roles.saves)
	}
	if len(perms.byName) != 2 {
		t.Fatalf("catalog entries must survive removal from a role")
	}
}

func TestRoleService_RemovePermissions_RoleNotFound(t *testing.T) {
	svc, _, _ := newRoleFixture()

	_, err := svc.RemovePermissions(context.Background(), ports.RolePermissionsInput{RoleID: "ghost", Permissions: []string{"a:x"}})
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestRoleService_Delete(t *testing.T) {
	svc, roles, _ := newRoleFixture()
	seedRole(roles, "r1", "EDITOR", "a:x")
	seedRole(roles, "r2", "EMPTY")
	ctx := context.Background()

	if err := svc.Delete(ctx, "r1"); !errors.Is(err, domain.ErrRoleHasPermissions) {
		t.Fatalf("expected ErrRoleHasPermissions, got %v", err)
	}
	if err := svc.Delete(ctx, "r2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, "r2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted role must not be found, got %v", err)
	}
}

func TestRoleService_Rename(t *testing.T) {
	svc, roles, _ := newRoleFixture()
	seedRole(roles, "r1", "EDITOR")
	seedRole(roles, "r2", "VIEWER")
	ctx := context.Background()

	role, err := svc.Rename(ctx, ports.RenameRoleInput{ID: "r1", Name: "WRITER"})
	if err != nil || role.Name != "WRITER" {
		t.Fatalf("rename failed: %v %+v", err, role)
	}

	_, err = svc.Rename(ctx, ports.RenameRoleInput{ID: "r1", Name: "VIEWER"})
	if !errors.Is(err, domain.ErrRoleExists) {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}
}

package main

import (
	"testing"

	"github.com/mikemajesty/admin-api/internal/core/service"
)

func TestRequiredPermissions(t *testing.T) {
	registry := service.NewPermissionRegistry()
	registry.Register("GET /api/v1/users", "user:list")
	registry.Register("GET /api/v1/users/:id", "user:get")
	registry.Register("HEAD /api/v1/users", "user:list")

	got := requiredPermissions(registry)
	if len(got) != 2 || got[0] != "user:get" || got[1] != "user:list" {
		t.Fatalf("expected sorted unique names, got %v", got)
	}
}

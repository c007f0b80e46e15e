package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.JWT.AccessTTL != 15*time.Minute || cfg.JWT.RefreshTTL != 24*time.Hour || cfg.JWT.ResetTTL != 15*time.Minute {
		t.Errorf("unexpected jwt defaults: %+v", cfg.JWT)
	}
	if cfg.Scheduler.ResetSweep != "@every 10m" {
		t.Errorf("unexpected sweep schedule %q", cfg.Scheduler.ResetSweep)
	}
	if cfg.ResetURL() != "http://localhost:8080/api/v1/reset-password" {
		t.Errorf("unexpected reset url %q", cfg.ResetURL())
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"JWT_ACCESS_TTL":     "5m",
		"MONGO_TRANSACTIONS": "true",
		"NOTIFY_WORKERS":     "0",
		"PUBLIC_URL":         "https://admin.example.com/",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWT.AccessTTL != 5*time.Minute || !cfg.Mongo.Transactions {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Notify.Workers != 1 {
		t.Errorf("worker count must be clamped to 1, got %d", cfg.Notify.Workers)
	}
	if cfg.ResetURL() != "https://admin.example.com/api/v1/reset-password" {
		t.Errorf("unexpected reset url %q", cfg.ResetURL())
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcessDefaults(t *testing.T) {
	cfg, err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET_KEY": "secret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env, got %q", cfg.Env)
	}
	if cfg.Auth.TokenTTL() != 1200*time.Second {
		t.Fatalf("expected 1200s token ttl, got %s", cfg.Auth.TokenTTL())
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.Database.URL != "sqlite://accounts.db" {
		t.Fatalf("unexpected database url %q", cfg.Database.URL)
	}
	if cfg.Redis.Addr != "" || cfg.Mongo.URI != "" {
		t.Fatal("expected redis and mongo to be disabled by default")
	}
}

func TestProcessOverrides(t *testing.T) {
	cfg, err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                     "9000",
		"ENV":                      "production",
		"JWT_SECRET_KEY":           "secret",
		"JWT_ACCESS_TOKEN_EXPIRES": "60",
		"SU_ADMIN_ID":              "root-secret",
		"DATABASE_URL":             "postgres://u:p@db:5432/accounts",
		"REDIS_ADDR":               "redis:6379",
		"REDIS_DB":                 "2",
		"MONGO_URI":                "mongodb://mongo:27017",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9000" || cfg.IsDevelopment() {
		t.Fatalf("unexpected server config %+v", cfg)
	}
	if cfg.Auth.TokenTTL() != time.Minute {
		t.Fatalf("expected 60s ttl, got %s", cfg.Auth.TokenTTL())
	}
	if cfg.Auth.SuperAdminID != "root-secret" {
		t.Fatalf("unexpected super admin id %q", cfg.Auth.SuperAdminID)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.Mongo.URI != "mongodb://mongo:27017" || cfg.Mongo.Database != "account_service" {
		t.Fatalf("unexpected mongo config %+v", cfg.Mongo)
	}
}

func TestProcessRequiresJWTSecret(t *testing.T) {
	if _, err := process(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET_KEY is missing")
	}
}

func TestProcessRejectsNonPositiveTTL(t *testing.T) {
	_, err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET_KEY":           "secret",
		"JWT_ACCESS_TOKEN_EXPIRES": "0",
	}))
	if err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

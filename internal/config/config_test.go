package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/playperu/arcade/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("session ttl = %s", cfg.SessionTTL)
	}
	want := config.Negotiation{Budget: 10000, StartingPrice: 8500, MinPrice: 6000, StartingTrust: 50}
	if cfg.Negotiation != want {
		t.Errorf("negotiation = %+v, want %+v", cfg.Negotiation, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("NEGOTIATION_MIN_PRICE", "5000")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("db driver = %q", cfg.DBDriver)
	}
	if cfg.Negotiation.MinPrice != 5000 {
		t.Errorf("min price = %d", cfg.Negotiation.MinPrice)
	}
	if cfg.Admin.PasswordHash != "$2a$10$abc" {
		t.Errorf("admin hash = %q", cfg.Admin.PasswordHash)
	}
}

func TestLoadRejectsZeroTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "0s")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected an error for zero ttl")
	}
}

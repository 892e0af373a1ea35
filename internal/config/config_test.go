package config_test

import (
	"errors"
	"strings"
	"testing"

	"shopgram/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("WEBHOOK_SECRET", "s3cret")
	t.Setenv("PUBLIC_URL", "https://shop.example.com/")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("MEDIA_DIR", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Env != "development" || cfg.Port != "8080" || cfg.DBDSN != "shopgram.db" || cfg.MediaDir != "./media" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.PublicURL != "https://shop.example.com" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.PublicURL)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("WEBHOOK_SECRET", "")

	_, err := config.Load()
	var cerr *config.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConfigError, got %v", err)
	}
	if len(cerr.Missing) != 2 {
		t.Fatalf("unexpected missing list: %v", cerr.Missing)
	}
	if !strings.Contains(err.Error(), "BOT_TOKEN") || !strings.Contains(err.Error(), "WEBHOOK_SECRET") {
		t.Fatalf("error should name the missing keys: %v", err)
	}
}

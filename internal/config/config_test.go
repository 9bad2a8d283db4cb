package config

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
}

func TestLoadConfigAppliesDefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "Dev")
	t.Setenv("ENABLE_API_DOCS", "yes")
	t.Setenv("JWT_TTL_HOURS", "12")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("LOG_COMPRESS", "off")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Fatalf("expected development env, got %q", cfg.AppEnv)
	}
	if !cfg.DocsEnabled() {
		t.Fatalf("expected docs to be enabled in development")
	}
	if cfg.JWTTTL != 12*time.Hour {
		t.Fatalf("expected 12h ttl, got %s", cfg.JWTTTL)
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("expected fallback of 10 max conns, got %d", cfg.DBMaxConns)
	}
	if cfg.LogCompress {
		t.Fatalf("expected log compression to be disabled")
	}
}

func TestDocsDisabledOutsideDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "production", EnableDocs: true}
	if cfg.DocsEnabled() {
		t.Fatalf("expected docs to stay disabled in production")
	}

	var nilCfg *Config
	if nilCfg.DocsEnabled() {
		t.Fatalf("expected nil config to report docs disabled")
	}
}

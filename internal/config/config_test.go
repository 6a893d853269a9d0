package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://opentdb.com" || cfg.Quiz.DefaultAmount != 5 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
api:
  base_url: http://localhost:9999
  timeout: 2s
redis:
  addr: localhost:6379
  ttl: 30m
quiz:
  default_amount: 12
log:
  level: debug
  file: trivia.log
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:9999" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Quiz.DefaultAmount != 12 || cfg.Log.Level != "debug" || cfg.Log.File != "trivia.log" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Cache.TTL != "1h" {
		t.Fatalf("expected unset keys to keep defaults, got %q", cfg.Cache.TTL)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRIVIA_BASE_URL", "http://example.test")
	t.Setenv("PRETTY_LOG", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://example.test" || !cfg.Log.Pretty {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for bad input, got %v", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}

func TestSampleConfigLogsToStderr(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if cfg.Log.File != "" {
		t.Fatalf("sample config should leave log.file empty, got %q", cfg.Log.File)
	}
	if cfg.Redis.Addr != "" || cfg.Quiz.DefaultAmount != 5 {
		t.Fatalf("unexpected sample values %+v", cfg)
	}
}

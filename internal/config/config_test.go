package config

import (
	"testing"
	"time"
)

func TestGetenvDefault(t *testing.T) {
	t.Setenv("SOME_SET_KEY", "value")
	if got := getenv("SOME_SET_KEY", "fallback"); got != "value" {
		t.Errorf("getenv = %q, want value", got)
	}
	if got := getenv("SOME_UNSET_KEY_XYZ", "fallback"); got != "fallback" {
		t.Errorf("getenv = %q, want fallback", got)
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if cfg.Capacity <= 0 {
		t.Errorf("capacity = %d, want > 0", cfg.Capacity)
	}
	if cfg.RefillInterval <= 0 {
		t.Errorf("refill interval = %v, want > 0", cfg.RefillInterval)
	}
}

func TestLoadRateLimitConfigFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_CAPACITY", "7")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("enabled = false, want true")
	}
	if cfg.Capacity != 7 {
		t.Errorf("capacity = %d, want 7", cfg.Capacity)
	}
	if cfg.RefillInterval != 2*time.Second {
		t.Errorf("refill interval = %v, want 2s", cfg.RefillInterval)
	}
}

func TestLoadCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get,head")
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Errorf("methods = %v, want GET and HEAD", cfg.Methods)
	}
	if cfg.Methods["POST"] {
		t.Error("POST unexpectedly cached")
	}
}

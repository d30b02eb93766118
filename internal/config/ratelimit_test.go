package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("limiter disabled by default")
	}
	if cfg.Capacity != 60 {
		t.Errorf("got capacity %d, want 60", cfg.Capacity)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("got refill interval %v, want 1s", cfg.RefillInterval)
	}
	if cfg.KeyStrategy != "ip_route" {
		t.Errorf("got key strategy %q, want ip_route", cfg.KeyStrategy)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-1")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("got capacity %d, want 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("got refill tokens %d, want 1", cfg.RefillTokens)
	}
	// TTL is raised to cover several refill intervals.
	if want := 10 * time.Second; cfg.TTL != want {
		t.Errorf("got TTL %v, want %v", cfg.TTL, want)
	}
}

func TestLoadRateLimitConfigBurstOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "60")
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "500ms")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 10 {
		t.Errorf("got capacity %d, want 10", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != 500*time.Millisecond {
		t.Errorf("got refill %d per %v, want 1 per 500ms", cfg.RefillTokens, cfg.RefillInterval)
	}
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, head ,POST")
	for _, want := range []string{"GET", "HEAD", "POST"} {
		if !m[want] {
			t.Errorf("method %s missing from %v", want, m)
		}
	}
	if len(m) != 3 {
		t.Errorf("got %d methods, want 3", len(m))
	}
}

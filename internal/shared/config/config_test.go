package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("AI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("AI_DEFAULT_MODEL", "")
	t.Setenv("OBJECT_STORE", "")

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.AIDefaultModel != defaultAIModel {
		t.Fatalf("expected default model %q, got %q", defaultAIModel, cfg.AIDefaultModel)
	}
	if cfg.AIBaseURL != defaultAIBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.AIBaseURL)
	}
	if cfg.AITimeout != 120*time.Second {
		t.Fatalf("expected 120s timeout, got %s", cfg.AITimeout)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if !cfg.IsDevLike() {
		t.Fatalf("expected dev-like config")
	}
}

func TestLoadAPIKeyFallback(t *testing.T) {
	t.Setenv("AI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", " or-key ")

	cfg := Load()
	if cfg.AIAPIKey != "or-key" {
		t.Fatalf("expected fallback key, got %q", cfg.AIAPIKey)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "abc")
	t.Setenv("JWT_ACCESS_TTL", "-5m")

	cfg := Load()
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected default bcrypt cost, got %d", cfg.BcryptCost)
	}
	if cfg.JWTAccessTTL != 30*time.Minute {
		t.Fatalf("expected default access ttl, got %s", cfg.JWTAccessTTL)
	}
}

func TestNormalizeEnv(t *testing.T) {
	tests := map[string]string{
		"prod":        "production",
		" Production": "production",
		"staging":     "staging",
		"LOCAL":       "local",
		"whatever":    "dev",
	}
	for in, want := range tests {
		if got := normalizeEnv(in); got != want {
			t.Fatalf("normalizeEnv(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadComposeRateZeroDisablesLimit(t *testing.T) {
	t.Setenv("COMPOSE_RATE_PER_MINUTE", "0")

	cfg := Load()
	if cfg.ComposeRatePerMinute != 0 {
		t.Fatalf("expected rate 0, got %v", cfg.ComposeRatePerMinute)
	}
}

func TestLoadComposeRateNegativeFallsBack(t *testing.T) {
	t.Setenv("COMPOSE_RATE_PER_MINUTE", "-3")

	cfg := Load()
	if cfg.ComposeRatePerMinute != 6 {
		t.Fatalf("expected default rate 6, got %v", cfg.ComposeRatePerMinute)
	}
}

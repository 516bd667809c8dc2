package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Advice.Personality == "" {
		t.Error("default personality is empty")
	}
	if cfg.Advice.Cooldown() != 4*time.Second {
		t.Errorf("cooldown = %v", cfg.Advice.Cooldown())
	}
	if cfg.Advice.PulseDebounce() != 500*time.Millisecond {
		t.Errorf("pulse debounce = %v", cfg.Advice.PulseDebounce())
	}
	if cfg.Advice.MinCallInterval() != time.Second {
		t.Errorf("min call interval = %v", cfg.Advice.MinCallInterval())
	}
	if cfg.Thresholds.PullUp.FlexedAngle >= cfg.Thresholds.PullUp.CompleteAngle {
		t.Error("pull-up flexion gate must sit below the completion gate")
	}
}

func TestAutoPopulateFromEnv(t *testing.T) {
	t.Setenv("COACH_ENDPOINT", "https://coach.example/phrase")
	t.Setenv("COACH_API_KEY", "k-123")

	cfg := DefaultConfig()
	cfg.AutoPopulateFromEnv()
	if cfg.Advice.Endpoint != "https://coach.example/phrase" {
		t.Errorf("endpoint = %q", cfg.Advice.Endpoint)
	}
	if cfg.Advice.APIKey != "k-123" {
		t.Errorf("api key = %q", cfg.Advice.APIKey)
	}

	// Explicit settings win over the environment.
	cfg.Advice.Endpoint = "https://other.example"
	cfg.AutoPopulateFromEnv()
	if cfg.Advice.Endpoint != "https://other.example" {
		t.Errorf("endpoint overwritten: %q", cfg.Advice.Endpoint)
	}
}

// Package config holds the persistent application configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/formcoach/internal/exercise"
)

// Config is the persistent application configuration.
type Config struct {
	// Detection thresholds per exercise. Tuned empirically; overriding
	// them never changes state-machine structure, only its gates.
	Thresholds exercise.Thresholds `json:"thresholds"`

	// Advice service settings
	Advice AdviceConfig `json:"advice"`

	// Session-results store settings
	Store StoreConfig `json:"store"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// AdviceConfig holds phrase-service and throttle settings.
type AdviceConfig struct {
	Endpoint string `json:"endpoint,omitempty"`
	APIKey   string `json:"api_key,omitempty"`

	// Personality selects the tone of generated phrases.
	Personality string `json:"personality"`

	// CooldownMs is the minimum gap between emitted feedback phrases.
	CooldownMs int `json:"cooldown_ms"`

	// PulseDebounceMs is the minimum gap between audio issue pulses.
	PulseDebounceMs int `json:"pulse_debounce_ms"`

	// MinCallIntervalMs is the outbound rate limit toward the service.
	MinCallIntervalMs int `json:"min_call_interval_ms"`
}

// StoreConfig holds session-results persistence settings.
type StoreConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"` // defaults to ~/.formcoach/formcoach.db
}

// UIConfig holds terminal dashboard preferences.
type UIConfig struct {
	Debug     bool `json:"debug"`      // show raw angles and the event tail
	EventTail int  `json:"event_tail"` // debug overlay rows from the ring buffer
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: exercise.DefaultThresholds(),
		Advice: AdviceConfig{
			Personality:       "encouraging",
			CooldownMs:        4000,
			PulseDebounceMs:   500,
			MinCallIntervalMs: 1000,
		},
		Store: StoreConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Debug:     false,
			EventTail: 8,
		},
	}
}

// Cooldown returns the advice cooldown as a duration.
func (a AdviceConfig) Cooldown() time.Duration {
	return time.Duration(a.CooldownMs) * time.Millisecond
}

// PulseDebounce returns the audio pulse debounce as a duration.
func (a AdviceConfig) PulseDebounce() time.Duration {
	return time.Duration(a.PulseDebounceMs) * time.Millisecond
}

// MinCallInterval returns the outbound rate limit as a duration.
func (a AdviceConfig) MinCallInterval() time.Duration {
	return time.Duration(a.MinCallIntervalMs) * time.Millisecond
}

// DataDir returns the application data directory.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".formcoach")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads config from disk, or returns defaults.
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}
	cfg.AutoPopulateFromEnv()

	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for the API key
}

// AutoPopulateFromEnv fills in advice-service settings from environment
// variables when the config file leaves them empty.
func (c *Config) AutoPopulateFromEnv() {
	if c.Advice.Endpoint == "" {
		c.Advice.Endpoint = os.Getenv("COACH_ENDPOINT")
	}
	if c.Advice.APIKey == "" {
		c.Advice.APIKey = os.Getenv("COACH_API_KEY")
	}
}

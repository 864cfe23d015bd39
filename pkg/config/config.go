// Package config provides configuration file support for the Glare console.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glare-project/glare/pkg/fsutil"
)

// Config represents the console configuration.
type Config struct {
	// Origin is the console API base URL, e.g. "https://glare.example.com".
	Origin string `yaml:"origin"`
	// Token is the bearer token presented to the console API.
	Token   string        `yaml:"token,omitempty"`
	Sync    SyncConfig    `yaml:"sync"`
	Match   MatchConfig   `yaml:"match"`
	Logging LoggingConfig `yaml:"logging"`
}

// SyncConfig configures the live-synchronization controller.
type SyncConfig struct {
	PollInterval   time.Duration `yaml:"poll_interval"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
}

// MatchConfig configures attribution matching.
type MatchConfig struct {
	// TimeTolerance bounds time-proximity matching between a snapshot and a
	// worker-reported attribution time.
	TimeTolerance time.Duration `yaml:"time_tolerance"`
	// SingleCandidateShortcut accepts a lone short-id candidate when the
	// snapshot carries no parseable time.
	SingleCandidateShortcut bool `yaml:"single_candidate_shortcut"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Origin: "http://127.0.0.1:8080",
		Sync: SyncConfig{
			PollInterval:   10 * time.Second,
			ReconnectDelay: 5 * time.Second,
		},
		Match: MatchConfig{
			TimeTolerance:           2 * time.Minute,
			SingleCandidateShortcut: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".glare", "config.yaml")
	}
	return filepath.Join(home, ".glare", "config.yaml")
}

// Load loads configuration from the given path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil // No config file is OK, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the given path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.AtomicWrite(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

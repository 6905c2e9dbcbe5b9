// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/infinisean/papub/internal/compare"
)

// WatchConfig tunes watch mode
type WatchConfig struct {
	Debounce  time.Duration `yaml:"debounce"`
	StateFile string        `yaml:"state_file"` // empty disables persistence
}

// Config for the papub CLI
type Config struct {
	OutputDir  string             `yaml:"output_dir"`
	LogLevel   string             `yaml:"log_level"`
	LogFormat  string             `yaml:"log_format"`
	StaleAfter time.Duration      `yaml:"stale_after"`
	Watch      WatchConfig        `yaml:"watch"`
	Thresholds compare.Thresholds `yaml:"thresholds"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		OutputDir:  "output",
		LogLevel:   "info",
		LogFormat:  "auto",
		StaleAfter: 24 * time.Hour,
		Watch: WatchConfig{
			Debounce: 2 * time.Second,
		},
		Thresholds: compare.DefaultThresholds(),
	}
}

// Load reads config from a YAML file with env overrides. Keys missing from
// the file keep their defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// Env overrides
	if dir := os.Getenv("PAPUB_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	if lvl := os.Getenv("PAPUB_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that would make classification meaningless
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.StaleAfter < 0 {
		return fmt.Errorf("stale_after must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}

	t := c.Thresholds
	if t.Arp.SuccessTolerance < 0 || t.Arp.ErrorDrop < 0 {
		return fmt.Errorf("thresholds.arp values must not be negative")
	}
	if t.Sessions.StablePct > t.Sessions.ModeratePct {
		return fmt.Errorf("thresholds.sessions.stable_pct (%v) exceeds moderate_pct (%v)", t.Sessions.StablePct, t.Sessions.ModeratePct)
	}
	if t.SessionCount.StablePct > t.SessionCount.ModeratePct {
		return fmt.Errorf("thresholds.session_count.stable_pct (%v) exceeds moderate_pct (%v)", t.SessionCount.StablePct, t.SessionCount.ModeratePct)
	}
	return nil
}

// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds all tunable settings for the blubble binaries.
type Config struct {
	SSHHost    string `env:"BLUBBLE_SSH_HOST" envDefault:"::"`
	SSHPort    string `env:"BLUBBLE_SSH_PORT" envDefault:"2222"`
	SSHHostKey string `env:"BLUBBLE_SSH_HOST_KEY" envDefault:""`

	WebHost        string `env:"BLUBBLE_WEB_HOST" envDefault:"0.0.0.0"`
	WebPort        string `env:"BLUBBLE_WEB_PORT" envDefault:"8080"`
	SSHDisplayHost string `env:"BLUBBLE_SSH_DISPLAY_HOST" envDefault:"your-server.com"`

	// DBPath is where best score and mute preference live; empty means
	// the per-user default location.
	DBPath string `env:"BLUBBLE_DB" envDefault:""`

	// Seed fixes the RNG for reproducible sessions; 0 means time-seeded.
	Seed int64 `env:"BLUBBLE_SEED" envDefault:"0"`
}

// Load parses the environment and fills in derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	return cfg, nil
}

// defaultDBPath places the settings database in the user config dir,
// falling back to the working directory when none is available.
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "blubble.db"
	}
	return filepath.Join(dir, "blubble", "blubble.db")
}

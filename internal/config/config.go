// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings for stackvault.
type Config struct {
	// StorageDir is the directory holding the vault database. Defaults to
	// <user config dir>/stackvault when empty.
	StorageDir string `env:"STACKVAULT_DIR"`

	// SessionID identifies the current session. When empty a fresh random
	// session is generated per process, so the volatile slot does not
	// survive the process. Shells that want browser-tab-like semantics can
	// export a stable value.
	SessionID string `env:"STACKVAULT_SESSION"`

	// KDFIterations is the PBKDF2 iteration count for passphrase-derived
	// keys. Only consulted when deriving a new key; existing blobs use the
	// count in effect when they were sealed.
	KDFIterations int `env:"STACKVAULT_KDF_ITERS" envDefault:"210000"`

	// MetalsAPIKey authenticates against goldapi.io for spot prices. When
	// empty the fallback price is used.
	MetalsAPIKey string `env:"METALS_API_KEY"`

	// SpotCacheTTL bounds how often the spot price is re-fetched.
	SpotCacheTTL time.Duration `env:"STACKVAULT_SPOT_TTL" envDefault:"5m"`

	// UndoWindow is how long a removed item stays recoverable.
	UndoWindow time.Duration `env:"STACKVAULT_UNDO_WINDOW" envDefault:"8s"`
}

// Load parses the environment into a Config and fills in defaults that
// cannot be expressed as struct tags.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.StorageDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate user config dir: %w", err)
		}
		cfg.StorageDir = filepath.Join(base, "stackvault")
	}

	return cfg, nil
}

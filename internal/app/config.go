package app

import (
	"errors"

	"github.com/voglerr/eventplan/internal/resolve"
)

// Config holds everything an App instance needs to run.
type Config struct {
	ConfigPath string // pipeline definition: .hcl file or directory

	Format string // plan output format: json or yaml

	LogFormat string
	LogLevel  string

	// Identity is the cloud account context for identifier synthesis. When
	// ResolveIdentity is set, it is fetched via STS at startup instead.
	Identity        resolve.Identity
	ResolveIdentity bool

	// ValidateOnly stops after the validation pass.
	ValidateOnly bool
}

// NewConfig validates the application configuration itself (not the pipeline
// definition, which has its own validation engine).
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

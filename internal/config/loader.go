package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads a pipeline definition from the given path (a single file or
	// a directory), translates it into the format-agnostic model with all
	// defaults applied, and returns it.
	Load(ctx context.Context, path string) (*Pipeline, error)
}

package app

import (
	"io"
	"log/slog"

	"github.com/voglerr/eventplan/internal/config"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. The plan is written to outW; logs go to the logger's own
// writer so a JSON plan on stdout stays machine-readable.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader config.Loader
	cfg    *Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func New(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		loader: loader,
		cfg:    cfg,
	}
}

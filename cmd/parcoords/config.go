package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// cliConfig holds defaults read from PARCOORDS_* environment variables.
// Command line flags override them.
type cliConfig struct {
	Width       int    `envconfig:"WIDTH" default:"1000"`
	Height      int    `envconfig:"HEIGHT" default:"600"`
	Supersample int    `envconfig:"SUPERSAMPLE" default:"2"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	CellWidth   int    `envconfig:"CELL_WIDTH" default:"8"`
	CellHeight  int    `envconfig:"CELL_HEIGHT" default:"16"`
}

func loadConfig() (cliConfig, error) {
	var cfg cliConfig
	if err := envconfig.Process("parcoords", &cfg); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	if cfg.CellWidth < 1 || cfg.CellHeight < 1 {
		return cfg, fmt.Errorf("environment: cell size must be positive, got %dx%d", cfg.CellWidth, cfg.CellHeight)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

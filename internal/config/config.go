// Package config provides environment configuration for bookfold.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/lehigh-university-libraries/bookfold/internal/book"
)

// Prefix of every environment variable read by bookfold.
const Prefix = "BOOKFOLD"

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables with the BOOKFOLD_ prefix.
type EnvConfig struct {
	// FirstPage is the number of the first page of the book.
	// Env: BOOKFOLD_FIRST_PAGE (default: 1)
	FirstPage int `envconfig:"FIRST_PAGE" default:"1"`

	// LastPage is the number of the last page of the book.
	// Env: BOOKFOLD_LAST_PAGE (default: 100)
	LastPage int `envconfig:"LAST_PAGE" default:"100"`

	// SheetHeight is the height of a sheet, in meters.
	// Env: BOOKFOLD_SHEET_HEIGHT (default: 0.2)
	SheetHeight float64 `envconfig:"SHEET_HEIGHT" default:"0.2"`

	// SheetDepth is the thickness of the book block, in meters.
	// Env: BOOKFOLD_SHEET_DEPTH (default: 0.1)
	SheetDepth float64 `envconfig:"SHEET_DEPTH" default:"0.1"`

	// OutputDir is where folding tables are saved when no path is given.
	// Env: BOOKFOLD_OUTPUT_DIR (default: patterns)
	OutputDir string `envconfig:"OUTPUT_DIR" default:"patterns"`

	// OutputFormat is the folding table format. Empty infers it from the output extension.
	// Env: BOOKFOLD_OUTPUT_FORMAT
	OutputFormat string `envconfig:"OUTPUT_FORMAT"`

	// LogLevel is the log verbosity level.
	// Env: BOOKFOLD_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Load reads the configuration from the environment.
func Load() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Book returns the book parameters, validated.
func (c EnvConfig) Book() (book.Config, error) {
	cfg := book.Config{
		FirstPage:   c.FirstPage,
		LastPage:    c.LastPage,
		SheetHeight: c.SheetHeight,
		SheetDepth:  c.SheetDepth,
	}
	if err := cfg.Validate(); err != nil {
		return book.Config{}, err
	}
	return cfg, nil
}

// SlogLevel parses LogLevel, falling back to INFO.
func (c EnvConfig) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

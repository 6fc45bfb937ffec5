// Package logging builds the zap logger used by the CLI
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration
type Config struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // "json" or "console"
	OutputPath  string `yaml:"output_path"`
	Development bool   `yaml:"development"`
}

// DefaultConfig logs warnings and above to stderr in console format
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "console", OutputPath: "stderr"}
}

// NewLogger creates a structured logger from config
func NewLogger(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}

	return zapConfig.Build()
}

// MustLogger is NewLogger falling back to a production logger on a bad config
func MustLogger(config Config) *zap.Logger {
	logger, err := NewLogger(config)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Warn("invalid logging config, using defaults", zap.Error(err))
		return fallback
	}
	return logger
}

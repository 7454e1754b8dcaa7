// Package logging builds the zap loggers shared by the CLI and library packages
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects logger shape
type Options struct {
	// Verbose lowers the level to debug, which enables classifier trace lines
	Verbose bool `toml:"verbose" yaml:"verbose" env:"KILLCTX_VERBOSE"`

	// Development switches to the human-readable console encoder
	Development bool `toml:"development" yaml:"development" env:"KILLCTX_LOG_DEV"`
}

// New builds a logger from opts
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("killctx"), nil
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

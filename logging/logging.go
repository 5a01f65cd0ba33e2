// Package logging builds flowmine's *zap.Logger.
//
// Grounded on codenerd's cmd/nerd/main.go: a zap.NewProductionConfig
// base, switched to zapcore.DebugLevel when verbose output is
// requested.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger: the production JSON encoder by default,
// or DebugLevel when verbose is true (cmd/flowmine's --verbose flag,
// spec.md §6).
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// Package logging builds the zap logger from the store configuration.
// Diagnostics go to stderr so command output on stdout stays pipeable;
// an optional file sink under the store directory can be enabled in
// config.yaml.
package logging

import (
	"fmt"
	"path/filepath"

	"epistle/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build constructs the logger for one CLI invocation. verbose forces
// debug level regardless of the configured level.
func Build(dir string, cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if cfg.Format != "json" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, filepath.Join(dir, cfg.File))
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", s)
	}
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"epistle/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildDefaults(t *testing.T) {
	logger, err := Build(t.TempDir(), config.DefaultConfig().Logging, false)
	require.NoError(t, err)
	defer logger.Sync()

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestBuildVerboseForcesDebug(t *testing.T) {
	cfg := config.LoggingConfig{Level: "error"}
	logger, err := Build(t.TempDir(), cfg, true)
	require.NoError(t, err)
	defer logger.Sync()

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestBuildRejectsUnknownLevel(t *testing.T) {
	_, err := Build(t.TempDir(), config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestBuildFileSink(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoggingConfig{Level: "info", Format: "json", File: "epistle.log"}
	logger, err := Build(dir, cfg, false)
	require.NoError(t, err)

	logger.Info("hello")
	// Sync flushes the file sink; syncing stderr may fail on some
	// platforms, so the error is not asserted.
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "epistle.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

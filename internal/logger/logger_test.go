package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appfwlog/appfwlog/pkg/config"
)

func TestNew_Defaults(t *testing.T) {
	log := New(config.LoggingConfig{})
	require.NotNil(t, log)
	log.Info("hello")
}

func TestNew_FileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diag.log")

	log := New(config.LoggingConfig{Level: "debug", Path: path, MaxSize: 1})
	log.Debugf("debug line %d", 1)
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line 1")
}

func TestNew_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diag.log")

	log := New(config.LoggingConfig{Level: "warn", Path: path, MaxSize: 1})
	log.Debug("too quiet")
	log.Info("still too quiet")
	log.Warn("loud enough")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "too quiet")
	assert.Contains(t, string(data), "loud enough")
}

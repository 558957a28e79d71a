package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "unitutor.log")
	logger, err := New(path, "info", false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_Verbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unitutor.log")
	logger, err := New(path, "warn", true)
	require.NoError(t, err)

	logger.Debug("debug line")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "debug line"))
}

func TestNew_NoPath(t *testing.T) {
	logger, err := New("", "info", false)
	require.NoError(t, err)
	logger.Info("dropped")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "loud", false)
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "unitutor.log"), DefaultPath("/data/unitutor.db"))
}

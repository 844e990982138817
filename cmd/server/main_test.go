package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BadConfigPath(t *testing.T) {
	t.Setenv("JOBFORGE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_RequiresJWTSecret(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "server.log")
	t.Setenv("JOBFORGE_CONFIG", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JOBFORGE_JWT_SECRET", "")
	t.Setenv("JOBFORGE_LOG_FILE", logFile)

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")

	// the log file was opened by run and released on return
	_, statErr := os.Stat(logFile)
	assert.NoError(t, statErr)
	assert.NoError(t, os.Remove(logFile))
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/trackview/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestExitCodeBadConfig(t *testing.T) {
	t.Setenv("TRACKVIEW_CONFIG", writeConfig(t, "route: [not a map\n"))

	assert.Equal(t, 1, exitCode())
}

func TestExitCodeFlushesLog(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "facestat.log")
	t.Setenv("TRACKVIEW_CONFIG", writeConfig(t, "route:\n  blocks: 4\nlogging:\n  level: info\n  log_file: "+logFile+"\n"))
	frames := *flagFrames
	*flagFrames = 3
	t.Cleanup(func() { *flagFrames = frames })

	require.Equal(t, 0, exitCode())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "route loaded")
}

func TestRunSmallRoute(t *testing.T) {
	cfg := config.Default()
	cfg.Route.Blocks = 4
	cfg.Rendering.CheckInvariants = true
	frames := *flagFrames
	*flagFrames = 10
	t.Cleanup(func() { *flagFrames = frames })

	require.NoError(t, run(context.Background(), cfg))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, run(ctx, config.Default()), context.Canceled)
}

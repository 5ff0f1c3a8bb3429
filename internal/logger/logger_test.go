package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledDiscards(t *testing.T) {
	c, err := Init(Options{})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	Info("dropped")
}

func TestInit_WritesDailyFileAndCleansOld(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	stale := filepath.Join(dir, "treedit-2026-01-01.log")
	recent := filepath.Join(dir, "treedit-2026-03-01.log")
	other := filepath.Join(dir, "notes-2020-01-01.log")
	for _, p := range []string{stale, recent, other} {
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	c, err := Init(Options{Enabled: true, Dir: dir, Level: slog.LevelDebug, Now: func() time.Time { return now }})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Init(Options{}) })

	Debug("hello", "id", 7)
	require.NoError(t, c.Close())

	b, err := os.ReadFile(filepath.Join(dir, "treedit-2026-03-10.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"id":7`)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, recent)
	assert.FileExists(t, other)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

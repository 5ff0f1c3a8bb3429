// Package logger is the process-wide structured logger.
//
// The terminal belongs to the TUI, so nothing is logged to stdout or stderr:
// output is discarded until Init points it at a daily file.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L discards everything until Init is called with Enabled set.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	logPrefix     = "treedit-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures Init. The zero value leaves logging off; Now is only
// overridden by tests that need a fixed file date.
type Options struct {
	Enabled bool
	Dir     string     // default ~/.treedit/logs
	Level   slog.Level // default info
	Now     func() time.Time
}

// Init configures L. The returned closer releases the log file; it is a
// no-op when logging is disabled.
func Init(opts Options) (io.Closer, error) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nopCloser{}, nil
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	dir := opts.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home: %w", err)
		}
		dir = filepath.Join(home, ".treedit", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	cleanOldLogs(dir, now())

	name := filepath.Join(dir, logPrefix+now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return f, nil
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values are
// an error.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// cleanOldLogs removes our log files older than retentionDays. Best effort.
func cleanOldLogs(dir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		date, err := time.Parse("2006-01-02", strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil {
			continue
		}
		if date.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }

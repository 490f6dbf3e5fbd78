// Package logging sets up structured logging with slog: console output plus
// a weekly log file with retention-based cleanup, and package-level helpers
// so callers do not need to thread a logger around.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Options controls logger construction.
type Options struct {
	Dir            string // log directory; empty disables file output
	Level          string // debug, info, warn, error
	RetentionWeeks int
}

var defaultLogger *slog.Logger

// Init builds the global logger and installs it as the slog default.
func Init(opts Options) error {
	level := parseLevel(opts.Level)

	writers := []io.Writer{os.Stdout}
	if opts.Dir != "" {
		file, err := openWeeklyFile(opts.Dir)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
		cleanupOldLogs(opts.Dir, opts.RetentionWeeks)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openWeeklyFile opens (creating if needed) the current ISO-week log file.
func openWeeklyFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	year, week := time.Now().ISOWeek()
	name := fmt.Sprintf("app-%d-W%02d.log", year, week)
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// cleanupOldLogs removes weekly log files older than the retention window.
func cleanupOldLogs(dir string, retentionWeeks int) {
	if retentionWeeks <= 0 {
		return
	}
	cutoff := time.Now().Add(-time.Duration(retentionWeeks) * 7 * 24 * time.Hour)
	matches, _ := filepath.Glob(filepath.Join(dir, "app-*.log"))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			slog.Warn("Failed to remove old log file", "path", path, "error", err)
		}
	}
}

// logger returns the initialized logger, or a stderr fallback before Init.
func logger() *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func Debug(msg string, args ...any) { logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { logger().Warn(msg, args...) }
func Error(msg string, args ...any) { logger().Error(msg, args...) }

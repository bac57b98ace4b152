package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

const defaultLogPath = "~/.local/state/store3d-bridge/bridge.log"

// SetupLogger creates the bridge logger: text to stderr for interactive use,
// JSON to the log file for later inspection. When quiet is true (panel mode)
// stderr output is suppressed so the TUI stays clean. Returns the logger and
// a cleanup function that closes the file.
func SetupLogger(level slog.Level, quiet bool) (*slog.Logger, func() error) {
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	path, err := expandPath(defaultLogPath)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	var file *os.File
	if err == nil {
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
	if err != nil {
		if quiet {
			return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }
		}
		logger := slog.New(stderrHandler)
		logger.Warn("log file unavailable, using stderr only", "error", err)
		return logger, func() error { return nil }
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	cleanup := func() error { return file.Close() }

	if quiet {
		return slog.New(fileHandler), cleanup
	}
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler)), cleanup
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
}

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LevelTrace sits below slog's debug level.
const LevelTrace = slog.Level(-8)

// levelNone is above every level the interpreter logs at.
const levelNone = slog.Level(64)

// ParseLevel maps trace, debug, info, warn, error and none to slog levels.
// Unknown names behave like none.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return levelNone
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the JSON logger used by the interpreter. With level none the
// logger discards everything. When file is set, records are appended to it;
// if the file can't be opened the logger falls back to stderr and the error
// is returned alongside a usable logger.
func New(level, file string) (*slog.Logger, io.Closer, error) {
	lvl := ParseLevel(level)
	if lvl == levelNone {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), nopCloser{}, nil
	}

	w, closer, err := openWriter(file)
	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     lvl,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), closer, err
}

func openWriter(file string) (io.Writer, io.Closer, error) {
	if file == "" {
		return os.Stderr, nopCloser{}, nil
	}
	// Create parent directories if they don't exist
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return os.Stderr, nopCloser{}, fmt.Errorf("create log directory for '%s': %w", file, err)
	}
	fh, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr, nopCloser{}, fmt.Errorf("open log file '%s': %w", file, err)
	}
	return fh, fh, nil
}

package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

// New creates a new zerolog logger based on the provided log level string.
// When dir is empty the logger writes to stdout, otherwise it appends to
// <dir>/log_file_YYYY-MM-DD.txt. The returned closer releases the log file
// and is a no-op for stdout.
// Returns an error if the log level string cannot be parsed.
func New(level string, dir string) (Logger, io.Closer, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if dir != "" {
		file, err := openLogFile(dir, time.Now())
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		out = file
		closer = file
	}

	// Create logger with JSON output, timestamp, and specified level
	logger := zerolog.New(out).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, closer, nil
}

// LogFileName returns the name of the diagnostics file for the given day.
func LogFileName(day time.Time) string {
	return fmt.Sprintf("log_file_%s.txt", day.Format(time.DateOnly))
}

func openLogFile(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, LogFileName(now))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Ctx extracts a logger from the context.
// Returns a disabled logger if no logger is found in context.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}

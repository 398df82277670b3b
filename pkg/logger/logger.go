// Package logger provides the process-wide zerolog logger used by posterbot.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // console, json
	File   string `json:"file" mapstructure:"file"`     // optional log file, appended to
}

var (
	root        zerolog.Logger
	logFile     *os.File
	logPath     string
	mu          sync.RWMutex
	initialized bool
)

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init configures the process logger. It may be called again to reconfigure;
// a previously opened log file is closed first.
func Init(cfg LogConfig) error {
	mu.Lock()
	defer mu.Unlock()

	var out io.Writer = os.Stderr
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02T15:04:05-07:00"}
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		logPath = ""
	}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", cfg.File, err)
		}
		logFile = f
		logPath = cfg.File
		out = io.MultiWriter(out, f)
	}

	root = zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	initialized = true
	return nil
}

// SetOutput replaces the logger sink, keeping json format. Intended for tests
// that assert on log lines.
func SetOutput(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	root = zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	initialized = true
}

// Get returns the process logger.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		return &l
	}
	l := root
	return &l
}

// Close closes the log file if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		logPath = ""
		return err
	}
	return nil
}

// FilePath returns the path of the open log file, or "" when none is open.
func FilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// WithRequestID returns a context carrying a child logger tagged with the
// request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := Get().With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or the process logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return Get()
}

// Debug returns a debug level event.
func Debug() *zerolog.Event {
	return Get().Debug()
}

// Info returns an info level event.
func Info() *zerolog.Event {
	return Get().Info()
}

// Warn returns a warn level event.
func Warn() *zerolog.Event {
	return Get().Warn()
}

// Error returns an error level event.
func Error() *zerolog.Event {
	return Get().Error()
}

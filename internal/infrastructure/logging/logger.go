package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nerrad567/homesim/internal/infrastructure/config"
)

// ServiceName is attached to every log entry.
const ServiceName = "homesim"

// redacted replaces the value of credential attributes.
const redacted = "[REDACTED]"

// credentialKeys are attribute keys whose values never reach the output.
var credentialKeys = map[string]bool{
	"password": true,
	"token":    true,
	"secret":   true,
}

// Logger is a slog.Logger carrying the service and version attributes.
// It is safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New creates a Logger for cfg. Output "stdout" and "discard" are honoured;
// anything else writes to stderr, leaving stdout to command results.
func New(cfg config.LoggingConfig, version string) *Logger {
	return NewWithWriter(cfg, version, outputFor(cfg.Output))
}

// NewWithWriter creates a Logger writing to w, ignoring cfg.Output.
func NewWithWriter(cfg config.LoggingConfig, version string, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: redactCredentials,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("version", version),
	)}
}

func outputFor(name string) io.Writer {
	switch strings.ToLower(name) {
	case "stdout":
		return os.Stdout
	case "discard":
		return io.Discard
	default:
		return os.Stderr
	}
}

// parseLevel maps debug, info, warn(ing) and error to slog levels.
// Unknown names mean info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func redactCredentials(_ []string, a slog.Attr) slog.Attr {
	if credentialKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, redacted)
	}
	return a
}

// With returns a child Logger with extra attributes.
//
//	storeLogger := logger.With("component", "store")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default returns an info-level JSON logger on stderr, for use before the
// configuration is loaded.
func Default() *Logger {
	return NewWithWriter(config.LoggingConfig{}, "dev", os.Stderr)
}

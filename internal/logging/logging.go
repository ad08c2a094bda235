package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is more verbose than slog.LevelDebug.
const LevelTrace = slog.LevelDebug - 4

// LevelOff disables every record it applies to.
const LevelOff = slog.Level(1 << 30)

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level when Filter is nil.
	// A nil Level means slog.LevelInfo.
	Level slog.Leveler
	// Format specifies the output format (text or JSON).
	Format Format
	// Output is where log messages are written. Defaults to os.Stderr if nil.
	Output io.Writer
	// Color enables ANSI colours in text output.
	Color bool
	// Timeless omits timestamps from text output. JSON output always
	// carries a timestamp.
	Timeless bool
	// Filter selects records by target and level, e.g. the result of
	// NewFilter("info,app/db=debug"). It takes precedence over Level when
	// non-nil; an empty directive list keeps errors only.
	Filter *Filter
	// SpanEvents keeps the "new" and "close" records emitted by spans.
	SpanEvents bool
}

// New creates a logger with the given configuration.
// If cfg.Output is nil, it defaults to os.Stderr.
// If cfg.Format is not recognized, it defaults to FormatText.
func New(cfg Config) *slog.Logger {
	return slog.New(NewHandlerChain(cfg))
}

// NewHandlerChain builds the handler behind [New]: a span handler over an
// optional filter handler over the text or JSON formatter.
func NewHandlerChain(cfg Config) slog.Handler {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if cfg.Level != nil {
		level = cfg.Level
	}

	filter := cfg.Filter
	if filter != nil {
		// The filter decides; the formatter must not drop anything first.
		level = filter.MinLevel()
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceJSONAttr,
		})
	default:
		handler = NewHandler(output, &HandlerOptions{
			Level:    level,
			Color:    cfg.Color,
			Timeless: cfg.Timeless,
		})
	}

	if filter != nil {
		handler = NewFilterHandler(filter, handler)
	}
	return NewSpanHandler(handler, cfg.SpanEvents)
}

// NewDiscard creates a logger that discards all output.
// Use this for quiet mode or when logging should be suppressed.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LevelFromVerbosity maps a -v count to a level: 0 is Warn, 1 Info,
// 2 Debug and anything above is Trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ParseLevel converts a level name to a slog.Level. It accepts trace,
// debug, info, warn (or warning), error and off, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off":
		return LevelOff, nil
	}
	return 0, errors.Newf("unknown level %q", s)
}

// LevelName returns the display name of a level, naming LevelTrace TRACE
// rather than DEBUG-4.
func LevelName(l slog.Level) string {
	switch {
	case l < slog.LevelDebug:
		return "TRACE"
	case l < slog.LevelInfo:
		return "DEBUG"
	case l < slog.LevelWarn:
		return "INFO"
	case l < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// replaceJSONAttr names levels the way the text handler does and masks
// secrets.
func replaceJSONAttr(groups []string, a slog.Attr) slog.Attr {
	return redactAttr(groups, replaceLevelName(groups, a))
}

func replaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelName(l))
		}
	}
	return a
}

// testWriter adapts testing.T to io.Writer for use with slog handlers.
type testWriter struct {
	t *testing.T
}

// Write implements io.Writer by logging to the test.
func (w *testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	// Trim trailing newline since t.Log adds its own
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a logger that writes to the test's log output.
// Log messages appear only when the test fails or when running with -v.
// The logger is configured at Trace level to capture all messages.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:      LevelTrace,
		Format:     FormatText,
		Output:     &testWriter{t: t},
		Timeless:   true,
		SpanEvents: true,
	})
}

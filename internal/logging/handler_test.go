package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h)

	logger.Info("hello world", "foo", "value")

	output := buf.String()

	// Example: 2024-05-01T10:00:00.000000Z  INFO hello world foo=value
	if !strings.Contains(output, " INFO ") {
		t.Errorf("expected level INFO in output, got: %q", output)
	}
	if !strings.Contains(output, "hello world") {
		t.Errorf("expected message in output, got: %q", output)
	}
	if !strings.Contains(output, "foo=value") {
		t.Errorf("expected attribute in output, got: %q", output)
	}
	if !strings.HasSuffix(output, "\n") || strings.Count(output, "\n") != 1 {
		t.Errorf("expected exactly one line, got: %q", output)
	}

	stamp, _, _ := strings.Cut(output, " ")
	if _, err := time.Parse(time.RFC3339Nano, stamp); err != nil {
		t.Errorf("expected RFC 3339 timestamp first, got %q: %v", stamp, err)
	}
}

func TestHandler_Timeless(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &HandlerOptions{Timeless: true})
	slog.New(h).Info("no stamp")

	if got, want := buf.String(), " INFO no stamp\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)
	logger := slog.New(h).With("common", "attr")

	logger.Info("message", "local", "val")

	output := buf.String()
	if !strings.Contains(output, "common=attr") {
		t.Errorf("expected common attribute in output, got: %q", output)
	}
	if !strings.Contains(output, "local=val") {
		t.Errorf("expected local attribute in output, got: %q", output)
	}
}

func TestHandler_Target(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &HandlerOptions{Timeless: true})

	Target(slog.New(h), "app/db").Info("connected", "addr", "localhost")

	if got, want := buf.String(), " INFO app/db: connected addr=localhost\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &HandlerOptions{Timeless: true})

	slog.New(h).WithGroup("req").Info("served", "status", 200)

	if !strings.Contains(buf.String(), "req.status=200") {
		t.Errorf("expected grouped key, got: %q", buf.String())
	}
}

func TestHandler_QuotesValues(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &HandlerOptions{Timeless: true})

	slog.New(h).Info("m", "path", "with space")

	if !strings.Contains(buf.String(), `path="with space"`) {
		t.Errorf("expected quoted value, got: %q", buf.String())
	}
}

func TestHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got, want := buf.String(), " INFO no time\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHandler_Color(t *testing.T) {
	var plain, colored bytes.Buffer
	slog.New(NewHandler(&plain, &HandlerOptions{Timeless: true})).Warn("careful")
	slog.New(NewHandler(&colored, &HandlerOptions{Timeless: true, Color: true})).Warn("careful")

	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("expected no escape codes without Color, got: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("expected escape codes with Color, got: %q", colored.String())
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(h)

	logger.Info("sensitive data", "api_key", "secret12345", "Token", "ghp_abcdef")

	output := buf.String()
	if strings.Contains(output, "secret12345") {
		t.Error("api_key value should be redacted")
	}
	if !strings.Contains(output, "api_key=****2345") {
		t.Errorf("expected masked api_key, got: %q", output)
	}
	if !strings.Contains(output, "Token=****cdef") {
		t.Errorf("expected masked Token, got: %q", output)
	}

	buf.Reset()
	logger.Info("token value", "foo", "ghp_secrettoken")
	output = buf.String()
	if !strings.Contains(output, "foo=****oken") {
		t.Errorf("expected masked value based on prefix, got: %q", output)
	}
}

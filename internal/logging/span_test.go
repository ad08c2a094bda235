package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestStartSpan_Events(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Output:     &buf,
		Timeless:   true,
		Filter:     NewFilter("debug"),
		SpanEvents: true,
	})

	ctx, span := StartSpan(t.Context(), logger, "sync", "repo", "main")
	logger.InfoContext(ctx, "working")
	span.End()
	span.End()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "new") || !strings.Contains(lines[0], "repo=main") {
		t.Errorf("first line should be the new event, got: %q", lines[0])
	}
	if !strings.Contains(lines[1], "working span=sync") {
		t.Errorf("record inside span should carry its path, got: %q", lines[1])
	}
	if !strings.Contains(lines[2], "close") || !strings.Contains(lines[2], "elapsed=") {
		t.Errorf("last line should be the close event, got: %q", lines[2])
	}
}

func TestStartSpan_EventsDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Output:   &buf,
		Timeless: true,
		Filter:   NewFilter("trace"),
	})

	ctx, span := StartSpan(t.Context(), logger, "sync")
	logger.InfoContext(ctx, "working")
	span.End()

	output := buf.String()
	if strings.Count(output, "\n") != 1 {
		t.Fatalf("expected only the record, got: %q", output)
	}
	if !strings.Contains(output, "span=sync") {
		t.Errorf("span path should still be attached, got: %q", output)
	}
}

func TestSpanPath_Nested(t *testing.T) {
	logger := NewDiscard()
	ctx, outer := StartSpan(t.Context(), logger, "outer")
	inner, span := StartSpan(ctx, logger, "inner")
	defer outer.End()
	defer span.End()

	if got := SpanPath(inner); got != "outer>inner" {
		t.Errorf("SpanPath() = %q, want %q", got, "outer>inner")
	}
	if got := SpanPath(context.Background()); got != "" {
		t.Errorf("SpanPath(background) = %q, want empty", got)
	}
}

package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SpanKey is the attribute key holding the path of enclosing spans.
const SpanKey = "span"

// SpanLevel is the level of span "new" and "close" events.
const SpanLevel = slog.LevelDebug

type spanPathKey struct{}

type spanEventKey struct{}

// Span is a named region of work. Records logged with a context returned by
// [StartSpan] carry the span path, e.g. span=sync>fetch.
type Span struct {
	ctx    context.Context
	logger *slog.Logger
	start  time.Time
	once   sync.Once
}

// StartSpan opens a span named name beneath any span already in ctx and
// emits its "new" event with args.
func StartSpan(ctx context.Context, logger *slog.Logger, name string, args ...any) (context.Context, *Span) {
	path := name
	if parent := SpanPath(ctx); parent != "" {
		path = parent + ">" + name
	}
	ctx = context.WithValue(ctx, spanPathKey{}, path)

	s := &Span{ctx: ctx, logger: logger, start: time.Now()}
	logger.Log(context.WithValue(ctx, spanEventKey{}, true), SpanLevel, "new", args...)
	return ctx, s
}

// End emits the span's "close" event. Calls after the first do nothing.
func (s *Span) End() {
	s.once.Do(func() {
		elapsed := time.Since(s.start)
		s.logger.Log(context.WithValue(s.ctx, spanEventKey{}, true), SpanLevel, "close",
			"elapsed", elapsed.String())
	})
}

// SpanPath returns the path of the innermost span in ctx, or "".
func SpanPath(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	path, _ := ctx.Value(spanPathKey{}).(string)
	return path
}

func isSpanEvent(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	ev, _ := ctx.Value(spanEventKey{}).(bool)
	return ev
}

// SpanHandler adds the span path to records and drops span lifecycle
// events unless they are enabled.
type SpanHandler struct {
	next   slog.Handler
	events bool
}

// NewSpanHandler wraps next. When events is false, the "new" and "close"
// records emitted by spans are discarded.
func NewSpanHandler(next slog.Handler, events bool) *SpanHandler {
	return &SpanHandler{next: next, events: events}
}

// Enabled reports whether next handles level, and false for span events
// when they are disabled.
func (h *SpanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if !h.events && isSpanEvent(ctx) {
		return false
	}
	return h.next.Enabled(ctx, level)
}

// Handle adds the span attribute and forwards r.
func (h *SpanHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.events && isSpanEvent(ctx) {
		return nil
	}
	if path := SpanPath(ctx); path != "" {
		r = r.Clone()
		r.AddAttrs(slog.String(SpanKey, path))
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs returns a SpanHandler over next.WithAttrs(attrs).
func (h *SpanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SpanHandler{next: h.next.WithAttrs(attrs), events: h.events}
}

// WithGroup returns a SpanHandler over next.WithGroup(name).
func (h *SpanHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SpanHandler{next: h.next.WithGroup(name), events: h.events}
}

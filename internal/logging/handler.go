package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// TargetKey is the attribute key naming the component a record comes from.
const TargetKey = "target"

// timeFormat is RFC 3339 in UTC with microseconds.
const timeFormat = "2006-01-02T15:04:05.000000Z07:00"

// HandlerOptions configures a [Handler].
type HandlerOptions struct {
	// Level is the minimum level handled. A nil Level means slog.LevelInfo.
	Level slog.Leveler
	// Color enables ANSI colours.
	Color bool
	// Timeless omits the timestamp.
	Timeless bool
}

// Handler implements slog.Handler for single-line human-readable output:
//
//	2024-05-01T10:00:00.000000Z  INFO app/db: connected addr=localhost
type Handler struct {
	opts   HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
	target string

	// Colors
	timeColor   *color.Color
	traceColor  *color.Color
	debugColor  *color.Color
	infoColor   *color.Color
	warnColor   *color.Color
	errorColor  *color.Color
	keyColor    *color.Color
	targetColor *color.Color
}

// NewHandler creates a new text handler writing to out.
func NewHandler(out io.Writer, opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}

	if opts.Color {
		h.timeColor = newColor(color.FgHiBlack)
		h.traceColor = newColor(color.FgBlue)
		h.debugColor = newColor(color.FgMagenta)
		h.infoColor = newColor(color.FgGreen)
		h.warnColor = newColor(color.FgYellow)
		h.errorColor = newColor(color.FgRed, color.Bold)
		h.keyColor = newColor(color.Italic)
		h.targetColor = newColor(color.Faint)
	}

	return h
}

// newColor returns a colour that ignores fatih/color's own terminal
// detection; whether to colour has already been decided by the caller.
func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats the record and writes it with a single Write call.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	// 1. Time
	if !h.opts.Timeless && !r.Time.IsZero() {
		buf.WriteString(h.paint(h.timeColor, r.Time.UTC().Format(timeFormat)))
		buf.WriteByte(' ')
	}

	// 2. Level
	buf.WriteString(h.paint(h.levelColor(r.Level), fmt.Sprintf("%5s", LevelName(r.Level))))
	buf.WriteByte(' ')

	// 3. Target
	target := h.target
	if target == "" {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == TargetKey && len(h.groups) == 0 {
				target = a.Value.String()
				return false
			}
			return true
		})
	}
	if target != "" {
		buf.WriteString(h.paint(h.targetColor, target+":"))
		buf.WriteByte(' ')
	}

	// 4. Message
	buf.WriteString(r.Message)

	// 5. Attributes (from WithAttrs)
	for _, a := range h.attrs {
		h.appendAttr(&buf, a)
	}

	// 6. Attributes (from Record)
	prefix := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == TargetKey && prefix == "" {
			return true
		}
		h.appendAttr(&buf, prefixed(prefix, a))
		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) levelColor(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return h.errorColor
	case l >= slog.LevelWarn:
		return h.warnColor
	case l >= slog.LevelInfo:
		return h.infoColor
	case l >= slog.LevelDebug:
		return h.debugColor
	default:
		return h.traceColor
	}
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) appendAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		for _, ga := range attrs {
			if a.Key != "" {
				ga.Key = a.Key + "." + ga.Key
			}
			h.appendAttr(buf, ga)
		}
		return
	}

	key := h.paint(h.keyColor, a.Key)

	var value any
	if a.Value.Kind() == slog.KindTime {
		value = a.Value.Time().UTC().Format(timeFormat)
	} else {
		value = a.Value.Any()
	}

	// Redact sensitive values
	if ShouldMask(a.Key) {
		value = MaskValue(fmt.Sprint(value))
	} else if strVal, ok := value.(string); ok {
		if ContainsTokenPrefix(strVal) {
			value = MaskValue(strVal)
		} else if strings.ContainsAny(strVal, " \t\n\"=") {
			value = fmt.Sprintf("%q", strVal)
		}
	}

	fmt.Fprintf(buf, " %s=%v", key, value)
}

func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

func prefixed(prefix string, a slog.Attr) slog.Attr {
	if prefix == "" {
		return a
	}
	a.Key = prefix + a.Key
	return a
}

// WithAttrs returns a new Handler with the given attributes. A top-level
// target attribute becomes the handler's target instead of a key=value pair.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newH := *h
	prefix := h.groupPrefix()
	newH.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newH.attrs, h.attrs)
	for _, a := range attrs {
		if a.Key == TargetKey && prefix == "" {
			newH.target = a.Value.String()
			continue
		}
		newH.attrs = append(newH.attrs, prefixed(prefix, a))
	}
	return &newH
}

// WithGroup returns a new Handler with the given group name.
// Groups are implemented by prefixing keys.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = make([]string, len(h.groups)+1)
	copy(newH.groups, h.groups)
	newH.groups[len(h.groups)] = name
	return &newH
}

// Target returns a logger whose records carry the given target.
func Target(logger *slog.Logger, target string) *slog.Logger {
	return logger.With(TargetKey, target)
}

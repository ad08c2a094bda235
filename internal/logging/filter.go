package logging

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Directive is one entry of a filter: records whose target starts with
// Target are kept at Level and above. An empty Target matches everything.
type Directive struct {
	Target string
	Level  slog.Level
}

// Filter decides, per target, the minimum level a record must have.
type Filter struct {
	// sorted by descending target length, so the first match is the most
	// specific one
	directives []Directive
	fallback   slog.Level
}

// ParseFilter parses a comma-separated directive list such as
// "warn,app=info,app/db=trace". Invalid directives are skipped; the
// returned error lists them, and the filter built from the rest is always
// usable.
func ParseFilter(s string) (*Filter, error) {
	f := &Filter{fallback: slog.LevelError}
	var errs []error

	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		var d Directive
		target, levelStr, hasTarget := strings.Cut(raw, "=")
		if !hasTarget {
			// A bare word is a level, or failing that, a target at trace.
			if l, err := ParseLevel(raw); err == nil {
				f.fallback = l
				continue
			}
			if !validTarget(raw) {
				errs = append(errs, errors.Newf("invalid directive %q", raw))
				continue
			}
			d = Directive{Target: raw, Level: LevelTrace}
		} else {
			target = strings.TrimSpace(target)
			l, err := ParseLevel(levelStr)
			if err != nil || !validTarget(target) {
				errs = append(errs, errors.Newf("invalid directive %q", raw))
				continue
			}
			d = Directive{Target: target, Level: l}
		}
		f.directives = append(f.directives, d)
	}

	sort.SliceStable(f.directives, func(i, j int) bool {
		return len(f.directives[i].Target) > len(f.directives[j].Target)
	})
	return f, errors.Join(errs...)
}

// NewFilter parses s like [ParseFilter] and ignores invalid directives.
func NewFilter(s string) *Filter {
	f, _ := ParseFilter(s)
	return f
}

func validTarget(t string) bool {
	return t != "" && !strings.ContainsAny(t, " \t[]{}")
}

// LevelFor returns the minimum level for records from target.
func (f *Filter) LevelFor(target string) slog.Level {
	if target != "" {
		for _, d := range f.directives {
			if matchTarget(d.Target, target) {
				return d.Level
			}
		}
	}
	return f.fallback
}

// MinLevel returns the most verbose level any directive allows.
func (f *Filter) MinLevel() slog.Level {
	lowest := f.fallback
	for _, d := range f.directives {
		if d.Level < lowest {
			lowest = d.Level
		}
	}
	return lowest
}

// Directives returns the parsed directives, most specific first, followed
// by the fallback level as a directive with an empty target.
func (f *Filter) Directives() []Directive {
	out := make([]Directive, 0, len(f.directives)+1)
	out = append(out, f.directives...)
	return append(out, Directive{Level: f.fallback})
}

// matchTarget reports whether target is prefix or lies beneath it.
func matchTarget(prefix, target string) bool {
	if !strings.HasPrefix(target, prefix) {
		return false
	}
	rest := target[len(prefix):]
	return rest == "" ||
		strings.HasPrefix(rest, "/") ||
		strings.HasPrefix(rest, ".") ||
		strings.HasPrefix(rest, "::")
}

// FilterHandler drops records below the level its [Filter] assigns to the
// record's target before passing them on.
type FilterHandler struct {
	filter *Filter
	next   slog.Handler
	target string
	// grouped is set once WithGroup was called; attributes added afterwards
	// are no longer top-level and cannot name the target.
	grouped bool
}

// NewFilterHandler wraps next with filter.
func NewFilterHandler(filter *Filter, next slog.Handler) *FilterHandler {
	return &FilterHandler{filter: filter, next: next}
}

// Enabled reports whether a record at level could pass. Without a known
// target it answers for the most verbose directive; Handle makes the final
// decision once the record's own attributes are visible.
func (h *FilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := h.filter.MinLevel()
	if h.target != "" {
		minLevel = h.filter.LevelFor(h.target)
	}
	return level >= minLevel && h.next.Enabled(ctx, level)
}

// Handle passes r on if its level meets the level for its target.
func (h *FilterHandler) Handle(ctx context.Context, r slog.Record) error {
	target := h.target
	if target == "" && !h.grouped {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == TargetKey {
				target = a.Value.String()
				return false
			}
			return true
		})
	}
	if r.Level < h.filter.LevelFor(target) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs returns a FilterHandler over next.WithAttrs(attrs).
func (h *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	if !h.grouped {
		for _, a := range attrs {
			if a.Key == TargetKey {
				newH.target = a.Value.String()
			}
		}
	}
	newH.next = h.next.WithAttrs(attrs)
	return &newH
}

// WithGroup returns a FilterHandler over next.WithGroup(name).
func (h *FilterHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.grouped = true
	newH.next = h.next.WithGroup(name)
	return &newH
}

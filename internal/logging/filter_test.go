package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		target  string
		want    slog.Level
		wantErr bool
	}{
		{"empty defaults to error", "", "", slog.LevelError, false},
		{"bare level", "debug", "anything", slog.LevelDebug, false},
		{"target directive", "app=trace", "app", LevelTrace, false},
		{"target directive child", "app=trace", "app/db", LevelTrace, false},
		{"target directive dotted child", "app=trace", "app.db", LevelTrace, false},
		{"target directive rust-style child", "app=trace", "app::db", LevelTrace, false},
		{"target is not a word prefix", "app=trace", "apple", slog.LevelError, false},
		{"unmatched falls back", "info,app=trace", "other", slog.LevelInfo, false},
		{"longest target wins", "app=warn,app/db=debug", "app/db/pool", slog.LevelDebug, false},
		{"order does not matter", "app/db=debug,app=warn", "app/http", slog.LevelWarn, false},
		{"bare target means trace", "info,app", "app", LevelTrace, false},
		{"off", "off,app=info", "lib", LevelOff, false},
		{"whitespace tolerated", " info , app = debug ", "app", slog.LevelDebug, false},
		{"invalid level skipped", "info,app=loud", "app", slog.LevelInfo, true},
		{"invalid target skipped", "info,a b=debug", "a b", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilter(%q) error = %v, wantErr %v", tt.filter, err, tt.wantErr)
			}
			if got := f.LevelFor(tt.target); got != tt.want {
				t.Errorf("LevelFor(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestParseFilter_ErrorNamesDirective(t *testing.T) {
	_, err := ParseFilter("info,app=loud,=debug")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{`"app=loud"`, `"=debug"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestFilter_MinLevel(t *testing.T) {
	tests := []struct {
		filter string
		want   slog.Level
	}{
		{"", slog.LevelError},
		{"warn", slog.LevelWarn},
		{"warn,app=trace", LevelTrace},
		{"debug,app=error", slog.LevelDebug},
	}

	for _, tt := range tests {
		if got := NewFilter(tt.filter).MinLevel(); got != tt.want {
			t.Errorf("NewFilter(%q).MinLevel() = %v, want %v", tt.filter, got, tt.want)
		}
	}
}

func TestFilter_Directives(t *testing.T) {
	got := NewFilter("info,a=debug,a/b=trace").Directives()
	want := []Directive{
		{Target: "a/b", Level: LevelTrace},
		{Target: "a", Level: slog.LevelDebug},
		{Level: slog.LevelInfo},
	}
	if len(got) != len(want) {
		t.Fatalf("Directives() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Directives()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFilterHandler_RecordTarget(t *testing.T) {
	var buf bytes.Buffer
	inner := NewHandler(&buf, &HandlerOptions{Level: LevelTrace, Timeless: true})
	logger := slog.New(NewFilterHandler(NewFilter("warn,app=debug"), inner))

	logger.Debug("kept", TargetKey, "app")
	logger.Debug("dropped", TargetKey, "lib")

	output := buf.String()
	if !strings.Contains(output, "kept") {
		t.Errorf("expected record with matching target attr, got: %q", output)
	}
	if strings.Contains(output, "dropped") {
		t.Errorf("expected record with other target to be filtered, got: %q", output)
	}
}

func TestFilterHandler_Enabled(t *testing.T) {
	inner := NewHandler(&bytes.Buffer{}, &HandlerOptions{Level: LevelTrace})
	h := NewFilterHandler(NewFilter("warn,app=debug"), inner)
	ctx := t.Context()

	if !h.Enabled(ctx, slog.LevelDebug) {
		t.Error("untargeted handler should admit the most verbose directive")
	}
	if h.Enabled(ctx, LevelTrace) {
		t.Error("no directive allows trace")
	}

	lib := h.WithAttrs([]slog.Attr{slog.String(TargetKey, "lib")})
	if lib.Enabled(ctx, slog.LevelInfo) {
		t.Error("lib target should be limited to warn")
	}
}

func TestFilterHandler_GroupedTargetIgnored(t *testing.T) {
	var buf bytes.Buffer
	inner := NewHandler(&buf, &HandlerOptions{Level: LevelTrace, Timeless: true})
	logger := slog.New(NewFilterHandler(NewFilter("warn,app=debug"), inner))

	logger.WithGroup("g").Debug("nested", TargetKey, "app")

	if buf.Len() != 0 {
		t.Errorf("grouped target attribute should not select a directive, got: %q", buf.String())
	}
}

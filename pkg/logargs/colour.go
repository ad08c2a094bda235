package logargs

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ColourMode decides whether terminal output is colourised.
type ColourMode int

const (
	// Auto colours output when stderr is a terminal.
	Auto ColourMode = iota
	// Always colours output, even when it is not a terminal.
	Always
	// Never colours output.
	Never
)

// ParseColourMode parses auto, always or never, case-insensitively.
func ParseColourMode(s string) (ColourMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return Auto, nil
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	}
	return Auto, errors.Newf("invalid colour mode %q (valid: auto, always, never)", s)
}

// ColourFromEnv reads the colour mode from the environment, following
// https://no-color.org and https://bixense.com/clicolors/. NO_COLOR yields
// Never and wins over everything else; CLICOLOR_FORCE yields Always.
// Otherwise ANSI support is enabled on platforms that need it, and Never is
// returned if that fails. CLICOLOR is ignored, since the default is Auto.
func ColourFromEnv() ColourMode {
	switch {
	case noColor():
		return Never
	case envSet(envClicolorForce):
		return Always
	case enableANSI() != nil:
		return Never
	default:
		return Auto
	}
}

// OrIfAuto returns other if m is Auto, and m otherwise.
func (m ColourMode) OrIfAuto(other ColourMode) ColourMode {
	if m == Auto {
		return other
	}
	return m
}

// Enabled reports whether to colour output. Auto checks whether stderr is
// an interactive terminal.
func (m ColourMode) Enabled() bool {
	switch m {
	case Always:
		return true
	case Never:
		return false
	default:
		return stderrIsTerminal()
	}
}

// WithEnv returns Never if NO_COLOR is set, and m otherwise.
//
// Deprecated: use [ColourFromEnv].
func (m ColourMode) WithEnv() ColourMode {
	if noColor() {
		return Never
	}
	return m
}

// WithWindows returns Never if ANSI support cannot be enabled, and m
// otherwise. It does nothing on platforms other than Windows.
//
// Deprecated: use [ColourFromEnv].
func (m ColourMode) WithWindows() ColourMode {
	if m == Never || enableANSI() != nil {
		return Never
	}
	return m
}

// String returns auto, always or never.
func (m ColourMode) String() string {
	switch m {
	case Always:
		return "always"
	case Never:
		return "never"
	default:
		return "auto"
	}
}

// Set implements pflag.Value.
func (m *ColourMode) Set(s string) error {
	mode, err := ParseColourMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Type implements pflag.Value.
func (m ColourMode) Type() string {
	return "mode"
}

// MarshalText implements encoding.TextMarshaler.
func (m ColourMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ColourMode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

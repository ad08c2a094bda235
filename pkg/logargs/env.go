package logargs

import (
	"os"

	"github.com/thoreinstein/logargs/internal/logging"
)

// Environment variables read by this package. Presence counts, not value:
// an empty NO_COLOR still disables colours.
const (
	// DefaultFilterEnv holds the early filter expression read by [ParsePreArgs].
	DefaultFilterEnv = "RUST_LOG"

	envNoColor         = "NO_COLOR"
	envClicolorForce   = "CLICOLOR_FORCE"
	envDebugInvocation = "DEBUG_INVOCATION"
	envJournalStream   = "JOURNAL_STREAM"
	envLogTimeless     = "LOG_TIMELESS"
)

// Replaced in tests.
var (
	stderrIsTerminal = logging.StderrIsTerminal
	enableANSI       = enableANSISupport
)

func envSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

func noColor() bool {
	return envSet(envNoColor)
}

// UnderServiceManager reports whether the process appears to run under
// systemd: stderr is connected to the journal rather than a terminal, or
// the unit was started in debug mode.
func UnderServiceManager() bool {
	return (envSet(envJournalStream) && !stderrIsTerminal()) || envSet(envDebugInvocation)
}

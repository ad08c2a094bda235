package logargs

import (
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/logargs/internal/logging"
)

// fakeTerminal makes stderr look like a terminal or not for the test.
func fakeTerminal(t *testing.T, isTerminal bool) {
	t.Helper()
	orig := stderrIsTerminal
	stderrIsTerminal = func() bool { return isTerminal }
	t.Cleanup(func() { stderrIsTerminal = orig })
}

// fakeANSI makes platform ANSI enablement fail when fail is set.
func fakeANSI(t *testing.T, fail bool) {
	t.Helper()
	orig := enableANSI
	enableANSI = func() error {
		if fail {
			return errors.New("no console")
		}
		return nil
	}
	t.Cleanup(func() { enableANSI = orig })
}

// clearEnv unsets every variable this package reads, restoring them after
// the test.
func clearEnv(t *testing.T, extra ...string) {
	t.Helper()
	names := append([]string{
		DefaultFilterEnv,
		envNoColor,
		envClicolorForce,
		envDebugInvocation,
		envJournalStream,
		envLogTimeless,
	}, extra...)
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

// resetInstalled allows one more installation and undoes it afterwards.
func resetInstalled(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	logging.ResetInstalled()
	t.Cleanup(func() {
		logging.ResetInstalled()
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})
}

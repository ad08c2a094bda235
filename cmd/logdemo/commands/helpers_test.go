package commands

import (
	"bytes"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/logargs/internal/logging"
	"github.com/thoreinstein/logargs/pkg/logargs"
)

// loggingEnv lists every variable that changes how logging is set up.
var loggingEnv = []string{
	"LOGDEMO_LOG",
	"LOGDEMO_FILTER_ENV",
	"LOGDEMO_LEVELS",
	"DEBUG_INVOCATION",
	"NO_COLOR",
	"CLICOLOR_FORCE",
	"JOURNAL_STREAM",
	"LOG_TIMELESS",
}

// resetCommands isolates config lookup in a fresh directory, clears the
// logging environment and flag state, and captures command output.
// It returns the config directory and the output buffer.
func resetCommands(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("LOGDEMO_CONFIG_DIR", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Chdir(dir)

	for _, name := range loggingEnv {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	logArgs = logargs.LoggingArgs{}
	runRequests = 3
	resetChanged := func(f *pflag.Flag) { f.Changed = false }
	rootCmd.PersistentFlags().VisitAll(resetChanged)
	runCmd.Flags().VisitAll(resetChanged)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		guard = nil
		cfg = defaultConfig()
		configLoadErr = nil
	})

	return dir, &out
}

// allowInstall lets a command install logging once more and undoes the
// installation after the test.
func allowInstall(t *testing.T) {
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

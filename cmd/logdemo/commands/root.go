// Package commands implements the CLI commands for logdemo.
package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/logargs/cmd"
	"github.com/thoreinstein/logargs/internal/config"
	clierrors "github.com/thoreinstein/logargs/internal/errors"
	"github.com/thoreinstein/logargs/internal/logging"
	"github.com/thoreinstein/logargs/pkg/logargs"
)

// annotationSkipLogging marks commands that run without installing logging.
const annotationSkipLogging = "logdemo/skip-logging"

// logArgs holds the logging flags shared by every command.
var logArgs logargs.LoggingArgs

// cfg is the loaded configuration, or the defaults when loading failed.
var cfg = defaultConfig()

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// guard is the installed logging session, set by the environment before
// flags are parsed or by setupLogging after.
var guard *logargs.Guard

func init() {
	logArgs.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate("logdemo version {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierrors.NewUserError(err, "Run: logdemo --help")
	})

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func defaultConfig() *config.Config {
	return &config.Config{
		FilterEnv: config.DefaultFilterEnv,
		Levels:    config.DefaultLevels,
	}
}

var rootCmd = &cobra.Command{
	Use:   "logdemo",
	Short: "Demonstrate two-phase logging setup for command-line programs",
	Long: `logdemo shows how a command-line program configures its diagnostic
logging.

Before any argument is parsed, the filter variable (LOGDEMO_LOG unless
configured otherwise) installs logging to stderr. When it is unset, the
-v, --color, --log-file and --log-timeless flags decide instead.`,
	Example: `  # Log debug records and span events to stderr
  logdemo run -v

  # Write JSON logs to a generated file in /tmp
  logdemo run -vv --log-file=/tmp

  # Filter by target from the environment
  LOGDEMO_LOG=warn,logdemo/db=trace logdemo run

  # Show what would be installed
  logdemo explain --log-file=/tmp/demo.log`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if configLoadErr != nil {
			return clierrors.NewConfigError(configLoadErr)
		}
		if cmd.Annotations[annotationSkipLogging] != "" {
			return nil
		}
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging installs logging from flags unless the environment already
// did, and puts the logger in the command's context.
func setupLogging(cmd *cobra.Command) error {
	if guard == nil {
		g, err := logArgs.Setup(cfg.LevelMap())
		if err != nil {
			return exitError(err)
		}
		guard = g
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, guard.Logger()))
	return nil
}

// bootstrap loads the configuration and installs logging from the
// environment if the filter variable is set. A config error is held for
// PersistentPreRunE so that --help still works.
func bootstrap() error {
	config.Init()
	loaded, err := config.Load("")
	if err != nil {
		configLoadErr = err
		cfg = defaultConfig()
	} else {
		configLoadErr = nil
		cfg = loaded
	}

	g, err := logargs.ParsePreArgsWithEnv(cfg.FilterEnv).Setup()
	if err != nil {
		return exitError(err)
	}
	guard = g
	return nil
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) (err error) {
	if err := bootstrap(); err != nil {
		return err
	}
	defer func() {
		closeErr := guard.Close()
		guard = nil
		if err == nil && closeErr != nil {
			err = clierrors.NewSystemError(closeErr, "Check that the log file is writable")
		}
	}()

	rootCmd.SetArgs(logargs.NormalizeArgs(args))
	return usageError(rootCmd.Execute())
}

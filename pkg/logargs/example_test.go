package logargs_test

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/thoreinstein/logargs/pkg/logargs"
)

func Example() {
	var largs logargs.LoggingArgs
	fs := pflag.NewFlagSet("prog", pflag.ContinueOnError)
	largs.RegisterFlags(fs)

	guard, err := logargs.ParsePreArgsWithEnv("PROG_LOG").Setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err := fs.Parse(logargs.NormalizeArgs(os.Args[1:])); err != nil {
		slog.Error("parsing arguments", "err", err)
		return
	}
	if guard == nil {
		guard, err = largs.Setup(func(v uint8) string {
			switch v {
			case 0:
				return "info"
			case 1:
				return "info,prog=debug"
			default:
				return "trace"
			}
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
	}
	defer guard.Close()

	slog.Info("ready")
}

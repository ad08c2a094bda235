// Package logargs turns command-line flags and environment variables into
// an installed, non-blocking slog pipeline.
//
// Logging is configured in two phases. Before arguments are parsed,
// [ParsePreArgs] reads the environment only; if a filter variable (RUST_LOG
// by default) or DEBUG_INVOCATION is set, [PreArgs.Setup] installs logging
// immediately so that argument errors can be logged. Otherwise the program
// parses its flags, which include the four declared by
// [LoggingArgs.RegisterFlags], and calls [LoggingArgs.Setup]. Exactly one of
// the two must install; a second installation fails with
// [ErrAlreadyInstalled].
//
//	var largs logargs.LoggingArgs
//	largs.RegisterFlags(pflag.CommandLine)
//
//	guard, err := logargs.ParsePreArgs().Setup()
//	if err != nil {
//		return err
//	}
//	if err := pflag.CommandLine.Parse(logargs.NormalizeArgs(os.Args[1:])); err != nil {
//		return err
//	}
//	if guard == nil {
//		if guard, err = largs.Setup(logargs.DefaultLevelMap); err != nil {
//			return err
//		}
//	}
//	defer guard.Close()
//
// # Flags
//
//	--color <MODE>       when to use terminal colours (auto, always, never)
//	-v, --verbose        set diagnostic log level, repeatable
//	--log-file [PATH]    write JSON logs to a file; "." when PATH is omitted
//	--log-timeless       omit timestamps in logs
//
// # Environment
//
// NO_COLOR disables colours and CLICOLOR_FORCE forces them. JOURNAL_STREAM
// with a non-terminal stderr, DEBUG_INVOCATION, or LOG_TIMELESS omit
// timestamps, since a service manager adds its own.
//
// # Guard
//
// Records are queued and written by a background worker. The [Guard]
// returned by Setup owns that worker; keep it until the program exits and
// Close it to flush what is still queued.
package logargs

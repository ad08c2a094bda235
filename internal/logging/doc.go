// Package logging provides the slog handlers and writers behind logargs.
//
// The package supports human-readable and JSON output, a target-based
// filter mini-language, span helpers, and the non-blocking and file writers
// that sit between a handler and its sink. All loggers are based on the
// standard library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Format: logging.FormatText,
//		Output: os.Stderr,
//		Filter: logging.NewFilter("info,app/db=debug"),
//		Color:  logging.SupportsColor(os.Stderr),
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Filters
//
// A filter is a comma-separated list of directives. A directive is either a
// bare level, which applies to every record, or target=level, which applies
// to records whose "target" attribute starts with target:
//
//	warn,app=info,app/db=trace
//
// Use [Target] to attach a target to a logger.
//
// # Spans
//
// [StartSpan] annotates records with the names of the enclosing spans and,
// when span events are enabled, emits "new" and "close" records:
//
//	ctx, span := logging.StartSpan(ctx, logger, "sync", "repo", name)
//	defer span.End()
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging

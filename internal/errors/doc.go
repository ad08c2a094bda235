// Package errors provides error handling conventions for the logdemo CLI.
//
// This package defines exit code constants following standard Unix
// conventions and an ExitError type carrying a code and an optional
// suggestion for the user.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid flags, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]; [Code] and [Suggestion] read them back from any chain:
//
//	err := clierrors.NewUserError(err, "Run: logdemo --help")
//	os.Exit(clierrors.Code(err))
package errors

package logargs

import "github.com/cockroachdb/errors"

var (
	// ErrPathResolution indicates that a --log-file value could not be split
	// into a directory and a file name.
	ErrPathResolution = errors.New("cannot determine log file directory and name")

	// ErrAlreadyInstalled indicates that logging was already installed in
	// this process. Installing twice is a programming error.
	ErrAlreadyInstalled = errors.New("logging is already installed")
)

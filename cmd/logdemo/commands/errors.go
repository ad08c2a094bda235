package commands

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	clierrors "github.com/thoreinstein/logargs/internal/errors"
	"github.com/thoreinstein/logargs/internal/logging"
	"github.com/thoreinstein/logargs/pkg/logargs"
)

// exitError assigns an exit code and suggestion to a logging setup failure.
func exitError(err error) error {
	var exitErr *clierrors.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, logargs.ErrPathResolution):
		return clierrors.NewUserError(err, "Pass --log-file=DIR or --log-file=DIR/NAME.log")
	case errors.Is(err, logargs.ErrAlreadyInstalled):
		return clierrors.NewSystemError(err, "")
	default:
		return clierrors.NewSystemError(err, "Check that the log directory exists and is writable")
	}
}

// usageError treats errors cobra raises itself (unknown commands, bad
// arguments) as user errors.
func usageError(err error) error {
	var exitErr *clierrors.ExitError
	if err == nil || errors.As(err, &exitErr) {
		return err
	}
	return clierrors.NewUserError(err, "Run: logdemo --help")
}

// PrintError writes err and its suggestion, if any, to w. The prefix is
// coloured when w is a terminal that supports it.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	prefix := "error:"
	if logging.SupportsColor(w) {
		c := color.New(color.FgRed, color.Bold)
		c.EnableColor()
		prefix = c.Sprint(prefix)
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)
	if s := clierrors.Suggestion(err); s != "" {
		fmt.Fprintf(w, "  %s\n", s)
	}
}

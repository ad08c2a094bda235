package logargs

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/logargs/internal/logging"
)

// LevelMap turns a -v count into a filter expression such as
// "info,app=debug". Counts past the highest one the program cares about
// should map to its most verbose filter; Resolve does not clamp.
type LevelMap func(verbosity uint8) string

// DefaultLevelMap maps 0 to info, 1 to debug and anything higher to trace.
func DefaultLevelMap(verbosity uint8) string {
	level := logging.LevelFromVerbosity(int(verbosity) + 1)
	return strings.ToLower(logging.LevelName(level))
}

// LoggingArgs holds the logging flags of a command line.
type LoggingArgs struct {
	// Color says when to use terminal colours.
	Color ColourMode
	// Verbose counts -v flags.
	Verbose Verbosity
	// LogFile is the --log-file value; nil logs to stderr. A directory gets
	// a generated file name.
	LogFile *string
	// LogTimeless omits timestamps. It has no effect on file output.
	LogTimeless bool
}

// RegisterFlags declares --color (alias --colour), -v/--verbose,
// --log-file and --log-timeless on fs, bound to a.
//
// A bare --log-file means the current directory. pflag only binds an
// optional value written as --log-file=PATH; pass the arguments through
// [NormalizeArgs] first to accept --log-file PATH as well.
func (a *LoggingArgs) RegisterFlags(fs *pflag.FlagSet) {
	fs.Var(&a.Color, "color",
		"when to use terminal colours: auto, always, never (NO_COLOR and CLICOLOR_FORCE are honoured)")
	fs.Var(&a.Color, "colour", "alias for --color")
	_ = fs.MarkHidden("colour")

	fs.VarPF(&a.Verbose, "verbose", "v",
		"set diagnostic log level; repeat to increase verbosity (e.g. -vv)").NoOptDefVal = "+1"

	fs.VarPF(&logFileValue{p: &a.LogFile}, "log-file", "",
		"write diagnostic logs to `PATH` in JSON format; a directory gets a prog.YYYY-MM-DDTHH-MM-SSZ.log file").NoOptDefVal = "."

	fs.BoolVar(&a.LogTimeless, "log-timeless", false,
		"omit timestamps in logs (automatic under systemd)")
}

// logFileFlag is the long form of the optional-value --log-file flag.
const logFileFlag = "--log-file"

// NormalizeArgs rewrites "--log-file PATH" as "--log-file=PATH" so that the
// next argument becomes the flag's value unless it starts with "-".
// Arguments after "--" are left alone. args is not modified.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if arg == logFileFlag && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, arg+"="+args[i+1])
			i++
			continue
		}
		out = append(out, arg)
	}
	return out
}

// Destination resolves where records go.
func (a LoggingArgs) Destination() (Destination, error) {
	return resolveDestination(a.LogFile, time.Now(), ProgramName())
}

// Resolve computes the session Setup would install, without installing it.
// A colour decision made by the environment (NO_COLOR, CLICOLOR_FORCE)
// takes precedence; Color applies when the environment leaves it at Auto.
func (a LoggingArgs) Resolve(levelMap LevelMap) (Session, error) {
	return a.resolve(levelMap, time.Now(), ProgramName())
}

func (a LoggingArgs) resolve(levelMap LevelMap, now time.Time, progname string) (Session, error) {
	if levelMap == nil {
		levelMap = DefaultLevelMap
	}

	dest, err := resolveDestination(a.LogFile, now, progname)
	if err != nil {
		return Session{}, err
	}

	color := ColourFromEnv().OrIfAuto(a.Color)

	return Session{
		Destination: dest,
		Format:      dest.Format(),
		Color:       color.Enabled(),
		Timeless:    UnderServiceManager() || a.LogTimeless,
		Filter:      levelMap(uint8(a.Verbose)),
		SpanEvents:  a.Verbose > 0,
	}, nil
}

// Setup resolves and installs logging, returning the guard that flushes
// queued records on Close. It must not be called when [PreArgs.Setup]
// returned a guard; doing so fails with ErrAlreadyInstalled.
func (a LoggingArgs) Setup(levelMap LevelMap) (*Guard, error) {
	s, err := a.Resolve(levelMap)
	if err != nil {
		return nil, err
	}
	return s.Apply()
}

// Verbosity is a -v count. It saturates at 255.
type Verbosity uint8

// Set implements pflag.Value. "+1" increments; anything else must be a
// number.
func (v *Verbosity) Set(s string) error {
	if s == "+1" {
		if *v < math.MaxUint8 {
			*v++
		}
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return errors.Newf("invalid verbosity %q", s)
	}
	*v = Verbosity(n)
	return nil
}

// String implements pflag.Value.
func (v Verbosity) String() string {
	return strconv.Itoa(int(v))
}

// Type implements pflag.Value. "count" keeps pflag from printing the
// no-option default in usage.
func (v Verbosity) Type() string {
	return "count"
}

// logFileValue distinguishes an absent --log-file from an empty one.
type logFileValue struct {
	p **string
}

func (v *logFileValue) Set(s string) error {
	*v.p = &s
	return nil
}

func (v *logFileValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return **v.p
}

func (v *logFileValue) Type() string {
	return "path"
}

package logargs

import "os"

// PreArgs is the logging configuration available before arguments are
// parsed, read from the environment alone.
type PreArgs struct {
	// Logline is a filter expression such as "info,app=debug", or nil when
	// neither the filter variable nor DEBUG_INVOCATION is set.
	Logline *string

	// Timeless is set when JOURNAL_STREAM is present and stderr is not a
	// terminal, or when DEBUG_INVOCATION or LOG_TIMELESS is present.
	Timeless bool

	// Color is the colour mode from NO_COLOR and CLICOLOR_FORCE.
	Color ColourMode
}

// ParsePreArgs reads the early logging configuration using RUST_LOG as the
// filter variable.
func ParsePreArgs() PreArgs {
	return ParsePreArgsWithEnv(DefaultFilterEnv)
}

// ParsePreArgsWithEnv reads the early logging configuration using name as
// the filter variable. Programs that start other programs reading RUST_LOG
// should prefer a name of their own.
//
// DEBUG_INVOCATION, which systemd sets when a unit is restarted in debug
// mode, stands in for a filter of "debug" when name is unset.
func ParsePreArgsWithEnv(name string) PreArgs {
	var logline *string
	if v, ok := os.LookupEnv(name); ok {
		logline = &v
	} else if envSet(envDebugInvocation) {
		debug := "debug"
		logline = &debug
	}

	return PreArgs{
		Logline:  logline,
		Timeless: UnderServiceManager() || envSet(envLogTimeless),
		Color:    ColourFromEnv(),
	}
}

// Session returns the session Setup would install, and false when there is
// no logline.
func (p PreArgs) Session() (Session, bool) {
	if p.Logline == nil {
		return Session{}, false
	}
	return Session{
		Destination: Destination{Kind: DestinationStderr},
		Format:      Destination{Kind: DestinationStderr}.Format(),
		Color:       p.Color.Enabled(),
		Timeless:    p.Timeless,
		Filter:      *p.Logline,
	}, true
}

// Setup installs logging to stderr if there is a logline. It returns a nil
// guard and a nil error when there is none, in which case the caller sets
// up logging from flags instead.
func (p PreArgs) Setup() (*Guard, error) {
	s, ok := p.Session()
	if !ok {
		return nil, nil
	}
	return s.Apply()
}

package logargs

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/logargs/internal/logging"
)

// DefaultProgramName names generated log files when the executable's name
// cannot be determined.
const DefaultProgramName = "logargs"

// logFileTimeFormat is YYYY-MM-DDTHH-MM-SSZ, free of colons for the sake
// of filesystems that reject them.
const logFileTimeFormat = "2006-01-02T15-04-05Z"

// DestinationKind says where records are written.
type DestinationKind string

const (
	// DestinationStderr writes human-readable records to standard error.
	DestinationStderr DestinationKind = "stderr"
	// DestinationFile writes JSON records to Dir/Name.
	DestinationFile DestinationKind = "file"
)

// Destination is a resolved log destination.
type Destination struct {
	Kind DestinationKind `yaml:"kind"`
	Dir  string          `yaml:"dir,omitempty"`
	Name string          `yaml:"name,omitempty"`
}

// Path returns the log file path, or "" for stderr.
func (d Destination) Path() string {
	if d.Kind != DestinationFile {
		return ""
	}
	return filepath.Join(d.Dir, d.Name)
}

// Format returns JSON for files and text otherwise.
func (d Destination) Format() logging.Format {
	if d.Kind == DestinationFile {
		return logging.FormatJSON
	}
	return logging.FormatText
}

// resolveDestination maps a --log-file value to a destination. An existing
// directory gets a file named after progname and now.
func resolveDestination(logFile *string, now time.Time, progname string) (Destination, error) {
	if logFile == nil {
		return Destination{Kind: DestinationStderr}, nil
	}

	path := *logFile
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Destination{
			Kind: DestinationFile,
			Dir:  path,
			Name: LogFileName(progname, now),
		}, nil
	}

	dir, name, ok := splitLogPath(path)
	if !ok {
		return Destination{}, errors.Wrapf(ErrPathResolution, "log file %q", path)
	}
	return Destination{Kind: DestinationFile, Dir: dir, Name: name}, nil
}

// splitLogPath splits path into its parent directory and final name. It
// fails for an empty path, a root, or a path ending in "..".
func splitLogPath(path string) (dir, name string, ok bool) {
	vol := filepath.VolumeName(path)
	rest := trimSeparators(path[len(vol):])
	// "a/." names a.
	for len(rest) > 1 && rest[len(rest)-1] == '.' && os.IsPathSeparator(rest[len(rest)-2]) {
		rest = trimSeparators(rest[:len(rest)-1])
	}
	if rest == "" {
		return "", "", false
	}

	i := len(rest) - 1
	for i >= 0 && !os.IsPathSeparator(rest[i]) {
		i--
	}
	name = rest[i+1:]
	if name == "." || name == ".." {
		return "", "", false
	}

	switch parent := rest[:i+1]; {
	case parent == "":
		dir = vol
		if dir == "" {
			dir = "."
		}
	case trimSeparators(parent) == "":
		dir = vol + string(filepath.Separator)
	default:
		dir = vol + trimSeparators(parent)
	}
	return dir, name, true
}

func trimSeparators(s string) string {
	for len(s) > 0 && os.IsPathSeparator(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}

// LogFileName returns "{progname}.{YYYY-MM-DDTHH-MM-SSZ}.log" for now in
// UTC. A zero now is written as "debug".
func LogFileName(progname string, now time.Time) string {
	stamp := "debug"
	if !now.IsZero() {
		stamp = now.UTC().Format(logFileTimeFormat)
	}
	return progname + "." + stamp + ".log"
}

// ProgramName returns the running executable's base name without its
// extension, or DefaultProgramName.
func ProgramName() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultProgramName
	}
	base := filepath.Base(exe)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return DefaultProgramName
	}
	return stem
}

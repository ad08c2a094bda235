package logargs

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/logargs/internal/logging"
)

// QueueDepth is the number of records buffered between producers and the
// writer's background worker.
const QueueDepth = logging.DefaultQueueDepth

// Session is a fully resolved logging configuration.
type Session struct {
	Destination Destination    `yaml:"destination"`
	Format      logging.Format `yaml:"format"`
	Color       bool           `yaml:"color"`
	Timeless    bool           `yaml:"timeless"`
	Filter      string         `yaml:"filter"`
	SpanEvents  bool           `yaml:"span_events"`
}

// Apply installs s as the process-wide slog default and returns the guard
// owning its writer. It fails with ErrAlreadyInstalled if a session was
// applied before; on any error nothing is installed.
func (s Session) Apply() (*Guard, error) {
	if logging.Installed() {
		return nil, errors.WithStack(ErrAlreadyInstalled)
	}

	sink, err := openSink(s.Destination)
	if err != nil {
		return nil, err
	}

	if !logging.MarkInstalled() {
		if c, ok := sink.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, errors.WithStack(ErrAlreadyInstalled)
	}

	writer := logging.NewNonBlocking(sink, QueueDepth)
	logger := logging.New(logging.Config{
		Format:     s.Format,
		Output:     writer,
		Color:      s.Color && s.Format != logging.FormatJSON,
		Timeless:   s.Timeless,
		Filter:     logging.NewFilter(s.Filter),
		SpanEvents: s.SpanEvents,
	})
	slog.SetDefault(logger)

	return &Guard{writer: writer, logger: logger}, nil
}

// openSink returns the writer for d. Files are created now so that
// permission problems surface here rather than on the worker.
func openSink(d Destination) (io.Writer, error) {
	if d.Kind != DestinationFile {
		return logging.KeepOpen(os.Stderr), nil
	}

	sink := logging.NewFileSink(d.Dir, d.Name)
	if _, err := sink.Write(nil); err != nil {
		_ = sink.Close()
		return nil, errors.Wrapf(err, "opening log file %s", d.Path())
	}
	return sink, nil
}

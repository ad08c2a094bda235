package logargs

import (
	"log/slog"

	"github.com/thoreinstein/logargs/internal/logging"
)

// Guard owns the background writer of an installed session. Records are
// delivered while it is open; Close flushes whatever is still queued.
type Guard struct {
	writer *logging.NonBlocking
	logger *slog.Logger
}

// Close waits for every queued record to be written and stops the writer.
// A nil Guard and repeated calls are fine.
func (g *Guard) Close() error {
	if g == nil {
		return nil
	}
	return g.writer.Close()
}

// Logger returns the installed logger.
func (g *Guard) Logger() *slog.Logger {
	if g == nil {
		return slog.Default()
	}
	return g.logger
}

// Dropped returns the number of records lost because the queue was full.
func (g *Guard) Dropped() uint64 {
	if g == nil {
		return 0
	}
	return g.writer.Dropped()
}

package logging

import (
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/diode"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultQueueDepth is the number of records a [NonBlocking] writer buffers
// before it starts dropping them.
const DefaultQueueDepth = 128_000

// pollInterval is how often the worker looks for queued records.
const pollInterval = 10 * time.Millisecond

// neverRotateMB is a lumberjack size limit no single run reaches.
const neverRotateMB = 1 << 30

// NonBlocking decouples producers from a slow sink. Write copies the record
// into a bounded ring buffer and returns; one background worker writes the
// queued records to the sink in order. When the buffer is full the oldest
// unwritten records are dropped and counted.
type NonBlocking struct {
	w       diode.Writer
	dropped atomic.Uint64
	once    sync.Once
	err     error
}

// NewNonBlocking starts the worker for sink. A depth of zero or less means
// DefaultQueueDepth. If sink is an io.Closer it is closed by Close.
func NewNonBlocking(sink io.Writer, depth int) *NonBlocking {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	nb := &NonBlocking{}
	nb.w = diode.NewWriter(sink, depth, pollInterval, func(missed int) {
		nb.dropped.Add(uint64(missed))
	})
	return nb
}

// Write queues p. It never blocks on the sink.
func (nb *NonBlocking) Write(p []byte) (int, error) {
	return nb.w.Write(p)
}

// Close waits for the worker to write every queued record, stops it, and
// closes the sink if it is an io.Closer. Only the first call has effect.
func (nb *NonBlocking) Close() error {
	nb.once.Do(func() {
		nb.err = nb.w.Close()
	})
	return nb.err
}

// Dropped returns the number of records lost to a full buffer.
func (nb *NonBlocking) Dropped() uint64 {
	return nb.dropped.Load()
}

// NewFileSink returns a writer appending to dir/name. The file and any
// missing directories are created on the first write, and the file is never
// rotated.
func NewFileSink(dir, name string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    neverRotateMB,
		MaxBackups: 0,
		LocalTime:  false,
		Compress:   false,
	}
}

// KeepOpen hides any Close method of w, so that closing a [NonBlocking]
// writer over a shared stream such as os.Stderr leaves the stream open.
func KeepOpen(w io.Writer) io.Writer {
	return struct{ io.Writer }{w}
}

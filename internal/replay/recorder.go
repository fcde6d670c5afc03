// Package replay records sessions into the journal and re-simulates them
// headless from the recorded seed, frame timing and intents.
package replay

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// flushEvery bounds how many frames are buffered before hitting the database.
const flushEvery = 256

// Journal receives recorded frames.
type Journal interface {
	AppendFrames(runID string, frames []storage.Frame) error
}

// IntentSource reports the movement intents at the start of a tick.
type IntentSource interface {
	Intents() (left, right bool)
}

// Recorder buffers frames observed from a scheduler and writes them in
// batches. Use Observe as the scheduler frame observer.
type Recorder struct {
	journal Journal
	runID   string
	intents IntentSource
	logger  *log.Logger

	buf     []storage.Frame
	written int
	err     error
}

// NewRecorder creates a recorder for runID.
func NewRecorder(j Journal, runID string, src IntentSource, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{journal: j, runID: runID, intents: src, logger: logger}
}

// RunID returns the journal run being written.
func (r *Recorder) RunID() string { return r.runID }

// Observe records one tick. After a write error the recorder stops
// recording; the error is reported by Flush.
func (r *Recorder) Observe(f engine.Frame) {
	if r.err != nil {
		return
	}
	left, right := r.intents.Intents()
	r.buf = append(r.buf, storage.Frame{
		Seq:     f.Seq,
		Delta:   f.Delta,
		Resumed: f.Resumed,
		Left:    left,
		Right:   right,
	})
	if len(r.buf) >= flushEvery {
		_ = r.Flush()
	}
}

// Flush writes buffered frames.
func (r *Recorder) Flush() error {
	if r.err != nil {
		return r.err
	}
	if len(r.buf) == 0 {
		return nil
	}
	if err := r.journal.AppendFrames(r.runID, r.buf); err != nil {
		r.err = fmt.Errorf("replay: record run %s: %w", r.runID, err)
		r.logger.Error("recording stopped", "run", r.runID, "err", err)
		return r.err
	}
	r.written += len(r.buf)
	r.buf = r.buf[:0]
	return nil
}

// Frames returns how many frames were recorded so far.
func (r *Recorder) Frames() int { return r.written + len(r.buf) }

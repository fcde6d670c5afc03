// Package tui runs breakout in a terminal with Bubble Tea, locally or over SSH.
// It handles the program loop, input mapping and rendering of the cell canvas.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// TickMsg delivers a frame requested by the scheduler.
type TickMsg struct {
	Handle engine.Handle
	Time   time.Time
}

// FrameSource schedules frames as Bubble Tea tick commands. Requests made
// while handling a message are collected and returned by Drain, so the
// model can hand them back to the program.
type FrameSource struct {
	interval time.Duration
	next     engine.Handle
	pending  map[engine.Handle]func()
	cmds     []tea.Cmd
}

// NewFrameSource creates a source that fires tickRate frames per second.
func NewFrameSource(tickRate int) *FrameSource {
	if tickRate <= 0 {
		tickRate = engine.DefaultTickRate
	}
	return &FrameSource{
		interval: time.Second / time.Duration(tickRate),
		pending:  make(map[engine.Handle]func()),
	}
}

// RequestTick implements engine.FrameSource.
func (f *FrameSource) RequestTick(fn func()) engine.Handle {
	f.next++
	h := f.next
	f.pending[h] = fn
	f.cmds = append(f.cmds, tickCmd(h, f.interval))
	return h
}

// CancelTick implements engine.FrameSource. The tick message still arrives
// but is dropped by Deliver.
func (f *FrameSource) CancelTick(h engine.Handle) {
	delete(f.pending, h)
}

// Deliver runs the callback for msg. It reports false for cancelled frames.
func (f *FrameSource) Deliver(msg TickMsg) bool {
	fn, ok := f.pending[msg.Handle]
	if !ok {
		return false
	}
	delete(f.pending, msg.Handle)
	fn()
	return true
}

// Pending returns the number of frames waiting to fire.
func (f *FrameSource) Pending() int { return len(f.pending) }

// Drain returns the tick commands issued since the last call.
func (f *FrameSource) Drain() tea.Cmd {
	if len(f.cmds) == 0 {
		return nil
	}
	cmds := f.cmds
	f.cmds = nil
	return tea.Batch(cmds...)
}

// tickCmd returns a Bubble Tea command that sends one tick message after interval.
func tickCmd(h engine.Handle, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Handle: h, Time: t}
	})
}

var _ engine.FrameSource = (*FrameSource)(nil)

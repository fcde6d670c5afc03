// Package engine runs the frame loop: it owns the ordered set of active bodies,
// measures the time between frames and drives draw, move and prune passes.
package engine

import (
	"errors"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/body"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

var (
	// ErrNoSurface is returned when a scheduler is built without a surface.
	ErrNoSurface = errors.New("engine: no rendering surface")
	// ErrNoFrameSource is returned when a scheduler is built without a frame source.
	ErrNoFrameSource = errors.New("engine: no frame source")
)

const (
	DefaultTickRate = 60
	DefaultMaxDelta = 100 * time.Millisecond
)

// State is the loop state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Frame describes one tick as it starts.
type Frame struct {
	Seq     uint64        // 1-based tick counter over the scheduler lifetime
	Delta   time.Duration // elapsed time fed to movement, after clamping
	Resumed bool          // first tick after Start
}

// Options configures a Scheduler. Zero values pick defaults.
type Options struct {
	TickRate int           // nominal frames per second
	MaxDelta time.Duration // clamp for a single frame; negative disables
	Clock    Clock
	Logger   *log.Logger
	OnFrame  func(Frame) // observer called before each draw pass
}

// Scheduler drives the bodies. It is single-threaded: every method must be
// called from the goroutine that runs the host's frame callbacks.
type Scheduler struct {
	surface core.Surface
	frames  FrameSource
	clock   Clock
	logger  *log.Logger
	onFrame func(Frame)

	nominal  time.Duration
	maxDelta time.Duration

	state     State
	handle    Handle
	hasHandle bool
	last      time.Time
	delta     float64
	ticks     uint64
	resumed   bool

	bodies   []body.Body
	pending  []body.Body // added while a tick is running
	deferred []func()
	inTick   bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(surface core.Surface, frames FrameSource, opts Options) (*Scheduler, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if frames == nil {
		return nil, ErrNoFrameSource
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.MaxDelta == 0 {
		opts.MaxDelta = DefaultMaxDelta
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Scheduler{
		surface:  surface,
		frames:   frames,
		clock:    opts.Clock,
		logger:   opts.Logger,
		onFrame:  opts.OnFrame,
		nominal:  time.Second / time.Duration(opts.TickRate),
		maxDelta: opts.MaxDelta,
	}, nil
}

// SetOnFrame replaces the frame observer.
func (s *Scheduler) SetOnFrame(fn func(Frame)) { s.onFrame = fn }

// Surface returns the surface the scheduler draws onto.
func (s *Scheduler) Surface() core.Surface { return s.surface }

// State returns the loop state.
func (s *Scheduler) State() State { return s.state }

// Running reports whether the loop is running.
func (s *Scheduler) Running() bool { return s.state == Running }

// Delta returns the elapsed seconds used by the latest tick.
func (s *Scheduler) Delta() float64 { return s.delta }

// Ticks returns the number of ticks run so far.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Add appends a body to the active set. Bodies added during a tick join after
// that tick's prune pass, so they are first drawn and moved on the next tick.
func (s *Scheduler) Add(b body.Body) {
	if s.inTick {
		s.pending = append(s.pending, b)
		return
	}
	s.bodies = append(s.bodies, b)
}

// Bodies returns a copy of the active set in draw order.
func (s *Scheduler) Bodies() []body.Body {
	return slices.Clone(s.bodies)
}

// Len returns the number of active bodies.
func (s *Scheduler) Len() int { return len(s.bodies) }

// Reset empties the active set.
func (s *Scheduler) Reset() {
	clear(s.bodies)
	s.bodies = s.bodies[:0]
	s.pending = nil
}

// Defer runs fn once the current tick has finished, after the next tick was
// requested. Outside a tick fn runs immediately.
func (s *Scheduler) Defer(fn func()) {
	if !s.inTick {
		fn()
		return
	}
	s.deferred = append(s.deferred, fn)
}

// Start runs the loop. The first tick happens immediately with a delta of one
// nominal frame.
func (s *Scheduler) Start() {
	if s.state == Running {
		return
	}
	s.state = Running
	s.resumed = true
	now := s.clock.Now()
	s.last = now.Add(-s.nominal)
	s.logger.Debug("loop started", "bodies", len(s.bodies))
	if s.inTick {
		// the running tick requests the next frame on its way out
		return
	}
	s.tickAt(now)
}

// Stop halts the loop and cancels the pending frame request. A tick in
// progress always completes.
func (s *Scheduler) Stop() {
	if s.state == Stopped {
		return
	}
	s.state = Stopped
	if s.hasHandle {
		s.frames.CancelTick(s.handle)
		s.hasHandle = false
	}
	s.logger.Debug("loop stopped", "ticks", s.ticks)
}

// Toggle flips between running and stopped.
func (s *Scheduler) Toggle() {
	if s.state == Running {
		s.Stop()
		return
	}
	s.Start()
}

func (s *Scheduler) tick() {
	s.hasHandle = false
	s.tickAt(s.clock.Now())
}

func (s *Scheduler) tickAt(now time.Time) {
	elapsed := max(now.Sub(s.last), 0)
	if s.maxDelta > 0 {
		elapsed = min(elapsed, s.maxDelta)
	}
	s.last = now
	s.delta = elapsed.Seconds()
	s.ticks++

	if s.onFrame != nil {
		s.onFrame(Frame{Seq: s.ticks, Delta: elapsed, Resumed: s.resumed})
	}
	s.resumed = false

	s.inTick = true
	s.surface.Clear(core.FullRegion(s.surface))

	bodies := s.bodies
	for _, b := range bodies {
		if d, ok := b.(body.Drawable); ok {
			d.Draw(s.surface)
		}
	}
	for _, b := range bodies {
		if m, ok := b.(body.Movable); ok {
			m.Move(s.delta)
		}
	}

	s.bodies = prune(s.bodies)
	if len(s.pending) > 0 {
		s.bodies = append(s.bodies, prune(s.pending)...)
		s.pending = nil
	}
	s.inTick = false

	if s.state == Running && !s.hasHandle {
		s.handle = s.frames.RequestTick(s.tick)
		s.hasHandle = true
	}
	s.runDeferred()
}

func (s *Scheduler) runDeferred() {
	for len(s.deferred) > 0 {
		fns := s.deferred
		s.deferred = nil
		for _, fn := range fns {
			fn()
		}
	}
}

// prune drops bodies flagged for removal in place, keeping order.
func prune(bodies []body.Body) []body.Body {
	kept := bodies[:0]
	for _, b := range bodies {
		if !b.PendingRemoval() {
			kept = append(kept, b)
		}
	}
	clear(bodies[len(kept):])
	return kept
}

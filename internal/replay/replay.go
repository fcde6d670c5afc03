package replay

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// ErrDesync is returned when the recorded frames cannot be applied to the
// simulation, which means the journal does not match this build.
var ErrDesync = errors.New("replay: journal out of sync with simulation")

// Result summarizes a re-simulated run.
type Result struct {
	Ticks    int
	Games    int
	Snapshot breakout.Snapshot
	Screen   *core.Screen // last frame rasterized at the requested size
}

// Options tunes a replay.
type Options struct {
	Cols, Rows int // screen size for the final frame; defaults to 80x24
	Logger     *log.Logger
}

// Run re-simulates a recorded run frame by frame on a mock clock.
func Run(run storage.Run, frames []storage.Frame, opts Options) (Result, error) {
	cfg, err := config.Unmarshal(run.Config)
	if err != nil {
		return Result{}, fmt.Errorf("replay: run %s: %w", run.ID, err)
	}
	if opts.Cols <= 0 || opts.Rows <= 0 {
		opts.Cols, opts.Rows = 80, 24
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	screen := core.NewScreen(opts.Cols, opts.Rows)
	canvas := core.NewCellCanvas(screen, cfg.Arena.Width, cfg.Arena.Height)
	clock := engine.NewMockClock(time.Unix(0, 0))
	source := engine.NewManualFrameSource()
	sched, err := engine.NewScheduler(canvas, source, engine.Options{
		TickRate: run.TickRate,
		MaxDelta: cfg.Scheduler.MaxDelta,
		Clock:    clock,
		Logger:   opts.Logger,
	})
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	game, err := breakout.New(cfg, sched, breakout.Options{Seed: run.Seed, Logger: opts.Logger})
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	for _, f := range frames {
		game.SetMoveLeft(f.Left)
		game.SetMoveRight(f.Right)

		if f.Resumed {
			if sched.Running() {
				return Result{}, fmt.Errorf("%w: tick %d resumes a running loop", ErrDesync, f.Seq)
			}
			if game.Over() {
				game.NewGame()
			} else {
				sched.Start()
			}
		} else {
			if source.Pending() == 0 {
				return Result{}, fmt.Errorf("%w: tick %d has no pending frame", ErrDesync, f.Seq)
			}
			clock.Advance(f.Delta)
			source.Fire()
		}

		if sched.Ticks() != f.Seq {
			return Result{}, fmt.Errorf("%w: at tick %d the simulation is at %d", ErrDesync, f.Seq, sched.Ticks())
		}
	}

	return Result{
		Ticks:    len(frames),
		Games:    game.Runs(),
		Snapshot: game.Snapshot(),
		Screen:   screen,
	}, nil
}

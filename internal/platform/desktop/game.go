// Package desktop runs breakout in a window with Ebitengine, drawing the
// arena with vector shapes at its native pixel size.
package desktop

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Options configures a desktop game.
type Options struct {
	Game     config.BreakoutConfig
	TickRate int // overrides Game.Scheduler.FPS when positive
	Seed     uint64
	Scale    int // window pixels per arena pixel
	Store    *storage.Store
	Logger   *log.Logger

	// Surface and Keyboard replace the ebiten ones in tests.
	Surface  core.Surface
	Keyboard Keyboard
	Clock    engine.Clock
}

// Game implements ebiten.Game. Each Update fires the frame the scheduler
// requested, so the simulation runs at the ebiten tick rate.
type Game struct {
	cfg      config.BreakoutConfig
	logger   *log.Logger
	surface  core.Surface
	keys     Keyboard
	frames   *engine.ManualFrameSource
	sched    *engine.Scheduler
	game     *breakout.Game
	prompt   *breakout.PendingPrompt
	recorder *replay.Recorder
	wasOver  bool
	closed   bool
}

// New creates a desktop game. Without a Surface option it allocates an
// ebiten image, which needs the graphics driver.
func New(opts Options) (*Game, error) {
	cfg := opts.Game
	if opts.TickRate > 0 {
		cfg.Scheduler.FPS = opts.TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Surface == nil {
		opts.Surface = NewImageSurface(int(cfg.Arena.Width), int(cfg.Arena.Height), cfg.Colors.Background)
	}
	if opts.Keyboard == nil {
		opts.Keyboard = ebitenKeyboard{}
	}

	g := &Game{
		cfg:     cfg,
		logger:  opts.Logger,
		surface: opts.Surface,
		keys:    opts.Keyboard,
		frames:  engine.NewManualFrameSource(),
		prompt:  &breakout.PendingPrompt{},
		wasOver: true,
	}

	sched, err := engine.NewScheduler(g.surface, g.frames, engine.Options{
		TickRate: cfg.Scheduler.FPS,
		MaxDelta: cfg.Scheduler.MaxDelta,
		Clock:    opts.Clock,
		Logger:   g.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("desktop: %w", err)
	}
	g.sched = sched

	// The arena starts blank so the help text has a background.
	g.surface.Clear(core.FullRegion(g.surface))
	game, err := breakout.New(cfg, sched, breakout.Options{
		Seed:   opts.Seed,
		Logger: g.logger,
		Prompt: g.prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("desktop: %w", err)
	}
	g.game = game

	if opts.Store != nil {
		data, err := config.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("desktop: %w", err)
		}
		run, err := opts.Store.CreateRun(opts.Seed, cfg.Scheduler.FPS, data)
		if err != nil {
			g.logger.Warn("replay recording disabled", "err", err)
		} else {
			g.recorder = replay.NewRecorder(opts.Store, run.ID, g.game, g.logger)
			sched.SetOnFrame(g.recorder.Observe)
			g.logger.Info("recording run", "run", run.ID, "seed", opts.Seed)
		}
	}
	return g, nil
}

// Breakout returns the game state.
func (g *Game) Breakout() *breakout.Game { return g.game }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.handleInput() {
		g.close()
		return ebiten.Termination
	}
	g.frames.Fire()
	g.flushOnGameOver()
	return nil
}

// handleInput applies this update's key edges and reports a quit request.
func (g *Game) handleInput() bool {
	kb := g.keys
	if anyPressed(kb, keysQuit) {
		return true
	}

	// Releases always apply, even under the prompt, so no key gets stuck.
	if anyReleased(kb, keysLeft) {
		g.game.SetMoveLeft(false)
	}
	if anyReleased(kb, keysRight) {
		g.game.SetMoveRight(false)
	}

	if g.prompt.Open() {
		switch {
		case anyPressed(kb, keysConfirm), anyPressed(kb, keysToggle):
			g.prompt.Answer(true)
		case anyPressed(kb, keysDecline):
			g.prompt.Answer(false)
		}
		return false
	}

	if anyPressed(kb, keysToggle) {
		g.game.Toggle()
	}
	if anyPressed(kb, keysLeft) {
		g.game.SetMoveLeft(true)
	}
	if anyPressed(kb, keysRight) {
		g.game.SetMoveRight(true)
	}
	return false
}

func (g *Game) flushOnGameOver() {
	over := g.game.Over()
	if over && !g.wasOver && g.recorder != nil {
		//nolint:errcheck // logged by the recorder
		g.recorder.Flush()
	}
	g.wasOver = over
}

func (g *Game) close() {
	if g.closed {
		return
	}
	g.closed = true
	g.sched.Stop()
	if g.recorder != nil {
		if err := g.recorder.Flush(); err == nil {
			g.logger.Info("run saved", "run", g.recorder.RunID(), "frames", g.recorder.Frames())
		}
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	img, ok := g.surface.(*ImageSurface)
	if !ok {
		return
	}
	screen.DrawImage(img.Image(), nil)
	if g.prompt.Open() {
		g.drawPrompt(screen, img.Face())
	}
}

func (g *Game) drawPrompt(screen *ebiten.Image, face text.Face) {
	w, h := float32(g.cfg.Arena.Width), float32(g.cfg.Arena.Height)
	boxW, boxH := float32(220), float32(60)
	x, y := (w-boxW)/2, (h-boxH)/2

	vector.DrawFilledRect(screen, x, y, boxW, boxH, color.RGBA{0xff, 0xff, 0xff, 0xee}, false)
	vector.StrokeRect(screen, x, y, boxW, boxH, 2, g.cfg.Colors.Border.RGBA(), false)

	lines := []string{
		fmt.Sprintf("Game over with %d points.", g.prompt.Points()),
		"Play again? (y/n)",
	}
	font := core.Font{Size: 13, LineHeight: 20}
	drawLines(screen, face, float64(x)+12, float64(y)+24, lines, font, g.cfg.Colors.Text)
}

// Layout implements ebiten.Game. The logical screen is the arena.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.cfg.Arena.Width), int(g.cfg.Arena.Height)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 2
	}

	ebiten.SetWindowSize(int(g.cfg.Arena.Width)*scale, int(g.cfg.Arena.Height)*scale)
	ebiten.SetWindowTitle("Breakout")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.Scheduler.FPS)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	// Closing the window ends RunGame without a quit key.
	g.close()
	return nil
}

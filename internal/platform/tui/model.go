package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Options configures a Model.
type Options struct {
	Game     config.BreakoutConfig
	Runtime  core.RuntimeConfig
	Store    *storage.Store // nil disables recording
	Logger   *log.Logger
	Clock    engine.Clock       // defaults to the real clock
	Lipgloss *lipgloss.Renderer // per-session renderer for SSH
}

// Model is the Bubble Tea model running one breakout game.
type Model struct {
	cfg     config.BreakoutConfig
	runtime core.RuntimeConfig
	logger  *log.Logger
	clock   engine.Clock

	screen   *core.Screen
	frames   *FrameSource
	sched    *engine.Scheduler
	game     *breakout.Game
	prompt   *breakout.PendingPrompt
	recorder *replay.Recorder
	renderer *Renderer

	keys     KeyMap
	help     help.Model
	hold     *holdTracker
	width    int
	height   int
	wasOver  bool
	quitting bool
}

// NewModel wires a scheduler, a game and the terminal canvas together.
func NewModel(opts Options) (*Model, error) {
	rc := opts.Runtime
	if rc.TickRate <= 0 {
		rc.TickRate = opts.Game.Scheduler.FPS
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = engine.RealClock{}
	}

	m := &Model{
		cfg:      opts.Game,
		runtime:  rc,
		logger:   opts.Logger,
		clock:    opts.Clock,
		screen:   core.NewScreen(rc.ScreenW, playRows(rc.ScreenH)),
		frames:   NewFrameSource(rc.TickRate),
		prompt:   &breakout.PendingPrompt{},
		renderer: NewRenderer(opts.Lipgloss, opts.Game.Colors.Background),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		hold:     newHoldTracker(opts.Game.Input.HoldInitial, opts.Game.Input.HoldRepeat),
		width:    rc.ScreenW,
		height:   rc.ScreenH,
		wasOver:  true,
	}
	m.help.Width = rc.ScreenW

	canvas := core.NewCellCanvas(m.screen, m.cfg.Arena.Width, m.cfg.Arena.Height)
	sched, err := engine.NewScheduler(canvas, m.frames, engine.Options{
		TickRate: rc.TickRate,
		MaxDelta: m.cfg.Scheduler.MaxDelta,
		Clock:    m.clock,
		Logger:   m.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	m.sched = sched

	seed := uint64(rc.Seed) //#nosec G115 -- seed bits are reused as is
	game, err := breakout.New(m.cfg, sched, breakout.Options{
		Seed:   seed,
		Logger: m.logger,
		Prompt: m.prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	m.game = game

	if opts.Store != nil {
		if err := m.startRecording(opts.Store, seed); err != nil {
			// Recording is optional; the game runs without it.
			m.logger.Warn("replay recording disabled", "err", err)
		}
	}
	return m, nil
}

func (m *Model) startRecording(store *storage.Store, seed uint64) error {
	data, err := config.Marshal(m.cfg)
	if err != nil {
		return err
	}
	run, err := store.CreateRun(seed, m.runtime.TickRate, data)
	if err != nil {
		return err
	}
	m.recorder = replay.NewRecorder(store, run.ID, m.game, m.logger)
	m.sched.SetOnFrame(m.recorder.Observe)
	m.logger.Info("recording run", "run", run.ID, "seed", seed)
	return nil
}

// Game returns the running game.
func (m *Model) Game() *breakout.Game { return m.game }

// Screen returns the cell buffer the arena is drawn into.
func (m *Model) Screen() *core.Screen { return m.screen }

// RunID returns the recorded run, empty when not recording.
func (m *Model) RunID() string {
	if m.recorder == nil {
		return ""
	}
	return m.recorder.RunID()
}

// Init implements tea.Model. The game waits for space before the first tick.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("breakout")
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleKey(msg) {
			m.quit()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case TickMsg:
		m.releaseExpired(m.clock.Now())
		m.frames.Deliver(msg)
		m.afterTick()
	}

	return m, m.frames.Drain()
}

// handleKey applies a key and reports whether the session should end.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		return true
	}

	if m.prompt.Open() {
		switch action {
		case core.ActionConfirm, core.ActionToggle:
			m.prompt.Answer(true)
		case core.ActionDecline:
			m.prompt.Answer(false)
		}
		m.afterTick()
		return false
	}

	now := m.clock.Now()
	switch action {
	case core.ActionToggle:
		m.game.Toggle()
	case core.ActionLeft:
		m.hold.Press(core.ActionLeft, now)
		m.game.SetMoveLeft(true)
	case core.ActionRight:
		m.hold.Press(core.ActionRight, now)
		m.game.SetMoveRight(true)
	case core.ActionStop:
		m.hold.Release(core.ActionLeft)
		m.hold.Release(core.ActionRight)
		m.game.SetMoveLeft(false)
		m.game.SetMoveRight(false)
	}
	m.afterTick()
	return false
}

// releaseExpired drops move intents whose key stopped repeating.
func (m *Model) releaseExpired(now time.Time) {
	left, right := m.game.Intents()
	if left && !m.hold.Held(core.ActionLeft, now) {
		m.game.SetMoveLeft(false)
	}
	if right && !m.hold.Held(core.ActionRight, now) {
		m.game.SetMoveRight(false)
	}
}

// afterTick flushes the journal once per lost game.
func (m *Model) afterTick() {
	over := m.game.Over()
	if over && !m.wasOver && m.recorder != nil {
		//nolint:errcheck // logged by the recorder, the game goes on
		m.recorder.Flush()
	}
	m.wasOver = over
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.screen.Resize(width, playRows(height))
	if m.game.Over() {
		m.screen.Clear()
		m.game.ShowHelp()
	}
}

func (m *Model) quit() {
	m.quitting = true
	m.sched.Stop()
	if m.recorder != nil {
		if err := m.recorder.Flush(); err == nil {
			m.logger.Info("run saved", "run", m.recorder.RunID(), "frames", m.recorder.Frames())
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var arena, footer string
	if m.prompt.Open() {
		arena = m.renderer.RenderPrompt(m.screen.Width(), m.screen.Height(), m.prompt.Points(), m.cfg.Colors.Border)
		footer = m.help.View(promptKeys{m.keys})
	} else {
		arena = m.renderer.RenderScreen(m.screen)
		footer = m.help.View(m.keys)
	}
	return lipgloss.JoinVertical(lipgloss.Left, arena, footer)
}

// playRows leaves the last terminal row for the help footer.
func playRows(height int) int {
	return max(height-1, 0)
}

// Run starts the Bubble Tea program in the current terminal.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	keyYes   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}
	keyNo    = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}
)

type testModel struct {
	*Model
	clock *engine.MockClock
}

func newTestModel(t *testing.T, store *storage.Store) testModel {
	t.Helper()
	clock := engine.NewMockClock(time.Unix(0, 0))
	m, err := NewModel(Options{
		Game:    config.DefaultBreakoutConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 50, ScreenH: 16, TickRate: 60, Seed: 1},
		Store:   store,
		Clock:   clock,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return testModel{Model: m, clock: clock}
}

func (tm testModel) send(msg tea.Msg) tea.Cmd {
	_, cmd := tm.Update(msg)
	return cmd
}

// fire advances the clock and delivers the latest requested frame.
func (tm testModel) fire(d time.Duration) {
	tm.clock.Advance(d)
	tm.send(TickMsg{Handle: tm.frames.next, Time: tm.clock.Now()})
}

func TestModelWaitsForSpace(t *testing.T) {
	tm := newTestModel(t, nil)

	if !tm.Game().Over() {
		t.Fatal("game should wait for the first space")
	}
	if !strings.Contains(tm.Screen().String(), "Press space") {
		t.Error("help text missing before the first game")
	}

	if cmd := tm.send(keySpace); cmd == nil {
		t.Fatal("starting the game should schedule a frame")
	}
	if tm.Game().Over() {
		t.Fatal("space should start a game")
	}
	if tm.sched.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1 after start", tm.sched.Ticks())
	}
	if tm.frames.Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", tm.frames.Pending())
	}
}

func TestModelPauseDropsStaleFrame(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.send(keySpace)
	stale := tm.frames.next

	tm.send(keySpace)
	if tm.sched.Running() {
		t.Fatal("second space should pause")
	}
	ticks := tm.sched.Ticks()
	tm.send(TickMsg{Handle: stale})
	if tm.sched.Ticks() != ticks {
		t.Error("a cancelled frame must not tick")
	}
}

func TestModelKeyHold(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.send(keySpace)

	tm.send(keyLeft)
	if left, _ := tm.Game().Intents(); !left {
		t.Fatal("left press should set the intent")
	}

	tm.fire(400 * time.Millisecond)
	if left, _ := tm.Game().Intents(); !left {
		t.Error("intent dropped inside the repeat delay")
	}

	tm.fire(200 * time.Millisecond)
	if left, _ := tm.Game().Intents(); left {
		t.Error("intent should expire once the key stops repeating")
	}
}

func TestModelStopReleasesBoth(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.send(keySpace)
	tm.send(keyLeft)
	tm.send(keyRight)
	tm.send(keyDown)

	left, right := tm.Game().Intents()
	if left || right {
		t.Errorf("intents = %v/%v after stop, want both off", left, right)
	}
}

func TestModelHUD(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.send(keySpace)
	tm.fire(16 * time.Millisecond)

	view := tm.View()
	for _, want := range []string{"Level: 1", "Points: 0", "start/pause"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := len(strings.Split(tm.Screen().String(), "\n")); got != 15 {
		t.Errorf("arena rows = %d, want 15 (one row for help)", got)
	}
}

// loseGame parks the paddle in the left corner until the ball drops past it.
func loseGame(t *testing.T, tm testModel) {
	t.Helper()
	for i := 0; i < 500 && !tm.Game().Over(); i++ {
		tm.send(keyLeft)
		tm.fire(16 * time.Millisecond)
	}
	if !tm.Game().Over() {
		t.Fatal("ball never dropped")
	}
}

func TestModelRestartPrompt(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.send(keySpace)
	loseGame(t, tm)

	if !tm.prompt.Open() {
		t.Fatal("losing should ask to play again")
	}
	if !strings.Contains(tm.View(), "Play again?") {
		t.Error("prompt not rendered")
	}

	tm.send(keyLeft)
	if !tm.prompt.Open() {
		t.Error("movement keys must not close the prompt")
	}

	tm.send(keyYes)
	if tm.prompt.Open() || tm.Game().Over() {
		t.Fatal("yes should start a new game")
	}
	if tm.Game().Runs() != 2 {
		t.Errorf("runs = %d, want 2", tm.Game().Runs())
	}
}

func TestModelDeclineRestart(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.send(keySpace)
	loseGame(t, tm)

	tm.send(keyNo)
	if tm.prompt.Open() {
		t.Fatal("no should close the prompt")
	}
	if !tm.Game().Over() {
		t.Fatal("declining keeps the game over")
	}

	tm.send(keySpace)
	if tm.Game().Over() {
		t.Error("space should still start a new game")
	}
}

func TestModelResizeShowsHelp(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.send(tea.WindowSizeMsg{Width: 70, Height: 21})

	if tm.Screen().Width() != 70 || tm.Screen().Height() != 20 {
		t.Errorf("screen = %dx%d, want 70x20", tm.Screen().Width(), tm.Screen().Height())
	}
	if !strings.Contains(tm.Screen().String(), "Press space") {
		t.Error("help text should be redrawn after resize")
	}
}

func TestModelRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tm := newTestModel(t, store)
	if tm.RunID() == "" {
		t.Fatal("expected a recorded run")
	}

	tm.send(keySpace)
	for i := 0; i < 5; i++ {
		tm.fire(16 * time.Millisecond)
	}

	if cmd := tm.send(keyQuit); cmd == nil {
		t.Fatal("q should quit")
	}
	if tm.View() != "" {
		t.Error("view should be empty after quitting")
	}

	frames, err := store.Frames(tm.RunID())
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 6 {
		t.Fatalf("recorded %d frames, want 6", len(frames))
	}
	if !frames[0].Resumed || frames[1].Resumed {
		t.Error("only the first frame starts the loop")
	}
	if frames[1].Delta != 16*time.Millisecond {
		t.Errorf("delta = %v, want 16ms", frames[1].Delta)
	}
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{keySpace, core.ActionToggle},
		{keyLeft, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, core.ActionRight},
		{keyDown, core.ActionStop},
		{keyYes, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionDecline},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
	}
	for _, tc := range tests {
		if got := km.Action(tc.msg); got != tc.want {
			t.Errorf("Action(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "Level: 3", core.ColorText)
	s.SetCell(10, 1, core.GlyphBall, core.ColorBall)

	out := NewRenderer(nil, core.ColorBackground).RenderScreen(s)
	if !strings.Contains(out, "Level: 3") {
		t.Errorf("rendered screen lost text: %q", out)
	}
	if !strings.ContainsRune(out, core.GlyphBall) {
		t.Error("rendered screen lost the ball")
	}
	if strings.Count(out, "\n") != 1 {
		t.Error("expected one line break per row")
	}
}

package desktop

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// fakeKeyboard reports the edges queued for the next update only.
type fakeKeyboard struct {
	pressed  map[ebiten.Key]bool
	released map[ebiten.Key]bool
}

func newFakeKeyboard() *fakeKeyboard {
	return &fakeKeyboard{pressed: map[ebiten.Key]bool{}, released: map[ebiten.Key]bool{}}
}

func (f *fakeKeyboard) JustPressed(k ebiten.Key) bool  { return f.pressed[k] }
func (f *fakeKeyboard) JustReleased(k ebiten.Key) bool { return f.released[k] }

func (f *fakeKeyboard) reset() {
	clear(f.pressed)
	clear(f.released)
}

type rig struct {
	g     *Game
	kb    *fakeKeyboard
	clock *engine.MockClock
	cells *core.Screen
}

func newRig(t *testing.T, store *storage.Store) *rig {
	t.Helper()
	cfg := config.DefaultBreakoutConfig()
	cells := core.NewScreen(50, 15)
	kb := newFakeKeyboard()
	clock := engine.NewMockClock(time.Unix(0, 0))
	g, err := New(Options{
		Game:     cfg,
		Seed:     3,
		Store:    store,
		Surface:  core.NewCellCanvas(cells, cfg.Arena.Width, cfg.Arena.Height),
		Keyboard: kb,
		Clock:    clock,
	})
	require.NoError(t, err)
	return &rig{g: g, kb: kb, clock: clock, cells: cells}
}

// update runs one ebiten update with the given key edges.
func (r *rig) update(t *testing.T, pressed, released []ebiten.Key) error {
	t.Helper()
	r.kb.reset()
	for _, k := range pressed {
		r.kb.pressed[k] = true
	}
	for _, k := range released {
		r.kb.released[k] = true
	}
	r.clock.Advance(time.Second / 60)
	return r.g.Update()
}

func TestSpaceStartsAndPauses(t *testing.T) {
	r := newRig(t, nil)
	assert.Contains(t, r.cells.String(), "Press space")

	require.NoError(t, r.update(t, []ebiten.Key{ebiten.KeySpace}, nil))
	assert.False(t, r.g.Breakout().Over())
	assert.True(t, r.g.sched.Running())

	require.NoError(t, r.update(t, []ebiten.Key{ebiten.KeySpace}, nil))
	assert.False(t, r.g.sched.Running())
}

func TestKeyUpReleasesIntent(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.update(t, []ebiten.Key{ebiten.KeySpace}, nil))

	require.NoError(t, r.update(t, []ebiten.Key{ebiten.KeyArrowLeft}, nil))
	for i := 0; i < 30; i++ {
		require.NoError(t, r.update(t, nil, nil))
	}
	left, _ := r.g.Breakout().Intents()
	assert.True(t, left, "a held key stays down without repeats")

	require.NoError(t, r.update(t, nil, []ebiten.Key{ebiten.KeyArrowLeft}))
	left, _ = r.g.Breakout().Intents()
	assert.False(t, left)
}

func TestRestartPromptKeys(t *testing.T) {
	r := newRig(t, nil)
	require.NoError(t, r.update(t, []ebiten.Key{ebiten.KeySpace, ebiten.KeyA}, nil))
	for i := 0; i < 500 && !r.g.Breakout().Over(); i++ {
		require.NoError(t, r.update(t, nil, nil))
	}
	require.True(t, r.g.Breakout().Over(), "a paddle parked left misses the ball")
	require.True(t, r.g.prompt.Open())

	require.NoError(t, r.update(t, []ebiten.Key{ebiten.KeyArrowRight}, []ebiten.Key{ebiten.KeyA}))
	assert.True(t, r.g.prompt.Open(), "movement must not answer the prompt")
	left, right := r.g.Breakout().Intents()
	assert.False(t, left, "releases apply under the prompt")
	assert.False(t, right, "presses are ignored while over")

	require.NoError(t, r.update(t, []ebiten.Key{ebiten.KeyY}, nil))
	assert.False(t, r.g.prompt.Open())
	assert.False(t, r.g.Breakout().Over())
	assert.Equal(t, 2, r.g.Breakout().Runs())
}

func TestQuitSavesRecording(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer store.Close()

	r := newRig(t, store)
	require.NotNil(t, r.g.recorder)
	require.NoError(t, r.update(t, []ebiten.Key{ebiten.KeySpace}, nil))
	for i := 0; i < 9; i++ {
		require.NoError(t, r.update(t, nil, nil))
	}

	err = r.update(t, []ebiten.Key{ebiten.KeyQ}, nil)
	require.ErrorIs(t, err, ebiten.Termination)

	frames, err := store.Frames(r.g.recorder.RunID())
	require.NoError(t, err)
	assert.Len(t, frames, int(r.g.sched.Ticks())) //#nosec G115 -- small test counter
}

func TestLayoutIsArena(t *testing.T) {
	r := newRig(t, nil)
	w, h := r.g.Layout(1920, 1080)
	assert.Equal(t, 500, w)
	assert.Equal(t, 300, h)
}

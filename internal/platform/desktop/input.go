package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Keyboard reports key edges for the current update.
type Keyboard interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

// ebitenKeyboard reads the real keyboard state through inpututil.
type ebitenKeyboard struct{}

func (ebitenKeyboard) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeyboard) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// Key groups. A window gets real key-up events, so holds need no timers.
var (
	keysToggle  = []ebiten.Key{ebiten.KeySpace}
	keysLeft    = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	keysRight   = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	keysConfirm = []ebiten.Key{ebiten.KeyY, ebiten.KeyEnter}
	keysDecline = []ebiten.Key{ebiten.KeyN, ebiten.KeyEscape}
	keysQuit    = []ebiten.Key{ebiten.KeyQ}
)

func anyPressed(kb Keyboard, keys []ebiten.Key) bool {
	for _, k := range keys {
		if kb.JustPressed(k) {
			return true
		}
	}
	return false
}

func anyReleased(kb Keyboard, keys []ebiten.Key) bool {
	for _, k := range keys {
		if kb.JustReleased(k) {
			return true
		}
	}
	return false
}

package tui

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// holdTracker turns key presses into held keys. Terminals report no key
// releases, only auto-repeated presses, so a key counts as held until no
// repeat arrived within the window. The first window covers the keyboard's
// repeat delay, later ones its repeat interval.
type holdTracker struct {
	initial time.Duration
	repeat  time.Duration
	until   map[core.Action]time.Time
}

func newHoldTracker(initial, repeat time.Duration) *holdTracker {
	return &holdTracker{
		initial: initial,
		repeat:  repeat,
		until:   make(map[core.Action]time.Time),
	}
}

// Press records a press of a at now.
func (h *holdTracker) Press(a core.Action, now time.Time) {
	window := h.initial
	if h.Held(a, now) {
		window = h.repeat
	}
	deadline := now.Add(window)
	if deadline.After(h.until[a]) {
		h.until[a] = deadline
	}
}

// Held reports whether a is still considered held at now.
func (h *holdTracker) Held(a core.Action, now time.Time) bool {
	deadline, ok := h.until[a]
	return ok && now.Before(deadline)
}

// Release forgets a.
func (h *holdTracker) Release(a core.Action) {
	delete(h.until, a)
}

package body

import (
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/vec"
)

// Text is a display-only label. Its position is the baseline origin of the
// first line. Text never moves and takes no part in collisions.
type Text struct {
	Base

	Font  core.Font
	lines []string
}

// NewText creates a label at position.
func NewText(position vec.Vector, text string) *Text {
	t := &Text{Base: Base{Position: position}, Font: core.DefaultFont}
	t.SetText(text)
	return t
}

// SetText replaces the content. Newlines split it into lines.
func (t *Text) SetText(text string) {
	t.lines = strings.Split(text, "\n")
}

// Text returns the content joined by newlines.
func (t *Text) Text() string { return strings.Join(t.lines, "\n") }

// Lines returns the content split into lines.
func (t *Text) Lines() []string { return t.lines }

// Size estimates the rendered block size from the font metrics.
func (t *Text) Size() (width, height float64) {
	longest := 0
	for _, l := range t.lines {
		longest = max(longest, len([]rune(l)))
	}
	lh := t.Font.LineHeight
	if lh <= 0 {
		lh = t.Font.Size
	}
	// Proportional fonts average roughly half their size per glyph.
	return float64(longest) * t.Font.Size * 0.5, float64(len(t.lines)) * lh
}

// Draw implements Drawable.
func (t *Text) Draw(s core.Surface) {
	s.DrawText(t.Position, t.lines, t.Font, t.Fill)
}

var (
	_ Body     = (*Text)(nil)
	_ Drawable = (*Text)(nil)
)

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Renderer turns a Screen buffer into styled terminal output. Styles are
// cached per color; a Renderer belongs to one session.
type Renderer struct {
	lg         *lipgloss.Renderer
	background core.Color
	styles     map[core.Color]lipgloss.Style
}

// NewRenderer creates a renderer painting blank cells with background.
// A nil lg uses the default lipgloss renderer.
func NewRenderer(lg *lipgloss.Renderer, background core.Color) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{
		lg:         lg,
		background: background,
		styles:     make(map[core.Color]lipgloss.Style),
	}
}

func (r *Renderer) style(c core.Color) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	s := r.lg.NewStyle()
	if r.background != core.ColorDefault {
		s = s.Background(lipgloss.Color(r.background))
	}
	if c != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(c))
	}
	r.styles[c] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (r *Renderer) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(r.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderPrompt draws the play-again box centered in a width x height area.
func (r *Renderer) RenderPrompt(width, height, points int, border core.Color) string {
	box := r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("Game over with %d points.\n\nPlay again? (y/n)", points))

	opts := []lipgloss.WhitespaceOption{}
	if r.background != core.ColorDefault {
		opts = append(opts, lipgloss.WithWhitespaceBackground(lipgloss.Color(r.background)))
	}
	return r.lg.Place(width, height, lipgloss.Center, lipgloss.Center, box, opts...)
}

package core

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/vec"
)

// Glyphs used when rasterizing shapes onto cells.
const (
	GlyphFill = '█'
	GlyphBall = '●'
)

// CellCanvas adapts a Screen to the Surface contract by scaling an arena of
// fixed pixel size onto however many cells the terminal currently has.
// Border colors are ignored: a cell is too coarse to show an outline.
type CellCanvas struct {
	screen *Screen
	arenaW float64
	arenaH float64
}

// NewCellCanvas creates a canvas for an arena of the given size.
func NewCellCanvas(screen *Screen, arenaW, arenaH float64) *CellCanvas {
	return &CellCanvas{screen: screen, arenaW: arenaW, arenaH: arenaH}
}

// Screen returns the underlying cell buffer.
func (c *CellCanvas) Screen() *Screen {
	return c.screen
}

// Width returns the arena width.
func (c *CellCanvas) Width() float64 { return c.arenaW }

// Height returns the arena height.
func (c *CellCanvas) Height() float64 { return c.arenaH }

// Clear blanks every cell touched by r.
func (c *CellCanvas) Clear(r Region) {
	c.screen.ClearRect(c.cellRect(r.X, r.Y, r.W, r.H))
}

// DrawCircle fills the cells whose centers fall inside the circle. Circles
// smaller than a cell still show up as a single ball glyph.
func (c *CellCanvas) DrawCircle(center vec.Vector, radius float64, fill, _ Color) {
	cx, cy := c.cellX(center.X()), c.cellY(center.Y())
	box := c.cellRect(center.X()-radius, center.Y()-radius, radius*2, radius*2)

	drawn := false
	sx, sy := c.scale()
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			px := (float64(x) + 0.5) / sx
			py := (float64(y) + 0.5) / sy
			if math.Hypot(px-center.X(), py-center.Y()) <= radius {
				c.screen.SetCell(x, y, GlyphBall, fill)
				drawn = true
			}
		}
	}
	if !drawn {
		c.screen.SetCell(cx, cy, GlyphBall, fill)
	}
}

// DrawRect fills the cells covered by the rectangle.
func (c *CellCanvas) DrawRect(origin vec.Vector, width, height float64, fill, _ Color) {
	r := c.cellRect(origin.X(), origin.Y(), width, height)
	if !r.Intersects(c.screen.Bounds()) {
		return
	}
	c.screen.DrawRect(r, GlyphFill, fill)
}

// DrawText writes each line on its own row. The origin is the baseline of the
// first line, like a canvas fillText call.
func (c *CellCanvas) DrawText(origin vec.Vector, lines []string, font Font, fill Color) {
	lineHeight := font.LineHeight
	if lineHeight <= 0 {
		lineHeight = font.Size
	}
	x := c.cellX(origin.X())
	for i, line := range lines {
		y := c.cellY(origin.Y() - font.Size + float64(i)*lineHeight)
		y = Clamp(y, 0, max(c.screen.Height()-1, 0))
		c.screen.DrawText(x, y, line, fill)
	}
}

// scale returns cells per arena unit on each axis.
func (c *CellCanvas) scale() (float64, float64) {
	if c.arenaW <= 0 || c.arenaH <= 0 {
		return 0, 0
	}
	return float64(c.screen.Width()) / c.arenaW, float64(c.screen.Height()) / c.arenaH
}

func (c *CellCanvas) cellX(x float64) int {
	sx, _ := c.scale()
	return int(math.Floor(x * sx))
}

func (c *CellCanvas) cellY(y float64) int {
	_, sy := c.scale()
	return int(math.Floor(y * sy))
}

// cellRect converts an arena box into the smallest cell rectangle covering it.
func (c *CellCanvas) cellRect(x, y, w, h float64) Rect {
	sx, sy := c.scale()
	x0 := int(math.Floor(x * sx))
	y0 := int(math.Floor(y * sy))
	x1 := int(math.Ceil((x + w) * sx))
	y1 := int(math.Ceil((y + h) * sy))
	return NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

var _ Surface = (*CellCanvas)(nil)

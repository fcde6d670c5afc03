package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/vec"
)

const borderWidth = 1

// ImageSurface draws bodies onto an offscreen image one arena pixel per
// image pixel. Ebiten scales it to the window in Draw.
type ImageSurface struct {
	img        *ebiten.Image
	background core.Color
	face       text.Face
}

// NewImageSurface creates a surface of the arena size.
func NewImageSurface(width, height int, background core.Color) *ImageSurface {
	return &ImageSurface{
		img:        ebiten.NewImage(width, height),
		background: background,
		face:       text.NewGoXFace(basicfont.Face7x13),
	}
}

// Image returns the offscreen image.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

// Face returns the font used for text.
func (s *ImageSurface) Face() text.Face { return s.face }

func (s *ImageSurface) Width() float64  { return float64(s.img.Bounds().Dx()) }
func (s *ImageSurface) Height() float64 { return float64(s.img.Bounds().Dy()) }

func (s *ImageSurface) Clear(r core.Region) {
	vector.DrawFilledRect(s.img, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), s.background.RGBA(), false)
}

func (s *ImageSurface) DrawCircle(center vec.Vector, radius float64, fill, border core.Color) {
	cx, cy, r := float32(center.X()), float32(center.Y()), float32(radius)
	vector.DrawFilledCircle(s.img, cx, cy, r, fill.RGBA(), true)
	vector.StrokeCircle(s.img, cx, cy, r, borderWidth, border.RGBA(), true)
}

func (s *ImageSurface) DrawRect(origin vec.Vector, width, height float64, fill, border core.Color) {
	x, y, w, h := float32(origin.X()), float32(origin.Y()), float32(width), float32(height)
	vector.DrawFilledRect(s.img, x, y, w, h, fill.RGBA(), false)
	vector.StrokeRect(s.img, x, y, w, h, borderWidth, border.RGBA(), false)
}

// DrawText draws each line with its baseline at origin.Y plus the line offset.
func (s *ImageSurface) DrawText(origin vec.Vector, lines []string, font core.Font, fill core.Color) {
	drawLines(s.img, s.face, origin.X(), origin.Y(), lines, font, fill)
}

func drawLines(dst *ebiten.Image, face text.Face, x, baseline float64, lines []string, font core.Font, fill core.Color) {
	lineHeight := font.LineHeight
	if lineHeight <= 0 {
		lineHeight = font.Size
	}
	ascent := face.Metrics().HAscent
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, baseline-ascent+float64(i)*lineHeight)
		op.ColorScale.ScaleWithColor(fill.RGBA())
		text.Draw(dst, line, face, op)
	}
}

var _ core.Surface = (*ImageSurface)(nil)

// Package breakout implements the brick breaker simulation: the ball and
// paddle behaviors, the brick grid and the level progression.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/body"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/vec"
)

// Layout describes the brick grid of one level.
type Layout struct {
	Rows        int
	Columns     int
	Margin      float64 // gap between bricks and around the grid
	BrickWidth  float64
	BrickHeight float64
}

// LayoutFor computes the grid for a 0-based level index. The grid spans the
// arena width and grows by one row and one column per level. Brick sizes
// bottom out at zero for very high levels.
func LayoutFor(cfg config.BreakoutConfig, level int, margin float64) Layout {
	rows := cfg.Bricks.Rows + level
	cols := cfg.Bricks.Columns + level
	return Layout{
		Rows:        rows,
		Columns:     cols,
		Margin:      margin,
		BrickWidth:  max((cfg.Arena.Width-margin*float64(cols+1))/float64(cols), 0),
		BrickHeight: max((cfg.Arena.Height-margin*float64(rows+1))/float64(4*cols), 0),
	}
}

// Origin returns the top-left corner of the brick at row, col.
func (l Layout) Origin(row, col int) (x, y float64) {
	x = l.Margin + (l.Margin+l.BrickWidth)*float64(col)
	y = l.Margin + (l.Margin+l.BrickHeight)*float64(row)
	return x, y
}

// BuildLevel creates the bricks of a level, row by row from the top.
func BuildLevel(cfg config.BreakoutConfig, level int, margin float64) []*body.Rectangle {
	l := LayoutFor(cfg, level, margin)
	bricks := make([]*body.Rectangle, 0, l.Rows*l.Columns)
	for row := range l.Rows {
		for col := range l.Columns {
			x, y := l.Origin(row, col)
			brick := mustRectangle(vec.MustNew(x, y), vec.Zero(), l.BrickWidth, l.BrickHeight)
			brick.SetColors(cfg.Colors.Bricks, cfg.Colors.Border)
			bricks = append(bricks, brick)
		}
	}
	return bricks
}

// nextLevel loads the grid for the current level index, then scales the
// ball and paddle. The first level of a game keeps the configured sizes.
func (g *Game) nextLevel() {
	bricks := BuildLevel(g.cfg, g.level, g.ball.Radius())
	for _, b := range bricks {
		g.sched.Add(b)
	}
	g.bricks = append(g.bricks, bricks...)

	if g.level > 0 {
		lv := g.cfg.Levels
		if err := g.ball.SetRadius(g.ball.Radius() * lv.BallShrink); err != nil {
			panic(err)
		}
		p := g.paddle
		if err := p.SetSize(p.Width()*lv.PaddleShrink, p.Height()*lv.PaddleShrink); err != nil {
			panic(err)
		}
		g.paddleSpeed *= lv.PaddleSpeedGrowth
		g.ball.Velocity.Mul(vec.MustNew(1, lv.BallSpeedGrowth))
		g.points += lv.Bonus
		g.updatePoints()
	}

	g.level++
	g.levelText.SetText(fmt.Sprintf("%s%d", LevelPrefix, g.level))
	g.logger.Debug("level loaded", "level", g.level, "bricks", len(bricks), "points", g.points)
}

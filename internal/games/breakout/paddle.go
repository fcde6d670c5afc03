package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/body"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/vec"
)

// newPaddle centers the paddle above the bottom margin.
func (g *Game) newPaddle() *body.Rectangle {
	w, h := g.cfg.Paddle.Width, g.cfg.Paddle.Height
	paddle := mustRectangle(
		vec.MustNew((g.cfg.Arena.Width-w)/2, g.cfg.Arena.Height-h-g.cfg.Paddle.BottomMargin),
		vec.Zero(),
		w, h,
	)
	paddle.SetColors(g.cfg.Colors.Paddle, g.cfg.Colors.Border)
	paddle.SetBehavior(g.movePaddle)
	g.paddleSpeed = g.cfg.Paddle.Speed
	return paddle
}

// PaddleVelocity resolves the intents into a horizontal velocity.
// Opposing intents cancel out.
func PaddleVelocity(left, right bool, speed float64) float64 {
	switch {
	case left && !right:
		return -speed
	case right && !left:
		return speed
	default:
		return 0
	}
}

// movePaddle is the paddle behavior run once per tick.
func (g *Game) movePaddle(delta float64) {
	p := g.paddle
	setX(&p.Velocity, PaddleVelocity(g.moveLeft, g.moveRight, g.paddleSpeed))
	if p.Moving() {
		p.Integrate(delta)
	}

	lo := g.cfg.Paddle.LateralMargin
	hi := g.cfg.Arena.Width - p.Width() - g.cfg.Paddle.LateralMargin
	x := p.Position.X()
	if clamped := core.Clamp(x, lo, hi); clamped != x {
		setX(&p.Position, clamped)
		setX(&p.Velocity, 0)
	}
}

// setX and setY assign components computed from finite state. A failure means
// the simulation is already corrupt.
func setX(v *vec.Vector, x float64) {
	if err := v.SetX(x); err != nil {
		panic(err)
	}
}

func setY(v *vec.Vector, y float64) {
	if err := v.SetY(y); err != nil {
		panic(err)
	}
}

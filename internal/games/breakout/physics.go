package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/body"
)

// Gaps holds the four directed distances between a ball and a rectangle.
// The shapes overlap when every gap is zero or negative.
type Gaps struct {
	Top    float64 // rect top minus ball bottom
	Bottom float64 // ball top minus rect bottom
	Left   float64 // rect left minus ball right
	Right  float64 // ball left minus rect right
}

// Overlap reports an AABB overlap.
func (g Gaps) Overlap() bool {
	return g.Top <= 0 && g.Bottom <= 0 && g.Left <= 0 && g.Right <= 0
}

// GapsBetween measures ball against r using the ball's bounding box.
func GapsBetween(ball *body.Circle, r *body.Rectangle) Gaps {
	return Gaps{
		Top:    r.Top() - ball.Bottom(),
		Bottom: ball.Top() - r.Bottom(),
		Left:   r.Left() - ball.Right(),
		Right:  ball.Left() - r.Right(),
	}
}

// moveBall is the ball behavior run once per tick.
func (g *Game) moveBall(delta float64) {
	ball := g.ball
	ball.Integrate(delta)

	g.collideBricks()
	if !g.collideWalls() {
		g.collidePaddle()
	}
	if g.over {
		return
	}

	if len(g.bricks) == 0 && ball.Top() > g.lowestBrickLine+g.cfg.Levels.AdvanceMargin {
		g.nextLevel()
	}
}

// collideBricks removes every brick the ball overlaps and reflects the ball.
// Each hit is resolved with the direction the ball has at that moment.
func (g *Game) collideBricks() {
	if len(g.bricks) == 0 {
		return
	}

	ball := g.ball
	lowest := math.Inf(-1)
	live := g.bricks[:0]
	hits := 0
	for _, brick := range g.bricks {
		lowest = max(lowest, brick.Bottom())
		if !GapsBetween(ball, brick).Overlap() {
			live = append(live, brick)
			continue
		}
		brick.MarkForRemoval()
		g.points += g.cfg.Bricks.Points
		hits++
		g.reflectOffBrick()
	}
	clear(g.bricks[len(live):])
	g.bricks = live
	g.lowestBrickLine = lowest

	if hits > 0 {
		g.updatePoints()
	}
}

// reflectOffBrick sends the ball away from a brick. Upward motion wins over
// horizontal motion; a ball falling straight down is only bounced when
// brick_top_reflect is on.
func (g *Game) reflectOffBrick() {
	ball := g.ball
	v := &ball.Velocity
	switch {
	case ball.GoingUp():
		setY(v, math.Abs(v.Y()))
	case ball.GoingRight():
		setX(v, -math.Abs(v.X()))
	case ball.GoingLeft():
		setX(v, math.Abs(v.X()))
	case ball.GoingDown() && g.cfg.Physics.BrickTopReflect:
		setY(v, -math.Abs(v.Y()))
	}
}

// collideWalls bounces the ball off the side and top walls. It reports whether
// a wall was hit.
func (g *Game) collideWalls() bool {
	ball := g.ball
	if (ball.GoingRight() && ball.Right() >= g.cfg.Arena.Width) || (ball.GoingLeft() && ball.Left() <= 0) {
		ball.Velocity.InvertX()
		return true
	}
	if ball.GoingUp() && ball.Top() <= 0 {
		ball.Velocity.InvertY()
		return true
	}
	return false
}

// collidePaddle bounces a descending ball off the paddle, or ends the game
// once the ball is past the paddle bottom.
func (g *Game) collidePaddle() {
	ball, paddle := g.ball, g.paddle
	gaps := GapsBetween(ball, paddle)
	if ball.GoingDown() && gaps.Top <= 0 && gaps.Left <= 0 && gaps.Right <= 0 {
		ball.Velocity.InvertY()
		g.applyFriction()
		return
	}
	if ball.Bottom() >= paddle.Bottom() {
		g.gameOver()
	}
}

// applyFriction transfers paddle motion to the ball: a paddle moving with the
// ball speeds it up by the friction ratio, against it slows it down by the
// same ratio. Horizontal speed is capped at max_speed_x.
func (g *Game) applyFriction() {
	ball, paddle := g.ball, g.paddle
	if !paddle.Moving() {
		return
	}

	ratio := g.cfg.Paddle.Friction
	if (ball.GoingLeft() && paddle.GoingRight()) || (ball.GoingRight() && paddle.GoingLeft()) {
		ratio = 1 / ratio
	}
	vx := ball.Velocity.X() * ratio
	if limit := g.cfg.Ball.MaxSpeedX; math.Abs(vx) > limit {
		vx = math.Copysign(limit, vx)
	}
	setX(&ball.Velocity, vx)
}

package breakout

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/body"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/vec"
)

// HUD labels.
const (
	LevelPrefix  = "Level: "
	PointsPrefix = "Points: "
)

// HelpText is shown before the first game and after every game over.
const HelpText = "- Press space to start the game.\n" +
	"- Use the left and right arrows to move the paddle.\n" +
	"- Press space again to pause."

// hudOffset places the HUD baseline below the paddle.
const hudOffset = 20

// RestartPrompt asks the player whether to play again once a game is lost.
// reply may be called synchronously or later from the host event loop.
type RestartPrompt interface {
	AskRestart(points int, reply func(yes bool))
}

// RestartFunc adapts a function to RestartPrompt.
type RestartFunc func(points int, reply func(yes bool))

// AskRestart implements RestartPrompt.
func (f RestartFunc) AskRestart(points int, reply func(yes bool)) { f(points, reply) }

// Options configures a Game.
type Options struct {
	Seed   uint64 // seeds the ball launch angle
	Logger *log.Logger
	Prompt RestartPrompt // nil means no restart question; space still restarts
}

// Game owns the breakout state and wires the ball and paddle behaviors into
// a scheduler. A Game starts over: NewGame begins the first run.
type Game struct {
	cfg    config.BreakoutConfig
	sched  *engine.Scheduler
	rng    *rand.Rand
	logger *log.Logger
	prompt RestartPrompt

	over   bool
	level  int
	points int
	runs   int

	bricks          []*body.Rectangle
	lowestBrickLine float64

	ball        *body.Circle
	paddle      *body.Rectangle
	paddleSpeed float64
	levelText   *body.Text
	pointsText  *body.Text

	moveLeft  bool
	moveRight bool
}

// New creates a game bound to sched and shows the help text.
func New(cfg config.BreakoutConfig, sched *engine.Scheduler, opts Options) (*Game, error) {
	if sched == nil {
		return nil, errors.New("breakout: nil scheduler")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		cfg:    cfg,
		sched:  sched,
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		logger: logger,
		prompt: opts.Prompt,
		over:   true,
	}
	g.ShowHelp()
	return g, nil
}

// NewGame resets the state and starts the scheduler.
// Bodies are added paddle first so the paddle moves before the ball.
func (g *Game) NewGame() {
	g.sched.Stop()
	g.sched.Reset()
	g.over = false
	g.level = 0
	g.points = 0
	g.bricks = nil
	g.lowestBrickLine = 0
	g.runs++

	g.paddle = g.newPaddle()
	g.sched.Add(g.paddle)

	g.ball = g.newBall()
	g.sched.Add(g.ball)

	hudY := g.cfg.Arena.Height - g.cfg.Paddle.BottomMargin + hudOffset
	g.levelText = body.NewText(vec.MustNew(5, hudY), "")
	g.levelText.SetColors(g.cfg.Colors.Text, g.cfg.Colors.Text)
	g.sched.Add(g.levelText)

	g.pointsText = body.NewText(vec.MustNew((g.cfg.Arena.Width-35)/2, hudY), "")
	g.pointsText.SetColors(g.cfg.Colors.Text, g.cfg.Colors.Text)
	g.sched.Add(g.pointsText)
	g.updatePoints()

	g.nextLevel()
	g.logger.Info("new game", "run", g.runs)
	g.sched.Start()
}

// Toggle handles the start/pause key: a lost game starts over, otherwise the
// loop pauses or resumes.
func (g *Game) Toggle() {
	if g.over {
		g.NewGame()
		return
	}
	g.sched.Toggle()
}

// SetMoveLeft records the move-left intent. Presses are ignored while the
// game is over; releases always apply so a key is never stuck.
func (g *Game) SetMoveLeft(on bool) {
	if on && g.over {
		return
	}
	g.moveLeft = on
}

// SetMoveRight records the move-right intent.
func (g *Game) SetMoveRight(on bool) {
	if on && g.over {
		return
	}
	g.moveRight = on
}

// Intents returns the current movement intents.
func (g *Game) Intents() (left, right bool) { return g.moveLeft, g.moveRight }

// ShowHelp draws the instructions over whatever the surface shows.
func (g *Game) ShowHelp() {
	help := body.NewText(vec.Zero(), HelpText)
	help.SetColors(g.cfg.Colors.Text, g.cfg.Colors.Text)
	w, h := help.Size()
	s := g.sched.Surface()
	help.Position = vec.MustNew(max((s.Width()-w)/2, 0), max((s.Height()-h)/2, help.Font.Size))
	help.Draw(s)
}

// Over reports whether the game is lost (or not started yet).
func (g *Game) Over() bool { return g.over }

// Level returns the current level, 1-based once a game has started.
func (g *Game) Level() int { return g.level }

// Points returns the score of the current game.
func (g *Game) Points() int { return g.points }

// Runs returns how many games were started.
func (g *Game) Runs() int { return g.runs }

// Ball returns the ball, nil before the first game.
func (g *Game) Ball() *body.Circle { return g.ball }

// Paddle returns the paddle, nil before the first game.
func (g *Game) Paddle() *body.Rectangle { return g.paddle }

// Bricks returns the live bricks.
func (g *Game) Bricks() []*body.Rectangle {
	out := make([]*body.Rectangle, len(g.bricks))
	copy(out, g.bricks)
	return out
}

// LowestBrickLine returns the lowest brick bottom seen on the latest tick.
func (g *Game) LowestBrickLine() float64 { return g.lowestBrickLine }

// Config returns the configuration the game runs with.
func (g *Game) Config() config.BreakoutConfig { return g.cfg }

// Scheduler returns the scheduler driving the game.
func (g *Game) Scheduler() *engine.Scheduler { return g.sched }

func (g *Game) gameOver() {
	g.over = true
	g.sched.Stop()
	g.logger.Info("game over", "level", g.level, "points", g.points)

	points := g.points
	g.sched.Defer(func() {
		g.ShowHelp()
		if g.prompt == nil {
			return
		}
		g.prompt.AskRestart(points, func(yes bool) {
			if yes && g.over {
				g.NewGame()
			}
		})
	})
}

func (g *Game) updatePoints() {
	g.pointsText.SetText(fmt.Sprintf("%s%d", PointsPrefix, g.points))
}

// newBall places the ball mid-arena heading down at a random angle.
func (g *Game) newBall() *body.Circle {
	r := g.cfg.Ball.Radius
	half := g.cfg.Ball.MaxSpeedX / 2
	vx := -half + g.rng.Float64()*g.cfg.Ball.MaxSpeedX
	if vx > 0 {
		vx += half
	} else {
		vx -= half
	}

	ball := mustCircle(
		vec.MustNew((g.cfg.Arena.Width-r)/2, (g.cfg.Arena.Height-r)/2),
		vec.MustNew(vx, g.cfg.Ball.Speed),
		r,
	)
	ball.SetColors(g.cfg.Colors.Ball, g.cfg.Colors.Border)
	ball.SetBehavior(g.moveBall)
	return ball
}

func mustCircle(pos, vel vec.Vector, r float64) *body.Circle {
	c, err := body.NewCircle(pos, vel, r)
	if err != nil {
		panic(err)
	}
	return c
}

func mustRectangle(pos, vel vec.Vector, w, h float64) *body.Rectangle {
	r, err := body.NewRectangle(pos, vel, w, h)
	if err != nil {
		panic(err)
	}
	return r
}

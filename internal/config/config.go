// Package config provides YAML-based configuration loading and difficulty
// presets for the breakout simulation.
package config

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// BreakoutConfig contains all configuration for a breakout game.
// Lengths are arena pixels, speeds pixels per second.
type BreakoutConfig struct {
	Arena     ArenaConfig     `yaml:"arena"`
	Ball      BallConfig      `yaml:"ball"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Bricks    BricksConfig    `yaml:"bricks"`
	Levels    LevelsConfig    `yaml:"levels"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Colors    ColorsConfig    `yaml:"colors"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Input     InputConfig     `yaml:"input"`
}

// ArenaConfig sizes the playing field.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines the ball at level one.
type BallConfig struct {
	Radius    float64 `yaml:"radius"`
	Speed     float64 `yaml:"speed"`       // initial downward speed
	MaxSpeedX float64 `yaml:"max_speed_x"` // cap on horizontal speed after a paddle hit
}

// PaddleConfig defines the paddle at level one.
type PaddleConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	BottomMargin  float64 `yaml:"bottom_margin"`
	LateralMargin float64 `yaml:"lateral_margin"`
	Friction      float64 `yaml:"friction"` // >1 speeds the ball up along the paddle motion
}

// BricksConfig defines the level-one grid and brick value.
type BricksConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	Points  int `yaml:"points"`
}

// LevelsConfig defines how each new level scales the game.
type LevelsConfig struct {
	Bonus             int     `yaml:"bonus"`
	BallShrink        float64 `yaml:"ball_shrink"`
	PaddleShrink      float64 `yaml:"paddle_shrink"`
	PaddleSpeedGrowth float64 `yaml:"paddle_speed_growth"`
	BallSpeedGrowth   float64 `yaml:"ball_speed_growth"`
	AdvanceMargin     float64 `yaml:"advance_margin"` // ball must clear the last brick row by this much
}

// PhysicsConfig toggles collision behaviors.
type PhysicsConfig struct {
	// BrickTopReflect bounces a ball falling straight down onto a brick.
	// Off by default: such a ball breaks the brick and keeps falling.
	BrickTopReflect bool `yaml:"brick_top_reflect"`
}

// ColorsConfig holds hex colors for every body.
type ColorsConfig struct {
	Background core.Color `yaml:"background"`
	Ball       core.Color `yaml:"ball"`
	Paddle     core.Color `yaml:"paddle"`
	Bricks     core.Color `yaml:"bricks"`
	Border     core.Color `yaml:"border"`
	Text       core.Color `yaml:"text"`
}

// SchedulerConfig tunes the frame loop.
type SchedulerConfig struct {
	FPS      int           `yaml:"fps"`
	MaxDelta time.Duration `yaml:"max_delta"`
}

// InputConfig tunes key-hold detection for terminals, which report key
// presses and autorepeat but never key releases.
type InputConfig struct {
	HoldInitial time.Duration `yaml:"hold_initial"` // window after the first press
	HoldRepeat  time.Duration `yaml:"hold_repeat"`  // window after each autorepeat
}

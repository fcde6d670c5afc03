package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Arena: ArenaConfig{
			Width:  500,
			Height: 300,
		},
		Ball: BallConfig{
			Radius:    10,
			Speed:     300,
			MaxSpeedX: 240,
		},
		Paddle: PaddleConfig{
			Width:         120,
			Height:        10,
			Speed:         600,
			BottomMargin:  25,
			LateralMargin: 1,
			Friction:      1.1,
		},
		Bricks: BricksConfig{
			Rows:    2,
			Columns: 5,
			Points:  1,
		},
		Levels: LevelsConfig{
			Bonus:             15,
			BallShrink:        0.95,
			PaddleShrink:      0.95,
			PaddleSpeedGrowth: 1.08,
			BallSpeedGrowth:   1.03,
			AdvanceMargin:     30,
		},
		Colors: ColorsConfig{
			Background: core.ColorBackground,
			Ball:       core.ColorBall,
			Paddle:     core.ColorPaddle,
			Bricks:     core.ColorBrick,
			Border:     core.ColorBorder,
			Text:       core.ColorText,
		},
		Scheduler: SchedulerConfig{
			FPS:      60,
			MaxDelta: 100 * time.Millisecond,
		},
		Input: InputConfig{
			HoldInitial: 500 * time.Millisecond,
			HoldRepeat:  100 * time.Millisecond,
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
// Files only need the keys they override; the rest comes from the defaults.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryFile(filepath.Join("configs", "breakout.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile reads an optional config file. Unreadable or invalid files are
// skipped so a broken user file never blocks the game from starting.
func tryFile(path string) (BreakoutConfig, bool) {
	cfg := DefaultBreakoutConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Marshal encodes the config as YAML. Replays store it next to the seed.
func Marshal(cfg BreakoutConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a YAML config produced by Marshal.
func Unmarshal(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configs the simulation cannot run with.
func (c BreakoutConfig) Validate() error {
	floats := []struct {
		name  string
		value float64
	}{
		{"arena.width", c.Arena.Width},
		{"arena.height", c.Arena.Height},
		{"ball.radius", c.Ball.Radius},
		{"ball.speed", c.Ball.Speed},
		{"ball.max_speed_x", c.Ball.MaxSpeedX},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.speed", c.Paddle.Speed},
		{"paddle.bottom_margin", c.Paddle.BottomMargin},
		{"paddle.lateral_margin", c.Paddle.LateralMargin},
		{"paddle.friction", c.Paddle.Friction},
		{"levels.ball_shrink", c.Levels.BallShrink},
		{"levels.paddle_shrink", c.Levels.PaddleShrink},
		{"levels.paddle_speed_growth", c.Levels.PaddleSpeedGrowth},
		{"levels.ball_speed_growth", c.Levels.BallSpeedGrowth},
		{"levels.advance_margin", c.Levels.AdvanceMargin},
	}
	for _, f := range floats {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalid, f.name, f.value)
		}
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"arena.width", c.Arena.Width},
		{"arena.height", c.Arena.Height},
		{"ball.radius", c.Ball.Radius},
		{"ball.speed", c.Ball.Speed},
		{"ball.max_speed_x", c.Ball.MaxSpeedX},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.speed", c.Paddle.Speed},
		{"paddle.friction", c.Paddle.Friction},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.value)
		}
	}

	// Sizes may only shrink and speeds only grow, so a paddle that fits at
	// level one fits at every level.
	shrink := []struct {
		name  string
		value float64
	}{
		{"levels.ball_shrink", c.Levels.BallShrink},
		{"levels.paddle_shrink", c.Levels.PaddleShrink},
	}
	for _, r := range shrink {
		if r.value <= 0 || r.value > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1], got %v", ErrInvalid, r.name, r.value)
		}
	}
	growth := []struct {
		name  string
		value float64
	}{
		{"levels.paddle_speed_growth", c.Levels.PaddleSpeedGrowth},
		{"levels.ball_speed_growth", c.Levels.BallSpeedGrowth},
	}
	for _, r := range growth {
		if r.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %v", ErrInvalid, r.name, r.value)
		}
	}

	switch {
	case c.Bricks.Rows < 1 || c.Bricks.Columns < 1:
		return fmt.Errorf("%w: bricks need at least one row and column", ErrInvalid)
	case c.Bricks.Points < 0 || c.Levels.Bonus < 0:
		return fmt.Errorf("%w: points must not be negative", ErrInvalid)
	case c.Paddle.LateralMargin < 0 || c.Paddle.BottomMargin < 0 || c.Levels.AdvanceMargin < 0:
		return fmt.Errorf("%w: margins must not be negative", ErrInvalid)
	case c.Paddle.Width+2*c.Paddle.LateralMargin > c.Arena.Width:
		return fmt.Errorf("%w: paddle does not fit the arena", ErrInvalid)
	case c.Scheduler.FPS <= 0:
		return fmt.Errorf("%w: scheduler.fps must be positive", ErrInvalid)
	case c.Input.HoldInitial < 0 || c.Input.HoldRepeat < 0:
		return fmt.Errorf("%w: input hold windows must not be negative", ErrInvalid)
	}
	return nil
}

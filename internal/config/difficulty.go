package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// IsFixedPreset returns true if the preset disables level scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// Normal leaves the config untouched.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Ball.Speed *= 0.8
		cfg.Paddle.Width *= 1.25
	case DifficultyHard:
		cfg.Ball.Speed *= 1.25
		cfg.Paddle.Width *= 0.8
		cfg.Paddle.Speed *= 1.1
	case DifficultyFixed:
		// Levels still add rows, but sizes and speeds stay put.
		cfg.Levels.BallShrink = 1
		cfg.Levels.PaddleShrink = 1
		cfg.Levels.PaddleSpeedGrowth = 1
		cfg.Levels.BallSpeedGrowth = 1
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BreakoutConfig
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBreakoutConfig()) {
		t.Errorf("embedded defaults drifted:\n got %+v\nwant %+v", cfg, DefaultBreakoutConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadBreakoutCustomPathOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	data := []byte("ball:\n  speed: 420\nscheduler:\n  max_delta: 50ms\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout: %v", err)
	}
	if cfg.Ball.Speed != 420 {
		t.Errorf("ball speed = %v, want 420", cfg.Ball.Speed)
	}
	if cfg.Scheduler.MaxDelta != 50*time.Millisecond {
		t.Errorf("max delta = %v, want 50ms", cfg.Scheduler.MaxDelta)
	}
	if cfg.Ball.Radius != 10 {
		t.Errorf("unset keys should keep defaults, radius = %v", cfg.Ball.Radius)
	}
}

func TestLoadBreakoutCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBreakout(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("paddle:\n  width: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadBreakoutUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "breakout.yaml"), []byte("bricks:\n  rows: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout("")
	if err != nil {
		t.Fatalf("LoadBreakout: %v", err)
	}
	if cfg.Bricks.Rows != 4 {
		t.Errorf("rows = %d, want 4 from user config", cfg.Bricks.Rows)
	}
}

func TestLoadBreakoutSkipsBrokenUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "breakout.yaml"), []byte("bricks: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout("")
	if err != nil {
		t.Fatalf("LoadBreakout: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBreakoutConfig()) {
		t.Error("broken user config should fall back to defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
	}{
		{"zero arena", func(c *BreakoutConfig) { c.Arena.Width = 0 }},
		{"zero radius", func(c *BreakoutConfig) { c.Ball.Radius = 0 }},
		{"no rows", func(c *BreakoutConfig) { c.Bricks.Rows = 0 }},
		{"negative bonus", func(c *BreakoutConfig) { c.Levels.Bonus = -1 }},
		{"negative margin", func(c *BreakoutConfig) { c.Paddle.LateralMargin = -1 }},
		{"paddle too wide", func(c *BreakoutConfig) { c.Paddle.Width = 499 }},
		{"zero fps", func(c *BreakoutConfig) { c.Scheduler.FPS = 0 }},
		{"zero shrink", func(c *BreakoutConfig) { c.Levels.BallShrink = 0 }},
		{"ball grows", func(c *BreakoutConfig) { c.Levels.BallShrink = 1.2 }},
		{"paddle grows", func(c *BreakoutConfig) { c.Levels.PaddleShrink = 1.5 }},
		{"paddle slows", func(c *BreakoutConfig) { c.Levels.PaddleSpeedGrowth = 0.9 }},
		{"ball slows", func(c *BreakoutConfig) { c.Levels.BallSpeedGrowth = 0.5 }},
		{"infinite speed", func(c *BreakoutConfig) { c.Ball.Speed = math.Inf(1) }},
		{"infinite margin", func(c *BreakoutConfig) { c.Paddle.BottomMargin = math.Inf(1) }},
		{"nan advance margin", func(c *BreakoutConfig) { c.Levels.AdvanceMargin = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateAcceptsUnitRatios(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&cfg, DifficultyFixed)
	if err := cfg.Validate(); err != nil {
		t.Errorf("fixed preset should validate: %v", err)
	}
}

func TestUnmarshalRejectsInfinity(t *testing.T) {
	data, err := Marshal(DefaultBreakoutConfig())
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "speed: 300") {
		t.Fatalf("default ball speed missing from encoded config:\n%s", text)
	}
	data = []byte(strings.Replace(text, "speed: 300", "speed: .inf", 1))

	if _, err := Unmarshal(data); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for .inf, got %v", err)
	}
}

func TestLoadBreakoutRejectsInfinity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	if err := os.WriteFile(path, []byte("ball:\n  speed: .inf\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestApplyBreakoutPreset(t *testing.T) {
	base := DefaultBreakoutConfig()

	easy := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&easy, DifficultyEasy)
	if easy.Ball.Speed >= base.Ball.Speed || easy.Paddle.Width <= base.Paddle.Width {
		t.Errorf("easy should slow the ball and widen the paddle: %+v", easy)
	}

	hard := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&hard, DifficultyHard)
	if hard.Ball.Speed <= base.Ball.Speed || hard.Paddle.Width >= base.Paddle.Width {
		t.Errorf("hard should speed the ball and shrink the paddle: %+v", hard)
	}

	normal := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, base) {
		t.Error("normal must not change the config")
	}

	fixed := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&fixed, DifficultyFixed)
	if fixed.Levels.BallShrink != 1 || fixed.Levels.BallSpeedGrowth != 1 {
		t.Errorf("fixed should disable level scaling: %+v", fixed.Levels)
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyHard) {
		t.Error("IsFixedPreset mismatch")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&cfg, DifficultyHard)
	cfg.Physics.BrickTopReflect = true

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

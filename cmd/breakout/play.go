package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start breakout in the current terminal.

Controls:
  Space        - Start a new game / pause and resume
  Left/A       - Move the paddle left (hold)
  Right/D      - Move the paddle right (hold)
  Down/S       - Stop the paddle
  Y/N          - Answer the play-again question
  Q/Ctrl+C     - Quit

Terminals do not report key releases: the paddle keeps moving while the
key auto-repeats and stops shortly after it is let go.

Difficulty options:
  easy   - Slower ball, wider paddle
  normal - Default settings
  hard   - Faster ball, narrower paddle
  fixed  - Nothing changes between levels

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --seed 7 --log ./breakout.log
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size for the first frame; resizes arrive as messages
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Scheduler.FPS,
		Seed:     seed(),
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(tui.Options{
		Game:    cfg,
		Runtime: rc,
		Store:   store,
		Logger:  logger,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

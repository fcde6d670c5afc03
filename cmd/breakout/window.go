package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/desktop"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open breakout in a desktop window drawn at the arena's pixel size.

The window gets real key presses and releases, so the paddle moves exactly
as long as an arrow key is held.

Examples:
  breakout window
  breakout window --scale 3 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 2, "Window pixels per arena pixel")
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return desktop.Run(desktop.Options{
		Game:   cfg,
		Seed:   uint64(seed()), //#nosec G115 -- seed bits are reused as is
		Scale:  flagScale,
		Store:  store,
		Logger: logger,
	})
}

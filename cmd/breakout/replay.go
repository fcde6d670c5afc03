package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/replay"
)

var (
	flagShow bool
	flagCols int
	flagRows int
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded run",
	Long: `Re-run a recorded session headless from its seed, settings, frame
timing and key presses, then print the final state. Any unique ID prefix
selects a run.

Examples:
  breakout replay 3f2a
  breakout replay 3f2a --show --cols 100 --rows 30`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagShow, "show", false, "Print the final frame")
	replayCmd.Flags().IntVar(&flagCols, "cols", 80, "Width of the printed frame")
	replayCmd.Flags().IntVar(&flagRows, "rows", 24, "Height of the printed frame")
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.RunByID(args[0])
	if err != nil {
		return err
	}
	frames, err := store.Frames(run.ID)
	if err != nil {
		return err
	}

	res, err := replay.Run(run, frames, replay.Options{Cols: flagCols, Rows: flagRows, Logger: logger})
	if err != nil {
		return err
	}

	var played time.Duration
	for _, f := range frames {
		played += f.Delta
	}

	out := cmd.OutOrStdout()
	snap := res.Snapshot
	fmt.Fprintf(out, "Run %s\n", run.ID)
	fmt.Fprintf(out, "  Recorded: %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "  Ticks:    %d (%s of play)\n", res.Ticks, played.Round(time.Millisecond))
	fmt.Fprintf(out, "  Games:    %d\n", res.Games)
	fmt.Fprintf(out, "  Level:    %d\n", snap.Level)
	fmt.Fprintf(out, "  Points:   %d\n", snap.Points)
	fmt.Fprintf(out, "  Over:     %v\n", snap.Over)
	fmt.Fprintf(out, "  Hash:     %016x\n", snap.Hash())

	if flagShow && res.Screen != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, res.Screen.String())
	}
	return nil
}

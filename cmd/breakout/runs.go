package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Display the most recent runs stored in the replay journal.

Examples:
  breakout runs
  breakout runs --limit 50
  breakout runs delete 3f2a`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.AddCommand(runsDeleteCmd)
}

func openJournal() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, errors.New("no journal: --db is empty")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening replay journal: %w", err)
	}
	return store, nil
}

func runRuns(cmd *cobra.Command, _ []string) error {
	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'breakout play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-8s  %-16s  %-20s  %-4s  %s\n", "ID", "Date", "Seed", "FPS", "Ticks")
	fmt.Fprintf(out, "  %-8s  %-16s  %-20s  %-4s  %s\n", "--", "----", "----", "---", "-----")

	for _, run := range runs {
		fmt.Fprintf(out, "  %-8s  %-16s  %-20d  %-4d  %d\n",
			shortID(run.ID),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Seed,
			run.TickRate,
			run.Frames,
		)
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.RunByID(args[0])
	if err != nil {
		return err
	}
	if err := store.DeleteRun(run.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s (%d ticks)\n", run.ID, run.Frames)
	return nil
}

// shortID returns the prefix shown in listings; any unique prefix selects a run.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

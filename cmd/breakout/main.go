// breakout is the classic brick breaker for the terminal, a desktop window
// or SSH, with replayable recorded runs.
//
// Usage:
//
//	breakout play            - Play in the terminal
//	breakout window          - Play in a desktop window
//	breakout serve           - Start SSH server for remote play
//	breakout runs            - List recorded runs
//	breakout replay <id>     - Re-simulate a recorded run
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config, 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set journal path (default: ~/.arcade/breakout.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <name>   - Apply a preset: easy, normal, hard, fixed
//	--log <path>          - Write debug logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - break bricks in your terminal",
	Long: `Breakout bounces a ball off a paddle to clear rows of bricks.
Every cleared level adds a row and a column, shrinks the ball and the
paddle and speeds both up.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  runs     - List or delete recorded runs
  replay   - Re-simulate a recorded run

Examples:
  breakout play
  breakout play --difficulty hard --seed 42
  breakout window
  breakout serve --ssh :2222
  breakout replay 3f2a`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the replay journal (empty disables recording)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadGameConfig resolves the game config from --config, --difficulty and --fps.
func loadGameConfig() (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyBreakoutPreset(&cfg, preset)
	if flagFPS > 0 {
		cfg.Scheduler.FPS = flagFPS
	}
	return cfg, cfg.Validate()
}

// seed returns --seed, or a time based seed when it is unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger returns a logger writing to --log when set, else to fallback.
// Terminal sessions pass io.Discard since stderr is the game screen.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.NewWithOptions(fallback, log.Options{Prefix: "breakout"}), func() {}, nil
	}
	f, err := tea.LogToFile(flagLogPath, "breakout")
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "breakout",
	})
	return logger, func() { f.Close() }, nil
}

// openStore opens the journal, or returns nil when --db is empty.
// A journal that cannot be opened only disables recording.
func openStore(logger *log.Logger) *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay journal", "err", err)
		return nil
	}
	return store
}

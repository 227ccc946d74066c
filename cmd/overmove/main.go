// overmove is a terminal puzzle game: queue up to fifteen moves, then watch
// them play out against moving goal and hazard cells.
//
// Usage:
//
//	overmove list                       - List available levels
//	overmove play [level]               - Play from the menu, or a level directly
//	overmove run <level> --moves R,R,D  - Play a move queue headless
//	overmove solve <level>              - Run the auto-solver
//	overmove history [level]            - Show run and solve history
//	overmove serve                      - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default from config: 60)
//	--seed <value>      - Set RNG seed for reproducible solves
//	--db <path>         - Set database path (default: ~/.overmove/history.db)
//	--config <path>     - Use a specific config file
//	--levels <dir>      - Load levels from a directory instead of the built-in pack
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/overmove/internal/config"
	"github.com/vovakirdan/overmove/internal/games/overmove/levels"
	"github.com/vovakirdan/overmove/internal/platform/tui"
	"github.com/vovakirdan/overmove/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLevels   string
	flagLogLevel string

	// Set up by the root command before any subcommand runs
	logger *log.Logger
	cfg    config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "overmove",
	Short: "OverMove - plan your moves, then watch them play out",
	Long: `OverMove is a turn-based grid puzzle for the terminal.

Queue up to 15 moves, then run them. After each of your moves the goal
and the hazard cells step along their fixed paths. Reach the goal
without touching a hazard or leaving the grid.

Available commands:
  list     - Show all levels
  play     - Play from the level menu or a level directly
  run      - Play a move queue without the UI
  solve    - Run the auto-solver on a level
  history  - View run and solve history
  serve    - Start SSH server for remote play

Examples:
  overmove play
  overmove play 03
  overmove run 01 --moves R,R,D,D
  overmove solve 05 --attempts 5 --seed 42
  overmove serve --ssh :2222`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value, then time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DefaultDBPath(), "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level directory (default: built-in pack)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup builds the logger and loads the configuration, applying flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "overmove",
		Level:           level,
	})

	loaded, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		loaded.Display.TickRate = flagFPS
	}
	if flagLevels != "" {
		loaded.Levels.Dir = flagLevels
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger.Debug("config loaded", "source", source, "tick_rate", cfg.Display.TickRate)
	return nil
}

// levelLoader returns the loader for the configured level pack.
func levelLoader() *levels.Loader {
	if cfg.Levels.Dir != "" {
		return levels.NewLoader(cfg.Levels.Dir)
	}
	return levels.Builtin()
}

// loadLevels loads the whole level pack.
func loadLevels() ([]levels.Level, error) {
	lvls, err := levelLoader().LoadAll()
	if err != nil {
		return nil, err
	}
	logger.Debug("levels loaded", "count", len(lvls))
	return lvls, nil
}

// loadLevel loads a single level by ID.
func loadLevel(id string) (levels.Level, error) {
	level, err := levelLoader().LoadByID(id)
	if err != nil {
		return levels.Level{}, fmt.Errorf("%w\nRun 'overmove list' to see available levels", err)
	}
	return level, nil
}

// openStore opens the history database. History is optional for play,
// run and solve, so a failure is logged and nil returned.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// closeStore closes a store opened by openStore.
func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close history database", "error", err)
	}
}

// outputTheme honors NO_COLOR for command output.
func outputTheme() tui.Theme {
	if os.Getenv("NO_COLOR") != "" {
		return tui.MonochromeTheme()
	}
	return tui.DefaultTheme()
}

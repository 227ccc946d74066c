package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/overmove/internal/games/overmove"
	"github.com/vovakirdan/overmove/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play from the level menu, or a level directly",
	Long: `Start the level menu, or jump straight into a level.

Controls:
  Arrows     - Queue a move (up to 15)
  Backspace  - Remove the last queued move
  Enter      - Run the queued moves
  A          - Auto-solve into the memory row
  R          - Clear the queue and memory row
  B/Esc      - Back to the menu
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a screenshot

Examples:
  overmove play
  overmove play 03
  overmove play --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := cfg.Runtime(width, height, seed)

	store := openStore()
	defer closeStore(store)

	if len(args) == 0 {
		lvls, err := loadLevels()
		if err != nil {
			return err
		}
		return tui.RunSession(lvls, store, rc)
	}

	level, err := loadLevel(args[0])
	if err != nil {
		return err
	}

	var opts []overmove.Option
	if store != nil {
		opts = append(opts, overmove.WithRecorder(store))
	}
	logger.Info("starting level", "level", level.ID, "seed", seed)
	return tui.Run(overmove.New(level, opts...), rc)
}

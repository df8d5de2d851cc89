package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stack/internal/config"
	"github.com/vovakirdan/tui-stack/internal/games/tower"
	"github.com/vovakirdan/tui-stack/internal/platform/tui"
	"github.com/vovakirdan/tui-stack/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run at the chosen difficulty.

Controls:
  Space/Enter/Click - Drop the block (also starts and restarts)
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower blocks, a wider perfect-drop window
  normal - The classic tuning
  hard   - Faster blocks, a tight perfect-drop window
  fixed  - Blocks never speed up

Examples:
  stack play
  stack play --difficulty easy
  stack play --seed 42 --theme mono
  stack play --config ./my-stack.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}

	cfg, err := loadConfig(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	game, err := tower.New(cfg, preset)
	if err != nil {
		fail("invalid game config: %v", err)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	logger.Debug("starting run", "board", game.Board(), "theme", game.Theme())
	runErr := tui.Run(game, store, runtimeConfig(), tui.WithLogger(logger))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

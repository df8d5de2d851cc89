package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stack/internal/games/tower"
	"github.com/vovakirdan/tui-stack/internal/platform/tui"
	"github.com/vovakirdan/tui-stack/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a difficulty, Enter to play and Tab for
the scoreboard. After a game ends, Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select difficulty
  Tab          - Scoreboard
  Q            - Quit

Examples:
  stack menu
  stack menu --fps 30
  stack menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.RunSession(store, gameFactory(cfg), tower.BoardFor, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("%v", runErr)
	}
}

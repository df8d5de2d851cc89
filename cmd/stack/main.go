// stack is a block-stacking game for the terminal.
//
// Usage:
//
//	stack play              - Play a run at one difficulty
//	stack menu              - Pick a difficulty interactively
//	stack serve             - Start SSH server for remote play
//	stack scores [preset]   - Show high scores and recent runs
//	stack config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.stack/scores.db)
//	--theme <name>        - Override the color theme
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-stack/internal/config"
	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/games/tower"
	"github.com/vovakirdan/tui-stack/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagTheme    string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stack",
	Short: "Stack - drop blocks, build the tallest tower",
	Long: `Stack is a terminal take on the block-stacking arcade game.

A block slides back and forth above the tower. Drop it with Space: the
part hanging over the edge is chopped off and the next block is only as
big as what is left. Miss entirely and the run is over.

Available commands:
  play     - Play a run directly
  menu     - Difficulty picker with scoreboard
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  config   - Print the default configuration

Examples:
  stack play
  stack play --difficulty hard --theme neon
  stack menu
  stack serve --ssh :2222
  stack scores hard`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stack/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme: classic, pastel, neon, mono")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the root logger. Interactive commands pass io.Discard as
// the fallback because the alt screen owns the terminal; the server logs to
// stderr. The returned func closes the log file, if any.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, closer, nil
}

// loadConfig resolves the game config and applies the --theme override.
func loadConfig(path string) (config.StackConfig, error) {
	cfg, err := config.LoadStack(path)
	if err != nil {
		return cfg, err
	}
	if flagTheme != "" {
		cfg.Display.Theme = flagTheme
	}
	return cfg, nil
}

// gameFactory creates tower games from one loaded config.
func gameFactory(cfg config.StackConfig) tui.GameFactory {
	return func(preset config.DifficultyPreset) (tui.Game, error) {
		game, err := tower.New(cfg, preset)
		if err != nil {
			return nil, err
		}
		return game, nil
	}
}

// runtimeConfig sizes the screen from the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

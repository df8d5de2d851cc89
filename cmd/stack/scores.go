package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stack/internal/config"
	"github.com/vovakirdan/tui-stack/internal/games/tower"
	"github.com/vovakirdan/tui-stack/internal/storage"
)

var (
	flagClear  bool
	flagRecent int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 scores and the most recent runs for one
difficulty preset (default: normal).

Examples:
  stack scores
  stack scores hard
  stack scores easy --recent 20
  stack scores fixed --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs for the preset")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runScores(_ *cobra.Command, args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		fail("%v", err)
	}
	board := tower.BoardFor(preset)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(board); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Printf("Cleared scores for %s\n", preset)
		return
	}

	scores, err := store.TopScores(board, 10)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("High Scores - Stack (%s)", preset)))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'stack play --difficulty %s' to set the first high score!\n", preset)
		return
	}

	top := newTable("Rank", "Score", "Date")
	for i, entry := range scores {
		top.Row(strconv.Itoa(i+1), strconv.Itoa(entry.Score), entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println(top.Render())

	if stats, err := store.GetGameStats(board); err == nil {
		fmt.Println(dimStyle.Render(fmt.Sprintf("Best: %d   Games: %d   Average: %.1f",
			stats.HighScore, stats.GamesCount, stats.AvgScore)))
	}

	if flagRecent <= 0 {
		return
	}
	runs, err := store.RecentRuns(board, flagRecent)
	if err != nil {
		fail("retrieving runs: %v", err)
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Recent runs"))
	recent := newTable("Run", "Score", "Perfect", "Blocks", "Theme", "Time", "Date")
	for _, r := range runs {
		recent.Row(
			r.RunID[:8],
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Bonuses),
			strconv.Itoa(r.Blocks),
			r.Theme,
			r.Duration.Round(time.Second).String(),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(recent.Render())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

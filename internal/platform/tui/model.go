package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/storage"
)

// footerRows is the number of rows below the game screen.
const footerRows = 1

// Game is the contract between the platform and a game session.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, persistence and terminal output.
type Game interface {
	// ID returns a unique identifier for this game.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Board returns the leaderboard key runs are saved under.
	Board() string

	// Theme returns the name of the color theme in use.
	Theme() string

	// Reset discards the session and starts over with cfg.
	Reset(cfg core.RuntimeConfig)

	// Resize changes the screen size without touching the session.
	Resize(width, height int)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger used for persistence events.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithRenderer sets the lipgloss renderer, e.g. one bound to an SSH session.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) { m.renderer = NewScreenRenderer(r) }
}

// embedded makes Back return to the caller instead of quitting.
func embedded() ModelOption {
	return func(m *Model) { m.embedded = true }
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	renderer   *ScreenRenderer
	logger     *log.Logger
	best       int
	loop       uint64
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-footerRows)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		loop:       nextLoop(),
	}
	m.help.Width = cfg.ScreenW
	for _, opt := range opts {
		opt(&m)
	}
	if m.renderer == nil {
		m.renderer = NewScreenRenderer(nil)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	if store != nil {
		if best, err := store.HighScore(game.Board()); err == nil {
			m.best = best
		} else {
			m.logger.Warn("could not load high score", "board", game.Board(), "error", err)
		}
	}

	game.Reset(m.gameConfig())
	return m
}

// gameConfig is the runtime config minus the footer.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(1, cfg.ScreenH-footerRows)
	return cfg
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.inputFrame.Set(core.ActionCommit)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the session and only changes the screen size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height

	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)
	m.game.Resize(gc.ScreenW, gc.ScreenH)
	m.help.Width = msg.Width

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Summary != nil {
		m.recordRun(*result.Summary)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.loop)
}

// recordRun persists a finished run. Saving is best-effort; the game
// continues without storage.
func (m *Model) recordRun(sum core.RunSummary) {
	board := m.game.Board()
	m.logger.Debug("run ended", "board", board, "score", sum.Score, "bonuses", sum.Bonuses, "duration", sum.Duration)

	if sum.Score > m.best {
		m.best = sum.Score
	}
	if m.store == nil || sum.Score <= 0 {
		return
	}

	id, err := m.store.SaveRun(storage.RunRecord{
		RunID:    sum.RunID,
		Board:    board,
		Score:    sum.Score,
		Bonuses:  sum.Bonuses,
		Blocks:   sum.Blocks,
		Theme:    m.game.Theme(),
		Seed:     m.config.Seed,
		Duration: sum.Duration,
	})
	if err != nil {
		m.logger.Warn("could not save run", "board", board, "error", err)
		return
	}
	m.logger.Info("run saved", "run", id, "board", board, "score", sum.Score)
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".stack", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen) + "\n" + m.footer()
}

// footer renders the help bar with the best score on the right.
func (m Model) footer() string {
	dim := m.renderer.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	best := dim.Render(fmt.Sprintf("best %d ", m.best))
	helpView := m.help.View(m.keys)

	gap := m.config.ScreenW - lipgloss.Width(helpView) - lipgloss.Width(best)
	if gap < 1 {
		return helpView
	}
	return helpView + dim.Render(fmt.Sprintf("%*s", gap, "")) + best
}

// Best returns the best score on the game's board.
func (m Model) Best() int {
	return m.best
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // left click drops the block
	)

	_, err := p.Run()
	return err
}

package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stack/internal/config"
	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/storage"
)

// GameFactory creates a game session for a difficulty preset.
type GameFactory func(preset config.DifficultyPreset) (Game, error)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
)

// SessionModel manages the full flow: menu -> game -> menu, with the
// scoreboard reachable from the menu. It is the top-level model for both
// `stack menu` and SSH sessions.
type SessionModel struct {
	store    *storage.Store
	factory  GameFactory
	board    BoardFunc
	config   core.RuntimeConfig
	logger   *log.Logger
	renderer *lipgloss.Renderer

	screen     sessionScreen
	menu       MenuModel
	scoreboard ScoreboardModel
	gameModel  *Model
	errMsg     string
	quitting   bool
}

// NewSessionModel creates a session that starts at the menu.
func NewSessionModel(store *storage.Store, factory GameFactory, board BoardFunc, cfg core.RuntimeConfig, logger *log.Logger, renderer *lipgloss.Renderer) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:    store,
		factory:  factory,
		board:    board,
		config:   cfg,
		logger:   logger,
		renderer: renderer,
		menu:     NewMenuModel(store, board, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.store, m.board, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := m.factory(selected.Preset)
		if err != nil {
			m.logger.Error("could not create game", "preset", selected.Preset, "error", err)
			m.errMsg = err.Error()
			m.menu = NewMenuModel(m.store, m.board, m.config)
			return m, nil
		}

		gameModel := NewModel(game, m.store, m.config,
			WithLogger(m.logger),
			WithRenderer(m.renderer),
			embedded(),
		)
		m.gameModel = &gameModel
		m.screen = screenGame
		m.errMsg = ""
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.menu = NewMenuModel(m.store, m.board, m.config)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		// Rebuild the menu so best scores are current.
		m.menu = NewMenuModel(m.store, m.board, m.config)
		m.screen = screenMenu
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		view += "\n" + centerText(errStyle.Render(m.errMsg), m.config.ScreenW)
	}
	return view
}

// RunSession runs the menu/game/scoreboard flow as one program.
func RunSession(store *storage.Store, factory GameFactory, board BoardFunc, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewSessionModel(store, factory, board, cfg, logger, nil)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

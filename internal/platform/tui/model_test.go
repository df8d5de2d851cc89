package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stack/internal/config"
	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/storage"
)

// fakeGame records what the platform asks of it.
type fakeGame struct {
	board   string
	resets  int
	steps   int
	inputs  []core.InputFrame
	state   core.GameState
	summary *core.RunSummary // returned once by the next Step
	w, h    int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Board() string { return g.board }
func (g *fakeGame) Theme() string { return "classic" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.w, g.h = cfg.ScreenW, cfg.ScreenH
}

func (g *fakeGame) Resize(width, height int) { g.w, g.h = width, height }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.inputs = append(g.inputs, in.Clone())
	res := core.StepResult{State: g.state, Summary: g.summary}
	g.summary = nil
	return res
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake game")
}

func (g *fakeGame) State() core.GameState { return g.state }

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func tick(m Model) TickMsg {
	return TickMsg{Time: time.Now(), Loop: m.loop}
}

func TestModelResetsGameWithoutFooter(t *testing.T) {
	g := &fakeGame{board: "fake:normal"}
	NewModel(g, nil, testRuntime())

	if g.resets != 1 {
		t.Errorf("Expected one Reset, got %d", g.resets)
	}
	if g.w != 80 || g.h != 24-footerRows {
		t.Errorf("Game screen = %dx%d, want 80x%d", g.w, g.h, 24-footerRows)
	}
}

func TestModelForwardsInputOnTick(t *testing.T) {
	g := &fakeGame{board: "fake:normal"}
	m := NewModel(g, nil, testRuntime())

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, tick(m))
	m = update(t, m, tick(m))

	if g.steps != 2 {
		t.Fatalf("Expected 2 steps, got %d", g.steps)
	}
	if !g.inputs[0].Has(core.ActionCommit) {
		t.Error("First step should carry Commit")
	}
	if g.inputs[1].Has(core.ActionCommit) {
		t.Error("Input should be cleared after a tick")
	}
}

func TestModelMouseClickCommits(t *testing.T) {
	g := &fakeGame{board: "fake:normal"}
	m := NewModel(g, nil, testRuntime())

	m = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, tick(m))

	if !g.inputs[0].Has(core.ActionCommit) {
		t.Error("Left click should commit")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	g := &fakeGame{board: "fake:normal"}
	m := NewModel(g, nil, testRuntime())

	update(t, m, TickMsg{Time: time.Now(), Loop: m.loop + 1000})
	if g.steps != 0 {
		t.Error("A tick from another loop should be ignored")
	}
}

func TestModelSavesRunOnSummary(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{board: "fake:normal"}
	m := NewModel(g, store, testRuntime())

	g.summary = &core.RunSummary{RunID: "", Score: 9, Bonuses: 2, Blocks: 11, Duration: 5 * time.Second}
	m = update(t, m, tick(m))

	if m.Best() != 9 {
		t.Errorf("Best() = %d, want 9", m.Best())
	}
	runs, err := store.RecentRuns("fake:normal", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Score != 9 || runs[0].Bonuses != 2 || runs[0].Seed != 7 || runs[0].Theme != "classic" {
		t.Errorf("Unexpected run: %+v", runs[0])
	}

	// Zero-score runs are not persisted.
	g.summary = &core.RunSummary{Score: 0}
	update(t, m, tick(m))
	runs, _ = store.RecentRuns("fake:normal", 10)
	if len(runs) != 1 {
		t.Errorf("Zero-score run should not be saved, got %d runs", len(runs))
	}
}

func TestModelLoadsBestScore(t *testing.T) {
	store := openStore(t)
	store.SaveScore("fake:hard", 33)

	m := NewModel(&fakeGame{board: "fake:hard"}, store, testRuntime())
	if m.Best() != 33 {
		t.Errorf("Best() = %d, want 33", m.Best())
	}
	if !strings.Contains(m.View(), "best 33") {
		t.Error("Footer should show the best score")
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	g := &fakeGame{board: "fake:normal"}
	m := NewModel(g, nil, testRuntime(), embedded())
	esc := tea.KeyMsg{Type: tea.KeyEscape}

	m = update(t, m, esc)
	if m.BackToMenu() {
		t.Fatal("Back should be ignored during a run")
	}

	g.state.GameOver = true
	m = update(t, m, tick(m))
	m = update(t, m, esc)
	if !m.BackToMenu() {
		t.Error("Back should return to the menu after game over")
	}
	if m.IsQuitting() {
		t.Error("Embedded model should not quit on Back")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{board: "fake:normal"}, nil, testRuntime())
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("Quitting model should render nothing")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	g := &fakeGame{board: "fake:normal"}
	m := NewModel(g, nil, testRuntime())

	update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != 1 {
		t.Error("Resize should not reset the game")
	}
	if g.w != 120 || g.h != 40-footerRows {
		t.Errorf("Game size = %dx%d, want 120x%d", g.w, g.h, 40-footerRows)
	}
}

func testBoard(p config.DifficultyPreset) string { return "fake:" + string(p) }

func TestSessionFlow(t *testing.T) {
	var created []config.DifficultyPreset
	factory := func(p config.DifficultyPreset) (Game, error) {
		created = append(created, p)
		return &fakeGame{board: testBoard(p)}, nil
	}

	s := NewSessionModel(nil, factory, testBoard, testRuntime(), nil, nil)
	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	if !strings.Contains(s.View(), "Choose a difficulty") {
		t.Fatal("Session should start at the menu")
	}

	// Menu starts on normal; move down to hard and select.
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame {
		t.Fatalf("Expected game screen, got %v", s.screen)
	}
	if len(created) != 1 || created[0] != config.DifficultyHard {
		t.Fatalf("Factory calls = %v, want [hard]", created)
	}

	// End the run and go back.
	s.gameModel.game.(*fakeGame).state.GameOver = true
	step(tick(*s.gameModel))
	step(tea.KeyMsg{Type: tea.KeyEscape})
	if s.screen != screenMenu {
		t.Fatalf("Expected menu after Back, got %v", s.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("Expected scoreboard, got %v", s.screen)
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Error("Scoreboard view missing title")
	}

	step(tea.KeyMsg{Type: tea.KeyEscape})
	if s.screen != screenMenu {
		t.Fatalf("Expected menu after leaving scoreboard, got %v", s.screen)
	}
}

func TestSessionFactoryError(t *testing.T) {
	factory := func(config.DifficultyPreset) (Game, error) {
		return nil, errors.New("broken config")
	}
	s := NewSessionModel(nil, factory, testBoard, testRuntime(), nil, nil)

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)

	if s.screen != screenMenu {
		t.Error("Session should stay on the menu when the game cannot be created")
	}
	if !strings.Contains(s.View(), "broken config") {
		t.Error("Menu should show the error")
	}
}

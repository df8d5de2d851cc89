// Package tower implements the block-stacking game on top of the sim engine.
// A block slides back and forth above the stack; the player locks it in
// place and whatever overhangs the block below is cut away.
package tower

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-stack/internal/config"
	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/games/tower/sim"
)

// ID is the game identifier used for leaderboards.
const ID = "tower"

// flashDuration is how long the PERFECT banner stays up.
const flashDuration = 600 * time.Millisecond

// Game adapts sim.Engine to the platform's tick/render contract.
type Game struct {
	cfg    config.StackConfig
	preset config.DifficultyPreset
	params sim.Params

	engine  *sim.Engine
	debris  *Debris
	runtime core.RuntimeConfig

	paused     bool
	flashTicks int
	lastRunID  string
}

// New creates a game from a loaded config with the preset applied on top.
func New(cfg config.StackConfig, preset config.DifficultyPreset) (*Game, error) {
	if preset == "" {
		preset = config.DifficultyNormal
	}
	config.ApplyPreset(&cfg, preset)

	params, err := cfg.ToParams()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		preset: preset,
		params: params,
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Stack"
}

// Board returns the leaderboard key, one per difficulty preset.
func (g *Game) Board() string {
	return BoardFor(g.preset)
}

// BoardFor returns the leaderboard key of a preset.
func BoardFor(preset config.DifficultyPreset) string {
	return ID + ":" + string(preset)
}

// Preset returns the difficulty preset in use.
func (g *Game) Preset() config.DifficultyPreset {
	return g.preset
}

// Theme returns the name of the color theme in use.
func (g *Game) Theme() string {
	return g.params.Theme.Name
}

// Reset discards the session and starts a new engine with cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.engine = sim.New(g.params, cfg.Seed)
	g.engine.Load()
	g.debris = NewDebris(g.cfg.Debris)
	g.paused = false
	g.flashTicks = 0
	g.lastRunID = ""
}

// Resize updates the screen size without touching the session.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.engine.State() == sim.StatePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var summary *core.RunSummary
	handle := func(events []sim.Event) {
		if s := g.handle(events); s != nil {
			summary = s
		}
	}

	if in.Has(core.ActionCommit) {
		handle(g.engine.Commit().Events)
	} else if in.Has(core.ActionRestart) {
		handle(g.engine.Restart().Events)
	}

	tick := g.engine.Tick(g.runtime.TickMillis())
	handle(tick.Events)

	g.debris.Step(g.floorY())
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	return core.StepResult{State: g.State(), Summary: summary}
}

// handle applies engine events to the presentation state and returns a
// summary if the run ended.
func (g *Game) handle(events []sim.Event) *core.RunSummary {
	var summary *core.RunSummary
	for _, ev := range events {
		switch e := ev.(type) {
		case sim.Placed:
			if e.Result.Chopped != nil {
				g.debris.Add(*e.Result.Chopped, e.Result.Axis, e.Result.Direction)
			}
			if e.Result.Bonus {
				g.flashTicks = int(math.Ceil(float64(flashDuration.Milliseconds()) / g.runtime.TickMillis()))
			}
		case sim.RunEnded:
			g.lastRunID = uuid.NewString()
			summary = &core.RunSummary{
				RunID:    g.lastRunID,
				Score:    e.FinalScore,
				Bonuses:  e.Bonuses,
				Blocks:   e.Blocks,
				Duration: time.Duration(e.Duration * float64(time.Millisecond)),
			}
		case sim.RunReset:
			g.debris.Clear()
			g.flashTicks = 0
		}
	}
	return summary
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.State() == sim.StateEnded,
		Paused:   g.paused,
	}
}

// RunState returns the engine's run state.
func (g *Game) RunState() sim.RunState {
	return g.engine.State()
}

// LastRunID returns the ID assigned to the most recently finished run.
func (g *Game) LastRunID() string {
	return g.lastRunID
}

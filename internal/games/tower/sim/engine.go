// Package sim is the block-stacking simulation: block motion, the
// overlap/cut placement algorithm, the run state machine and the follow
// camera. It has no I/O and no wall clock; the host drives it with Tick and
// Commit from a single goroutine.
package sim

import (
	"math"
	"math/rand"
)

// Engine owns one play session. It is not safe for concurrent use.
type Engine struct {
	params Params
	rng    *rand.Rand

	state  RunState
	stack  *Stack
	camera Camera

	now      float64 // engine clock, ms
	resetAt  float64
	runStart float64
	score    int
	bonuses  int
}

// New creates an engine in the LOADING state.
func New(p Params, seed int64) *Engine {
	return &Engine{
		params: p,
		rng:    rand.New(rand.NewSource(seed)),
		state:  StateLoading,
		stack:  NewStack(),
		camera: NewCamera(p.CameraBase),
	}
}

// Load finishes LOADING: the foundation is spawned and the engine is READY.
// Calling it in any other state does nothing.
func (e *Engine) Load() []Event {
	if e.state != StateLoading {
		return nil
	}
	var ev []Event
	e.spawnFoundation(&ev)
	e.camera.Reset(e.cameraTarget())
	e.setState(StateReady, &ev)
	return ev
}

// Tick advances the clock by dtMs, moves the active block one step, updates
// the camera and fires the deferred reset when it is due.
func (e *Engine) Tick(dtMs float64) TickResult {
	if dtMs < 0 || math.IsNaN(dtMs) {
		dtMs = 0
	}
	e.now += dtMs
	e.camera.Update(e.now)

	var ev []Event
	switch e.state {
	case StatePlaying:
		if b := e.stack.Active(); b != nil {
			b.Advance(e.params.MoveAmount)
		}
	case StateResetting:
		if e.now >= e.resetAt {
			e.spawnFoundation(&ev)
			e.setState(StateReady, &ev)
		}
	}

	return TickResult{Events: ev, Now: e.now, CameraY: e.camera.Y()}
}

// Commit handles the single player action according to the run state.
func (e *Engine) Commit() CommitResult {
	var ev []Event
	switch e.state {
	case StateReady:
		e.startRun(&ev)
	case StatePlaying:
		e.placeTop(&ev)
	case StateEnded:
		e.beginReset(&ev)
	default:
		return CommitResult{Ignored: true}
	}
	return CommitResult{Events: ev}
}

// Restart requests a fresh run from ENDED or READY.
func (e *Engine) Restart() CommitResult {
	if e.state != StateEnded && e.state != StateReady {
		return CommitResult{Ignored: true}
	}
	var ev []Event
	e.beginReset(&ev)
	return CommitResult{Events: ev}
}

func (e *Engine) startRun(ev *[]Event) {
	e.setState(StatePlaying, ev)
	e.score = 0
	e.bonuses = 0
	e.runStart = e.now
	*ev = append(*ev, ScoreChanged{Score: 0})

	if e.stack.Len() == 0 {
		e.spawnFoundation(ev)
	}
	e.appendNext(ev)
}

func (e *Engine) placeTop(ev *[]Event) {
	top := e.stack.Top()
	if top == nil {
		return
	}
	if top.State == BlockMissed {
		e.endRun(ev)
		return
	}

	res, err := top.Place(e.stack.Predecessor(top), e.params.BonusThreshold)
	if err != nil {
		// Top already settled; fall through to the append step.
		e.appendNext(ev)
		return
	}

	e.colorize(&res, top.ColorSeed)
	if res.Bonus {
		e.bonuses++
	}
	*ev = append(*ev, Placed{Result: res})
	e.appendNext(ev)
}

// appendNext adds the next moving block, or ends the run if the top missed.
func (e *Engine) appendNext(ev *[]Event) {
	top := e.stack.Top()
	if top == nil {
		return
	}
	if top.State == BlockMissed {
		e.endRun(ev)
		return
	}

	next := NewBlock(top, e.params, e.rng.Intn(2) == 0)
	if err := e.stack.Append(next); err != nil {
		return
	}

	e.score = e.stack.Score()
	*ev = append(*ev,
		BlockSpawned{Geometry: e.GeometryOf(*next), Axis: next.Axis},
		ScoreChanged{Score: e.score},
	)
	e.camera.Start(e.cameraTarget(), e.now, e.params.CameraDuration)
}

func (e *Engine) endRun(ev *[]Event) {
	e.score = e.stack.Score()
	e.setState(StateEnded, ev)
	*ev = append(*ev, RunEnded{
		FinalScore: e.score,
		Bonuses:    e.bonuses,
		Blocks:     e.stack.Len(),
		Duration:   e.now - e.runStart,
	})
}

func (e *Engine) beginReset(ev *[]Event) {
	disposed := e.stack.Clear()
	e.score = 0
	e.bonuses = 0

	delay := e.params.SettleDelay + e.params.SettlePerBlock*float64(disposed)
	e.resetAt = e.now + delay
	e.camera.Start(e.params.CameraBase+e.params.BlockSize.Y, e.now, delay)

	e.setState(StateResetting, ev)
	*ev = append(*ev, RunReset{Disposed: disposed}, ScoreChanged{Score: 0})
}

func (e *Engine) spawnFoundation(ev *[]Event) {
	f := NewFoundation(e.params.BlockSize, e.rng.Intn(100))
	if err := e.stack.Append(f); err != nil {
		return
	}
	*ev = append(*ev, BlockSpawned{Geometry: e.GeometryOf(*f), Axis: f.Axis})
	e.camera.Start(e.cameraTarget(), e.now, e.params.CameraDuration)
}

func (e *Engine) setState(to RunState, ev *[]Event) {
	if e.state == to {
		return
	}
	*ev = append(*ev, StateChanged{From: e.state, To: to})
	e.state = to
}

func (e *Engine) cameraTarget() float64 {
	return e.params.CameraBase + float64(e.stack.Len())*e.params.BlockSize.Y
}

func (e *Engine) colorize(res *PlacementResult, seed int) {
	c := ColorFor(res.Index, seed, e.params.Theme)
	if res.Placed != nil {
		res.Placed.Color = c
	}
	if res.Chopped != nil {
		res.Chopped.Color = c
	}
}

// GeometryOf returns the colored descriptor of b.
func (e *Engine) GeometryOf(b Block) Geometry {
	g := b.Geometry()
	g.Color = ColorFor(b.Index, b.ColorSeed, e.params.Theme)
	return g
}

// State returns the run state.
func (e *Engine) State() RunState { return e.state }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Bonuses returns the number of bonus placements in the current run.
func (e *Engine) Bonuses() int { return e.bonuses }

// Now returns the engine clock in milliseconds.
func (e *Engine) Now() float64 { return e.now }

// CameraY returns the current camera height.
func (e *Engine) CameraY() float64 { return e.camera.Y() }

// Params returns the tuning in use.
func (e *Engine) Params() Params { return e.params }

// Blocks returns a copy of the stack, bottom first.
func (e *Engine) Blocks() []Block { return e.stack.Blocks() }

// ResetDeadline returns the engine time at which RESETTING returns to READY.
func (e *Engine) ResetDeadline() float64 { return e.resetAt }

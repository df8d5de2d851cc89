package sim

// Event is emitted by Engine.Tick and Engine.Commit for downstream consumers
// (renderer, score display, persistence).
type Event interface {
	simEvent()
}

// ScoreChanged is emitted after every successful append and on reset.
type ScoreChanged struct {
	Score int
}

func (ScoreChanged) simEvent() {}

// RunEnded is emitted once when a run ends.
type RunEnded struct {
	FinalScore int
	Bonuses    int
	Blocks     int
	Duration   float64 // engine milliseconds from start to end
}

func (RunEnded) simEvent() {}

// Placed carries the result of a committed block.
type Placed struct {
	Result PlacementResult
}

func (Placed) simEvent() {}

// BlockSpawned is emitted when a block joins the stack.
type BlockSpawned struct {
	Geometry Geometry
	Axis     Axis
}

func (BlockSpawned) simEvent() {}

// StateChanged is emitted on every run state transition.
type StateChanged struct {
	From, To RunState
}

func (StateChanged) simEvent() {}

// RunReset is emitted when the stack is disposed for a new run.
type RunReset struct {
	Disposed int
}

func (RunReset) simEvent() {}

// TickResult contains everything that happened during one Tick.
type TickResult struct {
	Events  []Event
	Now     float64
	CameraY float64
}

// CommitResult contains everything that happened during one Commit.
// Ignored is set when the current state does not accept commits.
type CommitResult struct {
	Events  []Event
	Ignored bool
}

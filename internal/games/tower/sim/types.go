package sim

import "github.com/vovakirdan/tui-stack/internal/core"

// Axis is the horizontal axis a block slides along.
type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

// AxisFor returns the working axis for a block index: odd indices move on X,
// even indices on Z.
func AxisFor(index int) Axis {
	if index%2 != 0 {
		return AxisX
	}
	return AxisZ
}

// Of returns the component of v along the axis.
// Applied to a size this is the axis extent (width for X, depth for Z).
func (a Axis) Of(v core.Vec3) float64 {
	if a == AxisX {
		return v.X
	}
	return v.Z
}

// Set overwrites the component of v along the axis.
func (a Axis) Set(v *core.Vec3, val float64) {
	if a == AxisX {
		v.X = val
		return
	}
	v.Z = val
}

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "z"
}

// BlockState is the lifecycle tag of a block.
type BlockState int

const (
	BlockActive  BlockState = iota // sliding, waiting for a commit
	BlockStopped                   // placed, terminal
	BlockMissed                    // committed with no overlap, terminal
)

func (s BlockState) String() string {
	switch s {
	case BlockActive:
		return "active"
	case BlockStopped:
		return "stopped"
	case BlockMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// RunState is the state of the run-level state machine.
type RunState int

const (
	StateLoading RunState = iota
	StateReady
	StatePlaying
	StateEnded
	StateResetting
)

func (s RunState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	case StateResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Geometry is a plain size+center descriptor handed to the render layer.
type Geometry struct {
	Index  int
	Size   core.Vec3
	Center core.Vec3
	Color  core.Color
}

// Min returns the lowest corner of the box.
func (g Geometry) Min() core.Vec3 {
	return g.Center.Sub(g.Size.Scale(0.5))
}

// Max returns the highest corner of the box.
func (g Geometry) Max() core.Vec3 {
	return g.Center.Add(g.Size.Scale(0.5))
}

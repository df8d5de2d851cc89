package sim

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-stack/internal/core"
)

// ErrNotActive is returned when placing a block that is no longer moving.
var ErrNotActive = errors.New("sim: block is not active")

// Block is one slab of the tower. The block below it is never referenced
// directly; it is looked up in the Stack by index when needed.
type Block struct {
	Index     int
	Axis      Axis
	Size      core.Vec3
	Center    core.Vec3
	State     BlockState
	Velocity  float64 // signed travel per tick
	Speed     float64 // base speed, always negative
	ColorSeed int
}

// NewFoundation creates the immovable bottom block, centered on the origin.
func NewFoundation(size core.Vec3, colorSeed int) *Block {
	return &Block{
		Index:     1,
		Axis:      AxisFor(1),
		Size:      size,
		Center:    core.V3(0, size.Y, 0),
		State:     BlockStopped,
		ColorSeed: colorSeed,
	}
}

// NewBlock creates the next moving block on top of prev. It inherits the
// footprint and color seed of prev and enters at the positive or negative
// edge of the oscillation range.
func NewBlock(prev *Block, p Params, fromPositive bool) *Block {
	index := prev.Index + 1
	b := &Block{
		Index:     index,
		Axis:      AxisFor(index),
		Size:      prev.Size,
		Center:    core.V3(prev.Center.X, prev.Size.Y*float64(index), prev.Center.Z),
		State:     BlockActive,
		Speed:     p.SpeedFor(index),
		ColorSeed: prev.ColorSeed,
	}

	start := p.MoveAmount
	if !fromPositive {
		start = -start
	}
	b.Axis.Set(&b.Center, start)
	b.Velocity = b.Speed
	return b
}

// Position returns the block center along its working axis.
func (b *Block) Position() float64 {
	return b.Axis.Of(b.Center)
}

// Extent returns the block size along its working axis.
func (b *Block) Extent() float64 {
	return b.Axis.Of(b.Size)
}

// Advance moves an active block by one tick and bounces it off the edges of
// [-moveAmount, moveAmount]. Inactive blocks are left untouched.
func (b *Block) Advance(moveAmount float64) {
	if b.State != BlockActive {
		return
	}

	pos := b.Position() + b.Velocity
	b.Axis.Set(&b.Center, pos)

	// Only an outward-moving block flips, so a crossing flips exactly once
	// even if the next tick still sits on the boundary.
	if math.Abs(pos) >= moveAmount && (pos > 0) == (b.Velocity > 0) {
		b.reverseDirection()
	}
}

func (b *Block) reverseDirection() {
	if b.Velocity > 0 {
		b.Velocity = b.Speed
	} else {
		b.Velocity = math.Abs(b.Speed)
	}
}

// Direction returns the sign of the current velocity.
func (b *Block) Direction() int {
	if b.Velocity < 0 {
		return -1
	}
	return 1
}

// Place commits the block against pred (nil for the foundation).
// It must only be called while the block is active.
func (b *Block) Place(pred *Block, bonusThreshold float64) (PlacementResult, error) {
	return Place(b, pred, bonusThreshold)
}

// Geometry returns the uncolored descriptor of the block as it stands.
func (b *Block) Geometry() Geometry {
	return Geometry{Index: b.Index, Size: b.Size, Center: b.Center}
}

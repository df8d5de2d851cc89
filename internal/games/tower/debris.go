package tower

import (
	"github.com/vovakirdan/tui-stack/internal/config"
	"github.com/vovakirdan/tui-stack/internal/games/tower/sim"
)

// piece is a chopped slice falling out of the stack.
type piece struct {
	geom  sim.Geometry
	drift float64 // horizontal travel per tick along axis
	axis  sim.Axis
	vy    float64
	age   int
}

// Debris animates chopped slices. It only affects rendering.
type Debris struct {
	cfg    config.DebrisConfig
	pieces []piece
}

// NewDebris creates an empty debris field.
func NewDebris(cfg config.DebrisConfig) *Debris {
	return &Debris{cfg: cfg}
}

// Add drops a chopped slice. direction is the sign of the block's velocity
// when it was placed; the slice keeps drifting that way.
func (d *Debris) Add(g sim.Geometry, axis sim.Axis, direction int) {
	if !d.cfg.Enabled {
		return
	}
	d.pieces = append(d.pieces, piece{
		geom:  g,
		axis:  axis,
		drift: 0.05 * float64(direction),
	})
}

// Step advances every piece by one tick and drops those that fell below
// floor or outlived MaxTicks.
func (d *Debris) Step(floor float64) {
	kept := d.pieces[:0]
	for _, p := range d.pieces {
		p.age++
		p.vy += d.cfg.Gravity
		p.geom.Center.Y -= p.vy
		p.axis.Set(&p.geom.Center, p.axis.Of(p.geom.Center)+p.drift)

		if p.age > d.cfg.MaxTicks || p.geom.Max().Y < floor {
			continue
		}
		kept = append(kept, p)
	}
	d.pieces = kept
}

// Clear removes every piece.
func (d *Debris) Clear() {
	d.pieces = d.pieces[:0]
}

// Len returns the number of falling pieces.
func (d *Debris) Len() int {
	return len(d.pieces)
}

// Pieces returns the current geometry of every piece.
func (d *Debris) Pieces() []sim.Geometry {
	out := make([]sim.Geometry, len(d.pieces))
	for i, p := range d.pieces {
		out[i] = p.geom
	}
	return out
}

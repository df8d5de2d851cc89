package tower

// BlockSnapshot is the primitive state of one block.
type BlockSnapshot struct {
	Index    int
	Axis     string
	State    string
	X, Y, Z  float64
	W, H, D  float64
	ColorHex string
}

// Snapshot captures the observable state of a session. Two sessions with the
// same seed and input produce equal snapshots.
type Snapshot struct {
	RunState string
	Score    int
	Bonuses  int
	Paused   bool
	Now      float64
	CameraY  float64
	Blocks   []BlockSnapshot
	Debris   int
}

// Snapshot returns the current state as plain values.
func (g *Game) Snapshot() Snapshot {
	blocks := g.engine.Blocks()
	s := Snapshot{
		RunState: g.engine.State().String(),
		Score:    g.engine.Score(),
		Bonuses:  g.engine.Bonuses(),
		Paused:   g.paused,
		Now:      g.engine.Now(),
		CameraY:  g.engine.CameraY(),
		Blocks:   make([]BlockSnapshot, 0, len(blocks)),
		Debris:   g.debris.Len(),
	}
	for _, b := range blocks {
		geom := g.engine.GeometryOf(b)
		s.Blocks = append(s.Blocks, BlockSnapshot{
			Index:    b.Index,
			Axis:     b.Axis.String(),
			State:    b.State.String(),
			X:        b.Center.X,
			Y:        b.Center.Y,
			Z:        b.Center.Z,
			W:        b.Size.X,
			H:        b.Size.Y,
			D:        b.Size.Z,
			ColorHex: geom.Color.Hex(),
		})
	}
	return s
}

package sim

import "math"

// PlacementResult describes the outcome of committing a block.
type PlacementResult struct {
	Index     int
	Axis      Axis
	Direction int       // sign of the velocity at commit time
	Placed    *Geometry // nil on a miss
	Chopped   *Geometry // the trimmed-off slice, nil on a miss or bonus
	Bonus     bool
	Missed    bool
}

// Overlap returns the 1-D intersection length of b and pred along b's axis.
// A result <= 0 means the blocks do not overlap.
func Overlap(b, pred *Block) float64 {
	axis := b.Axis
	return axis.Of(pred.Size) - math.Abs(axis.Of(b.Center)-axis.Of(pred.Center))
}

// Place runs the overlap/cut algorithm for b resting on pred and mutates b
// into the placed remainder. pred is nil only for the foundation, which is
// placed whole.
func Place(b, pred *Block, bonusThreshold float64) (PlacementResult, error) {
	if b.State != BlockActive {
		return PlacementResult{}, ErrNotActive
	}

	res := PlacementResult{
		Index:     b.Index,
		Axis:      b.Axis,
		Direction: b.Direction(),
	}

	if pred == nil {
		b.State = BlockStopped
		placed := b.Geometry()
		res.Placed = &placed
		return res, nil
	}

	axis := b.Axis
	overlap := Overlap(b, pred)

	// An exact edge touch (overlap == 0) is a miss.
	if overlap <= 0 {
		b.State = BlockMissed
		res.Missed = true
		return res, nil
	}

	extent := b.Extent()
	if extent-overlap < bonusThreshold {
		b.Center.X = pred.Center.X
		b.Center.Z = pred.Center.Z
		b.Size.X = pred.Size.X
		b.Size.Z = pred.Size.Z
		b.State = BlockStopped

		placed := b.Geometry()
		res.Placed = &placed
		res.Bonus = true
		return res, nil
	}

	bPos, pPos := b.Position(), axis.Of(pred.Center)
	pExtent := axis.Of(pred.Size)
	lo := math.Max(pPos-pExtent/2, bPos-extent/2)
	hi := math.Min(pPos+pExtent/2, bPos+extent/2)

	chopExtent := extent - overlap
	chopPos := lo - chopExtent/2
	if bPos > pPos {
		chopPos = hi + chopExtent/2
	}

	chopped := b.Geometry()
	axis.Set(&chopped.Size, chopExtent)
	axis.Set(&chopped.Center, chopPos)

	axis.Set(&b.Size, overlap)
	axis.Set(&b.Center, (lo+hi)/2)
	b.State = BlockStopped

	placed := b.Geometry()
	res.Placed = &placed
	res.Chopped = &chopped
	return res, nil
}

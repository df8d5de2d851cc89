package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stack/internal/core"
)

const eps = 1e-9

// movingOn builds an active block resting on pred, sliding on the axis its
// index implies, positioned at pos.
func movingOn(pred *Block, index int, pos float64) *Block {
	b := &Block{
		Index:    index,
		Axis:     AxisFor(index),
		Size:     pred.Size,
		Center:   core.V3(pred.Center.X, pred.Size.Y*float64(index), pred.Center.Z),
		State:    BlockActive,
		Speed:    -0.1,
		Velocity: -0.1,
	}
	b.Axis.Set(&b.Center, pos)
	return b
}

func basePlate() *Block {
	return &Block{
		Index:  2,
		Axis:   AxisFor(2),
		Size:   core.V3(10, 2, 10),
		Center: core.V3(0, 0, 0),
		State:  BlockStopped,
	}
}

func TestPlaceTrimFromPositiveSide(t *testing.T) {
	pred := basePlate()
	b := movingOn(pred, 3, 4) // odd index slides on X

	assert.InDelta(t, 6, Overlap(b, pred), eps)

	res, err := Place(b, pred, 0.3)
	require.NoError(t, err)

	assert.False(t, res.Missed)
	assert.False(t, res.Bonus)
	assert.Equal(t, AxisX, res.Axis)
	assert.Equal(t, -1, res.Direction)
	assert.Equal(t, BlockStopped, b.State)

	require.NotNil(t, res.Placed)
	assert.InDelta(t, 6, res.Placed.Size.X, eps)
	assert.InDelta(t, 2, res.Placed.Center.X, eps)
	assert.Equal(t, 10.0, res.Placed.Size.Z, "off-axis extent is untouched")

	require.NotNil(t, res.Chopped)
	assert.InDelta(t, 4, res.Chopped.Size.X, eps)
	assert.InDelta(t, 7, res.Chopped.Center.X, eps)
	assert.Equal(t, res.Placed.Center.Y, res.Chopped.Center.Y)

	// The block itself became the placed remainder.
	assert.Equal(t, res.Placed.Size, b.Size)
	assert.Equal(t, res.Placed.Center, b.Center)
}

func TestPlaceTrimFromNegativeSide(t *testing.T) {
	pred := basePlate()
	b := movingOn(pred, 3, -4)

	res, err := Place(b, pred, 0.3)
	require.NoError(t, err)

	assert.InDelta(t, 6, res.Placed.Size.X, eps)
	assert.InDelta(t, -2, res.Placed.Center.X, eps)
	assert.InDelta(t, 4, res.Chopped.Size.X, eps)
	assert.InDelta(t, -7, res.Chopped.Center.X, eps)
}

func TestPlaceTrimOnZAxis(t *testing.T) {
	pred := basePlate()
	pred.Center = core.V3(1, 2, -1)
	b := movingOn(pred, 4, 2) // even index slides on Z

	res, err := Place(b, pred, 0.3)
	require.NoError(t, err)

	assert.Equal(t, AxisZ, res.Axis)
	assert.InDelta(t, 7, res.Placed.Size.Z, eps)
	assert.InDelta(t, 0.5, res.Placed.Center.Z, eps)
	assert.Equal(t, 1.0, res.Placed.Center.X)
	assert.InDelta(t, 3, res.Chopped.Size.Z, eps)
	assert.InDelta(t, 5.5, res.Chopped.Center.Z, eps)
}

func TestPlacePiecesTileTheOriginalBlock(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		pred := basePlate()
		pos := (rng.Float64()*2 - 1) * 9.5
		b := movingOn(pred, 3, pos)
		origMin, origMax := pos-5, pos+5

		res, err := Place(b, pred, 0.3)
		require.NoError(t, err)
		if res.Bonus {
			continue
		}

		placed, chopped := res.Placed, res.Chopped
		require.NotNil(t, chopped)
		assert.InDelta(t, 10, placed.Size.X+chopped.Size.X, 1e-6)

		lo := min(placed.Min().X, chopped.Min().X)
		hi := max(placed.Max().X, chopped.Max().X)
		assert.InDelta(t, origMin, lo, 1e-6, "pos %v", pos)
		assert.InDelta(t, origMax, hi, 1e-6, "pos %v", pos)

		// Placed part lies entirely over the predecessor.
		assert.GreaterOrEqual(t, placed.Min().X, -5-1e-6)
		assert.LessOrEqual(t, placed.Max().X, 5+1e-6)
	}
}

func TestPlaceMiss(t *testing.T) {
	tests := []struct {
		name string
		pos  float64
		miss bool
	}{
		{"clear miss right", 11, true},
		{"clear miss left", -11, true},
		{"exact edge touch", 10, true},
		{"sliver of overlap", 9.99, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pred := basePlate()
			b := movingOn(pred, 3, tc.pos)

			res, err := Place(b, pred, 0.3)
			require.NoError(t, err)

			assert.Equal(t, tc.miss, res.Missed)
			if tc.miss {
				assert.Equal(t, BlockMissed, b.State)
				assert.Nil(t, res.Placed)
				assert.Nil(t, res.Chopped)
			} else {
				assert.Equal(t, BlockStopped, b.State)
				assert.NotNil(t, res.Placed)
			}
		})
	}
}

func TestPlaceBonusSnapsToPredecessor(t *testing.T) {
	pred := basePlate()
	pred.Center = core.V3(0, 2, 0)
	b := movingOn(pred, 3, 0.1)

	assert.InDelta(t, 9.9, Overlap(b, pred), eps)

	res, err := Place(b, pred, 0.3)
	require.NoError(t, err)

	assert.True(t, res.Bonus)
	assert.Nil(t, res.Chopped)
	assert.Equal(t, pred.Size.X, b.Size.X)
	assert.Equal(t, pred.Size.Z, b.Size.Z)
	assert.Equal(t, pred.Center.X, b.Center.X)
	assert.Equal(t, pred.Center.Z, b.Center.Z)
	assert.NotEqual(t, pred.Center.Y, b.Center.Y, "height is never snapped")
}

func TestPlaceBonusRestoresFootprint(t *testing.T) {
	pred := basePlate()
	b := movingOn(pred, 3, 0.05)
	b.Size.X = 9.8 // shrunk by earlier float noise

	res, err := Place(b, pred, 0.3)
	require.NoError(t, err)

	require.True(t, res.Bonus)
	assert.Equal(t, 10.0, b.Size.X)
	assert.Equal(t, 0.0, b.Center.X)
}

func TestPlaceBonusThresholdIsAbsolute(t *testing.T) {
	pred := basePlate()

	near := movingOn(pred, 3, 0.29)
	res, err := Place(near, pred, 0.3)
	require.NoError(t, err)
	assert.True(t, res.Bonus, "gap 0.29 is under the threshold")

	far := movingOn(basePlate(), 3, 0.31)
	res, err = Place(far, basePlate(), 0.3)
	require.NoError(t, err)
	assert.False(t, res.Bonus, "gap 0.31 is over the threshold")

	loose := movingOn(basePlate(), 3, 0.31)
	res, err = Place(loose, basePlate(), 0.5)
	require.NoError(t, err)
	assert.True(t, res.Bonus, "threshold is configurable")
}

func TestOverlapTranslationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		pred := basePlate()
		b := movingOn(pred, 3, (rng.Float64()*2-1)*12)
		base := Overlap(b, pred)

		shift := (rng.Float64()*2 - 1) * 1000
		pred.Center.X += shift
		b.Center.X += shift

		assert.InDelta(t, base, Overlap(b, pred), 1e-9)
	}
}

func TestPlaceFoundationIsWhole(t *testing.T) {
	b := &Block{Index: 1, Axis: AxisX, Size: core.V3(10, 2, 10), State: BlockActive, Velocity: 0.2}

	res, err := b.Place(nil, 0.3)
	require.NoError(t, err)

	assert.Equal(t, BlockStopped, b.State)
	require.NotNil(t, res.Placed)
	assert.Equal(t, core.V3(10, 2, 10), res.Placed.Size)
	assert.Equal(t, 1, res.Direction)
	assert.Nil(t, res.Chopped)
}

func TestPlaceRequiresActiveBlock(t *testing.T) {
	pred := basePlate()
	for _, state := range []BlockState{BlockStopped, BlockMissed} {
		b := movingOn(pred, 3, 4)
		b.State = state
		before := *b

		_, err := b.Place(pred, 0.3)

		assert.ErrorIs(t, err, ErrNotActive)
		assert.Equal(t, before, *b, "a rejected placement must not mutate the block")
	}
}

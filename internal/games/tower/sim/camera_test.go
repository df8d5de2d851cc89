package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-12)
}

func TestCameraInterpolates(t *testing.T) {
	c := NewCamera(0)
	c.Start(10, 1000, 100)
	assert.True(t, c.Animating())

	assert.InDelta(t, 0, c.Update(1000), 1e-12)
	assert.InDelta(t, 8.75, c.Update(1050), 1e-12)
	assert.InDelta(t, 10, c.Update(1100), 1e-12)
	assert.False(t, c.Animating())

	// Finished animations stay put.
	assert.Equal(t, 10.0, c.Update(5000))
}

func TestCameraMonotonicWithoutOvershoot(t *testing.T) {
	c := NewCamera(2)
	c.Start(30, 0, 300)

	last := c.Y()
	for now := 0.0; now <= 400; now += 7 {
		y := c.Update(now)
		assert.GreaterOrEqual(t, y, last)
		assert.LessOrEqual(t, y, 30.0)
		last = y
	}
	assert.Equal(t, 30.0, last)
}

func TestCameraRetriggerContinuesFromCurrentHeight(t *testing.T) {
	c := NewCamera(0)
	c.Start(10, 0, 100)
	c.Update(20)

	// Retrigger at t=50 without an Update in between: the new start is the
	// interpolated height at t=50, not the original 0.
	c.Start(20, 50, 100)
	assert.InDelta(t, 8.75, c.Y(), 1e-12)
	assert.InDelta(t, 8.75, c.Update(50), 1e-12)
	assert.InDelta(t, 20, c.Update(150), 1e-12)
}

func TestCameraZeroDurationJumps(t *testing.T) {
	c := NewCamera(5)
	c.Start(9, 10, 0)

	assert.False(t, c.Animating())
	assert.Equal(t, 9.0, c.Y())
	assert.Equal(t, 9.0, c.Target())
}

func TestCameraReset(t *testing.T) {
	c := NewCamera(0)
	c.Start(10, 0, 100)
	c.Reset(3)

	assert.False(t, c.Animating())
	assert.Equal(t, 3.0, c.Update(50))
}

package sim

import "github.com/vovakirdan/tui-stack/internal/core"

// Camera eases a viewpoint height toward a target. It is a pure function of
// the engine clock, so the tick rate does not change the curve.
type Camera struct {
	currentY  float64
	startY    float64
	targetY   float64
	startTime float64
	duration  float64
	animating bool
}

// NewCamera creates a camera resting at y.
func NewCamera(y float64) Camera {
	return Camera{currentY: y, startY: y, targetY: y}
}

// EaseOutCubic maps linear progress in [0,1] to a decelerating curve.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Start begins an animation toward target at time now. A retrigger
// continues from the current interpolated height, not the previous start.
func (c *Camera) Start(target, now, duration float64) {
	if c.animating {
		c.Update(now)
	}
	c.startY = c.currentY
	c.targetY = target
	c.startTime = now
	c.duration = duration

	if duration <= 0 {
		c.currentY = target
		c.animating = false
		return
	}
	c.animating = true
}

// Update recomputes the height for time now and returns it.
func (c *Camera) Update(now float64) float64 {
	if !c.animating {
		return c.currentY
	}

	progress := core.ClampF((now-c.startTime)/c.duration, 0, 1)
	c.currentY = c.startY + (c.targetY-c.startY)*EaseOutCubic(progress)
	if progress >= 1 {
		c.currentY = c.targetY
		c.animating = false
	}
	return c.currentY
}

// Reset stops any animation and parks the camera at y.
func (c *Camera) Reset(y float64) {
	*c = NewCamera(y)
}

// Y returns the last computed height.
func (c Camera) Y() float64 { return c.currentY }

// Target returns the height the camera is heading to.
func (c Camera) Target() float64 { return c.targetY }

// Animating reports whether an animation is in progress.
func (c Camera) Animating() bool { return c.animating }

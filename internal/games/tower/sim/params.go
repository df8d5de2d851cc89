package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-stack/internal/core"
)

// Params holds the tuning constants of the simulation.
// Times are in milliseconds of engine clock, distances in world units.
type Params struct {
	MoveAmount     float64   // half-width of the oscillation range
	BaseSpeed      float64   // per-tick travel of block 0
	SpeedStep      float64   // extra travel per block index
	MaxSpeed       float64   // travel cap
	BonusThreshold float64   // absolute gap below which a placement snaps
	BlockSize      core.Vec3 // foundation footprint and slab height
	SettleDelay    float64   // base delay between a reset and READY
	SettlePerBlock float64   // extra reset delay per disposed block
	CameraDuration float64   // follow animation length
	CameraBase     float64   // camera height with an empty stack
	Theme          Theme
}

// DefaultParams returns the classic tuning.
func DefaultParams() Params {
	return Params{
		MoveAmount:     12,
		BaseSpeed:      0.1,
		SpeedStep:      0.005,
		MaxSpeed:       4,
		BonusThreshold: 0.3,
		BlockSize:      core.V3(10, 2, 10),
		SettleDelay:    400,
		SettlePerBlock: 20,
		CameraDuration: 300,
		CameraBase:     4,
		Theme:          ClassicTheme,
	}
}

// Validate reports every parameter that would make the simulation degenerate.
func (p Params) Validate() error {
	var errs []error
	if p.MoveAmount <= 0 {
		errs = append(errs, fmt.Errorf("move amount must be positive, got %v", p.MoveAmount))
	}
	if p.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("base speed must be positive, got %v", p.BaseSpeed))
	}
	if p.SpeedStep < 0 {
		errs = append(errs, fmt.Errorf("speed step must not be negative, got %v", p.SpeedStep))
	}
	if p.MaxSpeed < p.BaseSpeed {
		errs = append(errs, fmt.Errorf("max speed %v is below base speed %v", p.MaxSpeed, p.BaseSpeed))
	}
	if p.BonusThreshold < 0 {
		errs = append(errs, fmt.Errorf("bonus threshold must not be negative, got %v", p.BonusThreshold))
	}
	if p.BlockSize.X <= 0 || p.BlockSize.Y <= 0 || p.BlockSize.Z <= 0 {
		errs = append(errs, fmt.Errorf("block size must be positive, got %+v", p.BlockSize))
	}
	if p.SettleDelay < 0 || p.SettlePerBlock < 0 || p.CameraDuration < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	return errors.Join(errs...)
}

// SpeedFor returns the signed base speed of the block at index.
// Speed grows with height and is clamped at -MaxSpeed.
func (p Params) SpeedFor(index int) float64 {
	speed := -p.BaseSpeed - float64(index)*p.SpeedStep
	if speed < -p.MaxSpeed {
		speed = -p.MaxSpeed
	}
	return speed
}

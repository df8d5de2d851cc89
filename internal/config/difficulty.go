package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-stack/internal/core"
	"github.com/vovakirdan/tui-stack/internal/games/tower/sim"
)

// presetScale describes how a preset bends the loaded config.
type presetScale struct {
	speed     float64 // multiplier on base speed and speed step
	threshold float64 // multiplier on the bonus threshold
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {speed: 0.7, threshold: 1.6},
	DifficultyNormal: {speed: 1, threshold: 1},
	DifficultyHard:   {speed: 1.5, threshold: 0.5},
	DifficultyFixed:  {speed: 1, threshold: 1},
}

// ApplyPreset modifies the config based on a difficulty preset.
// Unknown presets leave the config untouched.
func ApplyPreset(cfg *StackConfig, preset DifficultyPreset) {
	scale, ok := presetScales[preset]
	if !ok {
		return
	}
	cfg.Physics.BaseSpeed *= scale.speed
	cfg.Physics.SpeedStep *= scale.speed
	cfg.Placement.BonusThreshold *= scale.threshold

	if IsFixedPreset(preset) {
		// Every block moves at base speed.
		cfg.Physics.SpeedStep = 0
	}
	if cfg.Physics.MaxSpeed < cfg.Physics.BaseSpeed {
		cfg.Physics.MaxSpeed = cfg.Physics.BaseSpeed
	}
}

// Validate reports every value that would break the game.
func (c StackConfig) Validate() error {
	var errs []error
	if _, err := c.ToParams(); err != nil {
		errs = append(errs, err)
	}
	if c.Display.CellScale <= 0 {
		errs = append(errs, fmt.Errorf("display.cell_scale must be positive, got %v", c.Display.CellScale))
	}
	if c.Display.HintBlocks < 0 {
		errs = append(errs, fmt.Errorf("display.hint_blocks must not be negative, got %d", c.Display.HintBlocks))
	}
	if c.Debris.Enabled && (c.Debris.Gravity <= 0 || c.Debris.MaxTicks <= 0) {
		errs = append(errs, errors.New("debris.gravity and debris.max_ticks must be positive when debris is enabled"))
	}
	return errors.Join(errs...)
}

// ToParams converts the config to simulation parameters.
func (c StackConfig) ToParams() (sim.Params, error) {
	theme, err := sim.ThemeByName(c.Display.Theme)
	if err != nil {
		return sim.Params{}, err
	}

	p := sim.Params{
		MoveAmount:     c.Physics.MoveAmount,
		BaseSpeed:      c.Physics.BaseSpeed,
		SpeedStep:      c.Physics.SpeedStep,
		MaxSpeed:       c.Physics.MaxSpeed,
		BonusThreshold: c.Placement.BonusThreshold,
		BlockSize:      core.V3(c.Block.Width, c.Block.Height, c.Block.Depth),
		SettleDelay:    c.Timing.SettleDelayMs,
		SettlePerBlock: c.Timing.SettlePerBlockMs,
		CameraDuration: c.Camera.DurationMs,
		CameraBase:     c.Camera.Base,
		Theme:          theme,
	}
	if err := p.Validate(); err != nil {
		return sim.Params{}, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

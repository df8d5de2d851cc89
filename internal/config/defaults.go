package config

import (
	_ "embed"
)

//go:embed defaults/stack.yaml
var defaultStackYAML []byte

// DefaultStackConfig returns the default stacking game configuration.
func DefaultStackConfig() StackConfig {
	return StackConfig{
		Physics: PhysicsConfig{
			MoveAmount: 12,
			BaseSpeed:  0.1,
			SpeedStep:  0.005,
			MaxSpeed:   4,
		},
		Block: BlockConfig{
			Width:  10,
			Height: 2,
			Depth:  10,
		},
		Placement: PlacementConfig{
			BonusThreshold: 0.3,
		},
		Timing: TimingConfig{
			SettleDelayMs:    400,
			SettlePerBlockMs: 20,
		},
		Camera: CameraConfig{
			Base:       4,
			DurationMs: 300,
		},
		Debris: DebrisConfig{
			Enabled:  true,
			Gravity:  0.08,
			MaxTicks: 90,
		},
		Display: DisplayConfig{
			Theme:      "classic",
			CellScale:  1.5,
			HintBlocks: 5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultStackYAML
}

// Package config provides YAML-based game configuration loading and
// difficulty presets for the stacking game.
package config

import "fmt"

// StackConfig contains all configuration for the stacking game.
type StackConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Block     BlockConfig     `yaml:"block"`
	Placement PlacementConfig `yaml:"placement"`
	Timing    TimingConfig    `yaml:"timing"`
	Camera    CameraConfig    `yaml:"camera"`
	Debris    DebrisConfig    `yaml:"debris"`
	Display   DisplayConfig   `yaml:"display"`
}

// PhysicsConfig defines the oscillation of the moving block.
type PhysicsConfig struct {
	MoveAmount float64 `yaml:"move_amount"` // half-width of the oscillation range
	BaseSpeed  float64 `yaml:"base_speed"`  // units per tick at index 0
	SpeedStep  float64 `yaml:"speed_step"`  // extra speed per block index
	MaxSpeed   float64 `yaml:"max_speed"`
}

// BlockConfig defines the initial block footprint.
type BlockConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

// PlacementConfig defines placement tolerance.
type PlacementConfig struct {
	BonusThreshold float64 `yaml:"bonus_threshold"` // world units, not a fraction
}

// TimingConfig defines the staggered reset delay.
type TimingConfig struct {
	SettleDelayMs    float64 `yaml:"settle_delay_ms"`
	SettlePerBlockMs float64 `yaml:"settle_per_block_ms"`
}

// CameraConfig defines the follow camera.
type CameraConfig struct {
	Base       float64 `yaml:"base"`
	DurationMs float64 `yaml:"duration_ms"`
}

// DebrisConfig defines how chopped pieces fall.
type DebrisConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Gravity  float64 `yaml:"gravity"`   // downward acceleration per tick
	MaxTicks int     `yaml:"max_ticks"` // pieces are dropped after this many ticks
}

// DisplayConfig defines rendering options.
type DisplayConfig struct {
	Theme      string  `yaml:"theme"`
	CellScale  float64 `yaml:"cell_scale"`  // terminal columns per world unit
	HintBlocks int     `yaml:"hint_blocks"` // instructions stay visible below this stack height
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the difficulty presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

package config

import "fmt"

// DifficultyPreset names a set of ramp constants.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // No ramp, speed stays at initial_speed
)

// ParsePreset validates a preset name. The empty string means "use the config".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset modifies the ramp constants of cfg according to preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.InitialSpeed = 4
		cfg.Difficulty.SpeedIncrement = 0.003
	case DifficultyNormal:
		cfg.Difficulty.InitialSpeed = 5
		cfg.Difficulty.SpeedIncrement = 0.005
	case DifficultyHard:
		cfg.Difficulty.InitialSpeed = 6.5
		cfg.Difficulty.SpeedIncrement = 0.008
	case DifficultyFixed:
		cfg.Difficulty.SpeedIncrement = 0
	}
}

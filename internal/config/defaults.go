package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the constants of the original page game.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: Physics{
			Gravity:     0.5,
			JumpImpulse: -12,
			NominalFPS:  60,
			MaxFrameMS:  40,
		},
		Player: Player{
			X:            80,
			Radius:       30,
			GroundOffset: 120,
		},
		Obstacles: Obstacles{
			Width:           20,
			MinHeight:       30,
			HeightRange:     60,
			SpawnMargin:     10,
			BaseCadence:     120,
			CadencePerSpeed: 6,
			MinCadence:      60,
			ScaleByDT:       false,
		},
		Difficulty: Difficulty{
			InitialSpeed:   5,
			SpeedIncrement: 0.005,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

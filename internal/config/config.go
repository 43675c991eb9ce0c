// Package config provides YAML-based configuration for the runner game:
// physics constants, obstacle generation, the difficulty ramp and presets.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tunable constants of the runner game.
// Units are playfield units (pixels in the browser host) and ticks.
type RunnerConfig struct {
	Physics    Physics    `yaml:"physics" koanf:"physics"`
	Player     Player     `yaml:"player" koanf:"player"`
	Obstacles  Obstacles  `yaml:"obstacles" koanf:"obstacles"`
	Difficulty Difficulty `yaml:"difficulty" koanf:"difficulty"`
}

// Physics defines the vertical motion of the player.
type Physics struct {
	Gravity     float64 `yaml:"gravity" koanf:"gravity"`           // Units per tick², downwards
	JumpImpulse float64 `yaml:"jump_impulse" koanf:"jump_impulse"` // Units per tick, negative is up
	NominalFPS  float64 `yaml:"nominal_fps" koanf:"nominal_fps"`   // Frame rate the constants are tuned for
	MaxFrameMS  float64 `yaml:"max_frame_ms" koanf:"max_frame_ms"` // Upper clamp for a single dt
}

// Player defines the player body and where the ground line sits.
type Player struct {
	X            float64 `yaml:"x" koanf:"x"`
	Radius       float64 `yaml:"radius" koanf:"radius"`
	GroundOffset float64 `yaml:"ground_offset" koanf:"ground_offset"` // Ground line distance from the bottom edge
}

// Obstacles defines obstacle geometry and the spawn cadence.
type Obstacles struct {
	Width           float64 `yaml:"width" koanf:"width"`
	MinHeight       float64 `yaml:"min_height" koanf:"min_height"`
	HeightRange     float64 `yaml:"height_range" koanf:"height_range"`
	SpawnMargin     float64 `yaml:"spawn_margin" koanf:"spawn_margin"`
	BaseCadence     int     `yaml:"base_cadence" koanf:"base_cadence"`
	CadencePerSpeed float64 `yaml:"cadence_per_speed" koanf:"cadence_per_speed"`
	MinCadence      int     `yaml:"min_cadence" koanf:"min_cadence"`
	ScaleByDT       bool    `yaml:"scale_by_dt" koanf:"scale_by_dt"` // Move obstacles by speed*dt ratio instead of speed per tick
}

// Difficulty defines the scroll speed ramp.
type Difficulty struct {
	InitialSpeed   float64 `yaml:"initial_speed" koanf:"initial_speed"`
	SpeedIncrement float64 `yaml:"speed_increment" koanf:"speed_increment"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// NominalFrameMS returns the duration of one nominal frame in milliseconds.
func (p Physics) NominalFrameMS() float64 {
	return 1000 / p.NominalFPS
}

// Validate rejects values that would break the physics or the spawn loop.
func (c RunnerConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Physics.Gravity > 0, "physics.gravity must be positive"},
		{c.Physics.JumpImpulse < 0, "physics.jump_impulse must be negative (upwards)"},
		{c.Physics.NominalFPS > 0, "physics.nominal_fps must be positive"},
		{c.Physics.MaxFrameMS > 0, "physics.max_frame_ms must be positive"},
		{c.Player.Radius > 0, "player.radius must be positive"},
		{c.Player.GroundOffset >= 0, "player.ground_offset must not be negative"},
		{c.Obstacles.Width > 0, "obstacles.width must be positive"},
		{c.Obstacles.MinHeight > 0, "obstacles.min_height must be positive"},
		{c.Obstacles.HeightRange >= 0, "obstacles.height_range must not be negative"},
		{c.Obstacles.MinCadence >= 1, "obstacles.min_cadence must be at least 1"},
		{c.Obstacles.BaseCadence >= c.Obstacles.MinCadence, "obstacles.base_cadence must be >= min_cadence"},
		{c.Obstacles.CadencePerSpeed >= 0, "obstacles.cadence_per_speed must not be negative"},
		{c.Difficulty.InitialSpeed > 0, "difficulty.initial_speed must be positive"},
		{c.Difficulty.SpeedIncrement >= 0, "difficulty.speed_increment must not be negative"},
	}

	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, check.msg)
		}
	}
	return nil
}

package runner

import "github.com/vovakirdan/hopper/internal/config"

// Ramp is the difficulty ramp: scroll speed grows by a fixed increment per
// tick and never decreases until Reset.
type Ramp struct {
	initial   float64
	increment float64
	speed     float64
}

// NewRamp creates a ramp at its initial speed.
func NewRamp(cfg config.Difficulty) *Ramp {
	return &Ramp{
		initial:   cfg.InitialSpeed,
		increment: cfg.SpeedIncrement,
		speed:     cfg.InitialSpeed,
	}
}

func (r *Ramp) Reset() {
	r.speed = r.initial
}

func (r *Ramp) Step() {
	r.speed += r.increment
}

// Speed returns the current scroll speed in units per tick.
func (r *Ramp) Speed() float64 {
	return r.speed
}

package runner

import (
	"math"

	"github.com/vovakirdan/hopper/internal/config"
	"github.com/vovakirdan/hopper/internal/core"
)

// Player is the jumping ball. (X, Y) is its centre; Y grows downwards.
type Player struct {
	X, Y     float64
	VY       float64 // Vertical velocity, negative is up
	Airborne bool
	Radius   float64
}

// Rect returns the collision box: a square of side 2*Radius around the centre.
func (p Player) Rect() core.Rect {
	return core.SquareAt(p.X, p.Y, p.Radius)
}

// Physics integrates the player's vertical motion.
type Physics struct {
	cfg config.Physics
}

// NewPhysics creates an integrator for the given constants.
func NewPhysics(cfg config.Physics) Physics {
	return Physics{cfg: cfg}
}

// Ratio converts elapsed milliseconds into nominal ticks.
// dt is clamped to [0, MaxFrameMS]; NaN counts as zero.
func (ph Physics) Ratio(dtMillis float64) float64 {
	if math.IsNaN(dtMillis) {
		return 0
	}
	return core.ClampF(dtMillis, 0, ph.cfg.MaxFrameMS) / ph.cfg.NominalFrameMS()
}

// Step applies gravity for ratio nominal ticks and lands the player on restY,
// the centre height at which the ball touches the ground line.
func (ph Physics) Step(p *Player, restY, ratio float64) {
	p.VY += ph.cfg.Gravity * ratio
	p.Y += p.VY * ratio

	if p.Y >= restY {
		p.Y = restY
		p.VY = 0
		p.Airborne = false
	}
}

// Jump launches a grounded player. It reports false, and changes nothing,
// while the player is already in the air.
func (ph Physics) Jump(p *Player) bool {
	if p.Airborne {
		return false
	}
	p.VY = ph.cfg.JumpImpulse
	p.Airborne = true
	return true
}

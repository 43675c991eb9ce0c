package runner

import (
	"math"

	"github.com/vovakirdan/hopper/internal/config"
	"github.com/vovakirdan/hopper/internal/core"
)

// Obstacle is a block standing on the ground line.
type Obstacle struct {
	X      float64 `json:"x"` // Left edge
	Y      float64 `json:"y"` // Top edge
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the collision rectangle of the obstacle.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

// Generator spawns obstacles, moves them left and culls the ones that left
// the playfield.
type Generator struct {
	cfg        config.Obstacles
	rng        RNG
	obstacles  []Obstacle
	sinceSpawn int // Frames since the last spawn
}

// NewGenerator creates an empty generator drawing heights from rng.
func NewGenerator(cfg config.Obstacles, rng RNG) *Generator {
	return &Generator{
		cfg:       cfg,
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
	}
}

// Reset removes all obstacles and restarts the spawn countdown.
func (g *Generator) Reset() {
	g.obstacles = g.obstacles[:0]
	g.sinceSpawn = 0
}

// Cadence returns the number of frames between spawns at the given speed.
func (g *Generator) Cadence(speed float64) int {
	frames := int(math.Floor(float64(g.cfg.BaseCadence) - speed*g.cfg.CadencePerSpeed))
	return max(g.cfg.MinCadence, frames)
}

// Spawn adds an obstacle of random height just beyond the right edge.
func (g *Generator) Spawn(playfieldW, groundY float64) Obstacle {
	height := g.cfg.MinHeight + g.rng.Float64()*g.cfg.HeightRange
	o := Obstacle{
		X:      playfieldW + g.cfg.SpawnMargin,
		Y:      groundY - height,
		Width:  g.cfg.Width,
		Height: height,
	}
	g.obstacles = append(g.obstacles, o)
	return o
}

// Step runs one tick: spawn when the cadence is due, shift every obstacle
// left and drop those whose trailing edge passed x = 0.
// It returns how many obstacles were dropped.
func (g *Generator) Step(speed, shift, playfieldW, groundY float64) int {
	g.sinceSpawn++
	if g.sinceSpawn >= g.Cadence(speed) {
		g.Spawn(playfieldW, groundY)
		g.sinceSpawn = 0
	}

	culled := 0
	kept := g.obstacles[:0]
	for _, o := range g.obstacles {
		o.X -= shift
		if o.X+o.Width < 0 {
			culled++
			continue
		}
		kept = append(kept, o)
	}
	g.obstacles = kept

	return culled
}

// Obstacles returns the active obstacles in spawn order.
// The slice is owned by the generator.
func (g *Generator) Obstacles() []Obstacle {
	return g.obstacles
}

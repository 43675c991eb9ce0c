package runner

// PlayerView is the render-ready view of the player.
type PlayerView struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	Airborne bool    `json:"airborne"`
}

// Snapshot is everything a renderer needs to draw one frame.
// It shares no memory with the session.
type Snapshot struct {
	State     State      `json:"state"`
	Score     int        `json:"score"`
	Speed     float64    `json:"speed"`
	Frame     int        `json:"frame"`
	Player    PlayerView `json:"player"`
	Obstacles []Obstacle `json:"obstacles"`
	GroundY   float64    `json:"groundY"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
}

// Snapshot returns the current state without advancing the simulation.
func (s *Session) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}

	obstacles := make([]Obstacle, len(s.gen.Obstacles()))
	copy(obstacles, s.gen.Obstacles())

	return Snapshot{
		State: s.life.State(),
		Score: s.score.Value(),
		Speed: s.ramp.Speed(),
		Frame: s.frame,
		Player: PlayerView{
			X:        s.player.X,
			Y:        s.player.Y,
			Radius:   s.player.Radius,
			Airborne: s.player.Airborne,
		},
		Obstacles: obstacles,
		GroundY:   s.groundY,
		Width:     s.width,
		Height:    s.height,
	}
}

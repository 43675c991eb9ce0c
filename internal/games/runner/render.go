package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hopper/internal/core"
)

// Characters used by the text renderer.
const (
	BallChar     = '█'
	EyeChar      = 'o'
	ObstacleChar = '▓'
	GroundChar   = '═'
)

// Scale is the number of playfield units covered by one screen cell.
type Scale struct {
	X, Y float64
}

// DefaultScale maps an 80x24 terminal onto an 800x480 playfield.
var DefaultScale = Scale{X: 10, Y: 20}

func (sc Scale) col(x float64) int { return int(math.Floor(x / sc.X)) }
func (sc Scale) row(y float64) int { return int(math.Floor(y / sc.Y)) }

// span returns the cells covering [lo, hi) on one axis.
func span(lo, hi, unit float64) (start, n int) {
	start = int(math.Floor(lo / unit))
	end := int(math.Ceil(hi / unit))
	return start, max(end-start, 1)
}

// Render draws the snapshot into dst. The end screen is drawn as a centred
// box with the final score; hosts add their own key hints below it.
func (s Snapshot) Render(dst *core.Screen, sc Scale) {
	dst.Clear()

	if s.State == StateIdle {
		drawMessage(dst, "HOPPER", "Press Space or click to play")
		return
	}

	ground := sc.row(s.GroundY)
	dst.DrawHLine(0, ground, dst.Width(), GroundChar, core.ColorGray)

	for _, o := range s.Obstacles {
		col, w := span(o.X, o.X+o.Width, sc.X)
		row, h := span(o.Y, s.GroundY, sc.Y)
		dst.FillRect(col, row, w, h, ObstacleChar, core.ColorDarkRed)
	}

	s.drawBall(dst, sc)

	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", s.Score), core.ColorWhite)
	speed := fmt.Sprintf(" Spd: %.2f ", s.Speed)
	dst.DrawTextColored(dst.Width()-len(speed)-2, 0, speed, core.ColorGray)

	if s.State == StateEnded {
		drawMessage(dst, "Game over!", fmt.Sprintf("Your score: %d", s.Score))
	}
}

func (s Snapshot) drawBall(dst *core.Screen, sc Scale) {
	p := s.Player
	col, w := span(p.X-p.Radius, p.X+p.Radius, sc.X)
	row, h := span(p.Y-p.Radius, p.Y+p.Radius, sc.Y)
	dst.FillRect(col, row, w, h, BallChar, core.ColorRed)

	// Eyes sit above the centre, one either side
	eyeRow := sc.row(p.Y - p.Radius/5)
	dst.SetColored(sc.col(p.X-p.Radius/3), eyeRow, EyeChar, core.ColorWhite)
	dst.SetColored(sc.col(p.X+p.Radius/3), eyeRow, EyeChar, core.ColorWhite)
}

// drawMessage draws a message box in the center of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

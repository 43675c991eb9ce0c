package core

// Color is the foreground color of a screen cell.
// Hosts map it to ANSI codes or CSS colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorDarkRed
	ColorWhite
	ColorGray
	ColorYellow
)

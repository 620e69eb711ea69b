package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for tiles and HUD elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorPink
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPurple
	ColorGray
	ColorBrightWhite
)

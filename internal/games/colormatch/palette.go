// Package colormatch implements Color Match: find every tile of one color,
// then confirm the whole group at once.
package colormatch

import (
	"fmt"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// ColorID indexes the palette of the active board.
type ColorID int

// Swatch is a palette entry.
type Swatch struct {
	Key     string
	Name    string
	Display core.Color
}

var swatches = map[string]Swatch{
	"blue":   {Key: "blue", Name: "Blue", Display: core.ColorBlue},
	"pink":   {Key: "pink", Name: "Pink", Display: core.ColorPink},
	"yellow": {Key: "yellow", Name: "Yellow", Display: core.ColorYellow},
	"green":  {Key: "green", Name: "Green", Display: core.ColorGreen},
	"orange": {Key: "orange", Name: "Orange", Display: core.ColorOrange},
	"purple": {Key: "purple", Name: "Purple", Display: core.ColorPurple},
	"red":    {Key: "red", Name: "Red", Display: core.ColorRed},
	"cyan":   {Key: "cyan", Name: "Cyan", Display: core.ColorCyan},
}

// buildPalette resolves configured color keys to swatches.
func buildPalette(keys []string) ([]Swatch, error) {
	palette := make([]Swatch, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		sw, ok := swatches[k]
		if !ok {
			return nil, fmt.Errorf("colormatch: unknown color %q", k)
		}
		if seen[k] {
			return nil, fmt.Errorf("colormatch: color %q listed twice", k)
		}
		seen[k] = true
		palette = append(palette, sw)
	}
	return palette, nil
}

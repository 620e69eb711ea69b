// Package match3 implements Match-3 Rush: a timed swap-and-match game on a
// square grid of categorized tiles.
package match3

import (
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// runLength is the number of equal tiles in a row that counts as a match.
const runLength = 3

// Category identifies a tile kind by its index into the engine's category
// list.
type Category int

// CategoryInfo describes how a category is named and drawn.
type CategoryInfo struct {
	Key     string
	Name    string
	Symbol  rune
	Display core.Color
}

var knownCategories = map[string]CategoryInfo{
	"red_star":      {Key: "red_star", Name: "Red Star", Symbol: '★', Display: core.ColorRed},
	"blue_circle":   {Key: "blue_circle", Name: "Blue Circle", Symbol: '●', Display: core.ColorBlue},
	"green_heart":   {Key: "green_heart", Name: "Green Heart", Symbol: '♥', Display: core.ColorGreen},
	"purple_square": {Key: "purple_square", Name: "Purple Square", Symbol: '■', Display: core.ColorPurple},
	"gold_crown":    {Key: "gold_crown", Name: "Gold Crown", Symbol: '♛', Display: core.ColorOrange},
	"cyan_diamond":  {Key: "cyan_diamond", Name: "Cyan Diamond", Symbol: '◆', Display: core.ColorCyan},
	"pink_flower":   {Key: "pink_flower", Name: "Pink Flower", Symbol: '✿', Display: core.ColorPink},
}

func buildCategories(keys []string) ([]CategoryInfo, error) {
	seen := make(map[string]bool, len(keys))
	out := make([]CategoryInfo, 0, len(keys))
	for _, k := range keys {
		info, ok := knownCategories[k]
		if !ok {
			return nil, fmt.Errorf("match3: unknown category %q", k)
		}
		if seen[k] {
			return nil, fmt.Errorf("match3: duplicate category %q", k)
		}
		seen[k] = true
		out = append(out, info)
	}
	return out, nil
}

// Grid is a square board addressed as grid[row][col].
type Grid [][]Category

// NewGrid returns a size x size grid filled with the first category.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for r := range g {
		g[r] = make([]Category, size)
	}
	return g
}

// RandomGrid fills a new grid with uniformly random categories.
func RandomGrid(size, categories int, rng core.Rand) Grid {
	g := NewGrid(size)
	for r := range g {
		for c := range g[r] {
			g[r][c] = Category(rng.Intn(categories))
		}
	}
	return g
}

// Size returns the number of rows (and columns).
func (g Grid) Size() int {
	return len(g)
}

// At returns the category at p.
func (g Grid) At(p core.Pos) Category {
	return g[p.Row][p.Col]
}

// Set stores a category at p.
func (g Grid) Set(p core.Pos, c Category) {
	g[p.Row][p.Col] = c
}

// Swap exchanges the categories at a and b.
func (g Grid) Swap(a, b core.Pos) {
	g[a.Row][a.Col], g[b.Row][b.Col] = g[b.Row][b.Col], g[a.Row][a.Col]
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r := range g {
		out[r] = append([]Category(nil), g[r]...)
	}
	return out
}

// FindMatches scans every horizontal and vertical window of three cells and
// returns the union of positions that belong to a matching window, in
// row-major order. Overlapping windows count each position once.
func FindMatches(g Grid) []core.Pos {
	size := g.Size()
	matched := intmap.New[int, struct{}](size * size)

	mark := func(cells ...core.Pos) {
		for _, p := range cells {
			matched.Put(p.Index(size), struct{}{})
		}
	}

	for r := 0; r < size; r++ {
		for c := 0; c+runLength <= size; c++ {
			if g[r][c] == g[r][c+1] && g[r][c+1] == g[r][c+2] {
				mark(core.Pos{Row: r, Col: c}, core.Pos{Row: r, Col: c + 1}, core.Pos{Row: r, Col: c + 2})
			}
		}
	}
	for c := 0; c < size; c++ {
		for r := 0; r+runLength <= size; r++ {
			if g[r][c] == g[r+1][c] && g[r+1][c] == g[r+2][c] {
				mark(core.Pos{Row: r, Col: c}, core.Pos{Row: r + 1, Col: c}, core.Pos{Row: r + 2, Col: c})
			}
		}
	}

	if matched.Len() == 0 {
		return nil
	}
	out := make([]core.Pos, 0, matched.Len())
	for idx := 0; idx < size*size; idx++ {
		if matched.Has(idx) {
			out = append(out, core.PosFromIndex(idx, size))
		}
	}
	return out
}

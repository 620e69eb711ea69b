package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// stableGrid returns a 5x5 grid with no 3-runs: neighbors along a row
// differ by 2 and along a column by 1, modulo 5.
func stableGrid() Grid {
	g := NewGrid(5)
	for r := range g {
		for c := range g[r] {
			g[r][c] = Category((r + 2*c) % 5)
		}
	}
	return g
}

func TestFindMatchesStableGrid(t *testing.T) {
	assert.Empty(t, FindMatches(stableGrid()))
}

func TestFindMatches(t *testing.T) {
	const mark = Category(9)

	tests := []struct {
		name   string
		cells  []core.Pos
		expect []core.Pos
	}{
		{
			name:   "horizontal three",
			cells:  []core.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
			expect: []core.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		},
		{
			name:   "vertical three at the edge",
			cells:  []core.Pos{{Row: 2, Col: 4}, {Row: 3, Col: 4}, {Row: 4, Col: 4}},
			expect: []core.Pos{{Row: 2, Col: 4}, {Row: 3, Col: 4}, {Row: 4, Col: 4}},
		},
		{
			name: "run of five counts each cell once",
			cells: []core.Pos{
				{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}, {Row: 1, Col: 4},
			},
			expect: []core.Pos{
				{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}, {Row: 1, Col: 4},
			},
		},
		{
			name: "cross shares its center",
			cells: []core.Pos{
				{Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 1, Col: 2}, {Row: 3, Col: 2},
			},
			expect: []core.Pos{
				{Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 2},
			},
		},
		{
			name:   "two in a row is not a match",
			cells:  []core.Pos{{Row: 4, Col: 0}, {Row: 4, Col: 1}},
			expect: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := stableGrid()
			for _, p := range tc.cells {
				g.Set(p, mark)
			}
			assert.Equal(t, tc.expect, FindMatches(g))
		})
	}
}

func TestGridSwapAndClone(t *testing.T) {
	g := stableGrid()
	a, b := core.Pos{Row: 0, Col: 0}, core.Pos{Row: 0, Col: 1}
	before := g.Clone()

	g.Swap(a, b)
	assert.Equal(t, before.At(a), g.At(b))
	assert.Equal(t, before.At(b), g.At(a))
	assert.NotEqual(t, before, g)

	g.Swap(a, b)
	assert.Equal(t, before, g)
}

func TestBuildCategories(t *testing.T) {
	cats, err := buildCategories([]string{"red_star", "gold_crown"})
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Red Star", cats[0].Name)
	assert.Equal(t, "Gold Crown", cats[1].Name)

	_, err = buildCategories([]string{"red_star", "red_star"})
	assert.Error(t, err)

	_, err = buildCategories([]string{"green_dragon"})
	assert.Error(t, err)
}

func TestRandomGridUsesEveryCell(t *testing.T) {
	g := RandomGrid(6, 4, core.NewRand(3))
	require.Equal(t, 6, g.Size())
	for r := range g {
		require.Len(t, g[r], 6)
		for _, c := range g[r] {
			assert.GreaterOrEqual(t, int(c), 0)
			assert.Less(t, int(c), 4)
		}
	}
}

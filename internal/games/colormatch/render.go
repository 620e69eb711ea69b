package colormatch

import (
	"fmt"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

const (
	cellWidth  = 5 // Width of each tile slot including gap
	cellHeight = 2 // Height of each tile slot including gap
	hudHeight  = 3
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Window too small")
		dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
		return
	}

	snap := g.engine.Snapshot()
	boardW := snap.GridSize * cellWidth
	boardH := snap.GridSize * cellHeight
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, snap)
	g.renderBoard(dst, snap, boardX, boardY)

	dst.DrawTextCentered(boardY+boardH+1, snap.Message)
	dst.DrawTextCentered(g.screenH-1, g.Controls())

	switch {
	case g.paused:
		drawOverlay(dst, g.screenW/2, boardY+boardH/2, "PAUSED", "Press P to resume")
	case snap.Status == StatusAllMatched:
		drawOverlay(dst, g.screenW/2, boardY+boardH/2,
			"ALL MATCHED!",
			fmt.Sprintf("Time: %s", formatElapsed(snap.Elapsed)),
			"Press R to play again")
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextCentered(0, "C O L O R   M A T C H")
	info := fmt.Sprintf("%s  |  Time %s  |  Matched %d/%d",
		snap.Difficulty.Title(), formatElapsed(snap.Elapsed), snap.Matched, len(snap.Tiles))
	dst.DrawTextCentered(1, info)

	if len(snap.Selection) > 0 {
		target := snap.Palette[snap.Tiles[snap.Selection[0]].Color]
		line := fmt.Sprintf("Target: %s  (%d selected)", target.Name, len(snap.Selection))
		x := (g.screenW - len(line)) / 2
		dst.DrawTextColor(x, 2, line, target.Display)
	}
}

// renderBoard draws each tile as a colored block. Brackets mark the
// selection and angle marks the cursor.
func (g *Game) renderBoard(dst *core.Screen, snap Snapshot, boardX, boardY int) {
	for _, t := range snap.Tiles {
		p := core.PosFromIndex(t.Index, snap.GridSize)
		x := boardX + p.Col*cellWidth
		y := boardY + p.Row*cellHeight

		color := snap.Palette[t.Color].Display
		fill := '█'
		if t.Matched {
			fill = '░'
		}

		left, right := ' ', ' '
		if snap.Selected(t.Index) {
			left, right = '[', ']'
		}
		if p == g.cursor.Pos {
			left, right = '>', '<'
		}

		dst.Set(x, y, left)
		dst.SetCell(x+1, y, core.Cell{Rune: fill, Color: color})
		dst.SetCell(x+2, y, core.Cell{Rune: fill, Color: color})
		dst.Set(x+3, y, right)
	}
}

// drawOverlay draws a centered text overlay.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Space: Pick | Enter: Confirm | P: Pause | R: Restart | Q: Quit"
}

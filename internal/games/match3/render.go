package match3

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

const (
	cellWidth  = 5 // Width of each cell slot including gap
	cellHeight = 2 // Height of each cell slot including gap
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
	boardW := snap.Size * cellWidth
	boardH := snap.Size * cellHeight
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, snap)
	g.renderGrid(dst, snap, boardX, boardY)

	dst.DrawTextCentered(boardY+boardH+1, snap.Message)
	if snap.Alert != "" {
		color := core.ColorYellow
		if snap.Remaining <= 10*time.Second {
			color = core.ColorRed
		}
		x := (g.screenW - len([]rune(snap.Alert))) / 2
		dst.DrawTextColor(x, boardY+boardH+2, snap.Alert, color)
	}
	dst.DrawTextCentered(g.screenH-1, g.Controls())

	switch {
	case g.paused:
		drawOverlay(dst, g.screenW/2, boardY+boardH/2, "PAUSED", "Press P to resume")
	case snap.Session == SessionExpired:
		drawOverlay(dst, g.screenW/2, boardY+boardH/2,
			"TIME'S UP!",
			fmt.Sprintf("Final score: %d", snap.Score),
			"Press R to play again")
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextCentered(0, "M A T C H - 3   R U S H")

	info := fmt.Sprintf("Score %d  |  Time %s", snap.Score, formatCountdown(snap.Remaining))
	if snap.Streak > 1 {
		info += fmt.Sprintf("  |  Combo x%d", snap.Streak)
	}
	if !g.lowTime {
		dst.DrawTextCentered(1, info)
		return
	}
	// Stays highlighted from the first low-time warning to the end of the run
	x := (g.screenW - len([]rune(info))) / 2
	dst.DrawTextColor(x, 1, info, core.ColorYellow)
}

// renderGrid draws each cell as its category symbol. Brackets mark the
// picked cell, angle marks the cursor and cleared cells flash until refill.
func (g *Game) renderGrid(dst *core.Screen, snap Snapshot, boardX, boardY int) {
	for r := 0; r < snap.Size; r++ {
		for c := 0; c < snap.Size; c++ {
			p := core.Pos{Row: r, Col: c}
			x := boardX + c*cellWidth
			y := boardY + r*cellHeight

			info := snap.Categories[snap.Grid.At(p)]
			symbol := info.Symbol
			if snap.IsClearing(p) {
				symbol = '✦'
			}

			left, right := ' ', ' '
			if snap.IsPicked(p) {
				left, right = '[', ']'
			}
			if p == g.cursor.Pos && snap.Session == SessionRunning {
				left, right = '>', '<'
			}

			dst.Set(x, y, left)
			dst.SetCell(x+1, y, core.Cell{Rune: symbol, Color: info.Display})
			dst.SetCell(x+2, y, core.Cell{Rune: ' ', Color: info.Display})
			dst.Set(x+3, y, right)
		}
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

// formatCountdown renders remaining time as seconds and hundredths.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	hundredths := int(d%time.Second) / int(10*time.Millisecond)
	return fmt.Sprintf("%02d.%02d", secs, hundredths)
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Space: Pick/Swap | P: Pause | R: Restart | Q: Quit"
}

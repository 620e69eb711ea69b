// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Pos addresses a cell on a square tile grid.
type Pos struct {
	Row, Col int
}

// Adjacent reports whether p and o share an edge (4-neighborhood, no diagonals).
func (p Pos) Adjacent(o Pos) bool {
	dr := Abs(p.Row - o.Row)
	dc := Abs(p.Col - o.Col)
	return dr+dc == 1
}

// InBounds reports whether p lies on a size x size grid.
func (p Pos) InBounds(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// Index flattens p into a row-major index on a size x size grid.
func (p Pos) Index(size int) int {
	return p.Row*size + p.Col
}

// PosFromIndex is the inverse of Pos.Index.
func PosFromIndex(idx, size int) Pos {
	return Pos{Row: idx / size, Col: idx % size}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

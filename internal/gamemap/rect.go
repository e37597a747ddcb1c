package gamemap

import "stealth-shooter/internal/geom"

// Rect is an axis-aligned rectangle in cell coordinates. It covers the cells
// [X, X+W) × [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// WorldCenter returns the geometric center of the rectangle in world units.
func (r Rect) WorldCenter(cellSize float64) geom.Vec {
	return geom.Vec{
		X: (float64(r.X) + float64(r.W)/2) * cellSize,
		Y: (float64(r.Y) + float64(r.H)/2) * cellSize,
	}
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	return r.W * r.H
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects reports whether r and other share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// StrictlyInside reports whether r lies inside outer without touching any of
// outer's edge cells.
func (r Rect) StrictlyInside(outer Rect) bool {
	return r.X > outer.X && r.Y > outer.Y &&
		r.X+r.W < outer.X+outer.W && r.Y+r.H < outer.Y+outer.H
}

package render

import (
	"math"

	"stealth-shooter/internal/geom"
)

// Camera translates between world coordinates and screen coordinates.
// Each grid cell is drawn 2 terminal columns wide so cells look square.
type Camera struct {
	OffsetX    int // leftmost visible cell
	OffsetY    int // topmost visible cell
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
	CellSize   float64
}

// NewCamera creates a camera for a view of viewW×viewH terminal cells.
func NewCamera(viewW, viewH int, cellSize float64) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH, CellSize: cellSize}
}

// Center repositions the camera so that world point p is in the middle.
func (c *Camera) Center(p geom.Vec) {
	cx, cy := c.cellOf(p)
	// ViewWidth is in columns; each cell is 2 columns wide.
	c.OffsetX = cx - (c.ViewWidth/2)/2
	c.OffsetY = cy - c.ViewHeight/2
}

func (c *Camera) cellOf(p geom.Vec) (int, int) {
	return int(math.Floor(p.X / c.CellSize)), int(math.Floor(p.Y / c.CellSize))
}

// CellToScreen converts grid cell (x, y) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) CellToScreen(x, y int) (sx, sy int, visible bool) {
	sx = (x - c.OffsetX) * 2
	sy = y - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// WorldToScreen converts a world point to the screen cell that shows it.
func (c *Camera) WorldToScreen(p geom.Vec) (sx, sy int, visible bool) {
	x, y := c.cellOf(p)
	return c.CellToScreen(x, y)
}

// ScreenToWorld returns the world point under terminal cell (sx, sy). Each
// column maps to one half of a grid cell.
func (c *Camera) ScreenToWorld(sx, sy int) geom.Vec {
	return geom.Vec{
		X: (float64(c.OffsetX) + (float64(sx)+0.5)/2) * c.CellSize,
		Y: (float64(c.OffsetY) + float64(sy) + 0.5) * c.CellSize,
	}
}

// Package gamemap holds the tile grid shared by generation, visibility and
// agent movement, plus the per-level room list.
package gamemap

import (
	"errors"
	"fmt"
	"math"
)

// MinSize is the smallest accepted grid dimension, in cells.
const MinSize = 5

// ErrInvalidGrid is returned when grid dimensions or cell size are unusable.
var ErrInvalidGrid = errors.New("gamemap: invalid grid")

// Grid is a width×height array of tile kinds. World coordinates map to cells by
// floor division with CellSize. Anything outside the grid reads as TileWall.
type Grid struct {
	Width, Height int
	CellSize      float64
	Tiles         [][]TileKind
}

// New creates a Grid filled with walls.
func New(width, height int, cellSize float64) (*Grid, error) {
	if width < MinSize || height < MinSize {
		return nil, fmt.Errorf("%w: size %dx%d below %d", ErrInvalidGrid, width, height, MinSize)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v must be positive", ErrInvalidGrid, cellSize)
	}
	tiles := make([][]TileKind, height)
	for y := range tiles {
		// TileWall is the zero value.
		tiles[y] = make([]TileKind, width)
	}
	return &Grid{Width: width, Height: height, CellSize: cellSize, Tiles: tiles}, nil
}

// InBounds reports whether cell (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// OnBorder reports whether cell (x, y) is on the outermost ring.
func (g *Grid) OnBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

// At returns the kind of cell (x, y), or TileWall when out of bounds.
func (g *Grid) At(x, y int) TileKind {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// Set replaces the kind of cell (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, k TileKind) {
	if !g.InBounds(x, y) {
		return
	}
	g.Tiles[y][x] = k
}

// CellAt converts a world position to cell indices. ok is false when the
// position falls outside the grid (or is NaN).
func (g *Grid) CellAt(wx, wy float64) (x, y int, ok bool) {
	fx := math.Floor(wx / g.CellSize)
	fy := math.Floor(wy / g.CellSize)
	if !(fx >= 0 && fx < float64(g.Width) && fy >= 0 && fy < float64(g.Height)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// Classify returns the kind of the cell containing world point (wx, wy).
func (g *Grid) Classify(wx, wy float64) TileKind {
	x, y, ok := g.CellAt(wx, wy)
	if !ok {
		return TileWall
	}
	return g.Tiles[y][x]
}

// IsBlocking reports whether world point (wx, wy) stops movement and rays.
func (g *Grid) IsBlocking(wx, wy float64) bool {
	return g.Classify(wx, wy).Blocks()
}

// Count returns how many cells have kind k.
func (g *Grid) Count(k TileKind) int {
	n := 0
	for y := range g.Tiles {
		for _, t := range g.Tiles[y] {
			if t == k {
				n++
			}
		}
	}
	return n
}

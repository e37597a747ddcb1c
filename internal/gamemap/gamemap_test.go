package gamemap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, w, h int, cell float64) *Grid {
	t.Helper()
	g, err := New(w, h, cell)
	require.NoError(t, err)
	return g
}

func TestNewRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		cell float64
	}{
		{"too narrow", 4, 10, 10},
		{"too short", 10, 4, 10},
		{"zero cell", 10, 10, 0},
		{"negative cell", 10, 10, -1},
		{"nan cell", 10, 10, math.NaN()},
		{"inf cell", 10, 10, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.w, tc.h, tc.cell)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestNewIsAllWall(t *testing.T) {
	g := newGrid(t, 8, 6, 10)
	assert.Equal(t, 48, g.Count(TileWall))
	assert.Equal(t, 0, g.Count(TileFloor))
}

func TestInBounds(t *testing.T) {
	g := newGrid(t, 10, 8, 1)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, g.InBounds(c.x, c.y), "InBounds(%d,%d)", c.x, c.y)
	}
}

func TestSetAndAt(t *testing.T) {
	g := newGrid(t, 5, 5, 1)
	require.Equal(t, TileWall, g.At(2, 3))
	g.Set(2, 3, TileFloor)
	assert.Equal(t, TileFloor, g.At(2, 3))

	// Out-of-bounds writes are dropped and reads stay Wall.
	g.Set(-1, 0, TileFloor)
	g.Set(5, 5, TileFloor)
	assert.Equal(t, TileWall, g.At(-1, 0))
	assert.Equal(t, TileWall, g.At(5, 5))
}

func TestClassifyWorldCoordinates(t *testing.T) {
	g := newGrid(t, 6, 6, 100)
	g.Set(2, 1, TileFloor)
	g.Set(3, 3, TileCover)

	cases := []struct {
		name   string
		wx, wy float64
		want   TileKind
	}{
		{"inside floor cell", 250, 150, TileFloor},
		{"floor cell low edge", 200, 100, TileFloor},
		{"just before floor cell", 199.999, 150, TileWall},
		{"cover cell", 350, 399, TileCover},
		{"negative x", -0.5, 150, TileWall},
		{"beyond width", 600, 150, TileWall},
		{"beyond height", 250, 600, TileWall},
		{"nan", math.NaN(), 150, TileWall},
		{"huge", 1e300, 150, TileWall},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.Classify(tc.wx, tc.wy))
		})
	}
}

func TestIsBlocking(t *testing.T) {
	g := newGrid(t, 6, 6, 10)
	g.Set(1, 1, TileFloor)
	g.Set(2, 1, TileCover)

	assert.False(t, g.IsBlocking(15, 15), "floor should not block")
	assert.True(t, g.IsBlocking(25, 15), "cover blocks like wall")
	assert.True(t, g.IsBlocking(5, 5), "wall blocks")
	assert.True(t, g.IsBlocking(-5, 15), "out of bounds blocks")
}

func TestTileKindBlocks(t *testing.T) {
	assert.True(t, TileWall.Blocks())
	assert.True(t, TileCover.Blocks())
	assert.False(t, TileFloor.Blocks())
	assert.Equal(t, "cover", TileCover.String())
}

func TestRectCenter(t *testing.T) {
	r := Rect{X: 2, Y: 4, W: 5, H: 4}
	cx, cy := r.Center()
	assert.Equal(t, 4, cx)
	assert.Equal(t, 6, cy)

	wc := r.WorldCenter(100)
	assert.InDelta(t, 450.0, wc.X, 1e-9)
	assert.InDelta(t, 600.0, wc.Y, 1e-9)
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 5, 5}
	b := Rect{4, 4, 3, 3}
	c := Rect{5, 0, 3, 3}
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c), "touching edges do not share cells")
}

func TestRectStrictlyInside(t *testing.T) {
	leaf := Rect{10, 10, 8, 6}
	assert.True(t, Rect{11, 11, 6, 4}.StrictlyInside(leaf))
	assert.False(t, Rect{10, 11, 6, 4}.StrictlyInside(leaf), "touches left edge")
	assert.False(t, Rect{11, 11, 7, 4}.StrictlyInside(leaf), "touches right edge")
	assert.False(t, Rect{11, 11, 6, 5}.StrictlyInside(leaf), "touches bottom edge")
}

func TestLevelSpawnPoint(t *testing.T) {
	g := newGrid(t, 20, 20, 100)
	lvl := NewLevel(g, []Rect{{X: 2, Y: 2, W: 4, H: 6}, {X: 10, Y: 10, W: 3, H: 3}})
	sp := lvl.SpawnPoint()
	assert.InDelta(t, 400.0, sp.X, 1e-9)
	assert.InDelta(t, 500.0, sp.Y, 1e-9)
	assert.NotEqual(t, lvl.ID, NewLevel(g, nil).ID)
}

package generate

import (
	"math/rand"

	"stealth-shooter/internal/gamemap"
)

// connectRooms links each room to the next one in list order with an
// L-shaped, two-cell-wide corridor between their centers.
func connectRooms(grid *gamemap.Grid, rooms []gamemap.Rect, rng *rand.Rand) {
	for i := 0; i+1 < len(rooms); i++ {
		ax, ay := rooms[i].Center()
		bx, by := rooms[i+1].Center()
		carveCorridor(grid, ax, ay, bx, by, rng)
	}
}

// carveCorridor digs an L-shaped tunnel between (x1,y1) and (x2,y2); a coin
// flip picks which leg comes first.
func carveCorridor(grid *gamemap.Grid, x1, y1, x2, y2 int, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		carveH(grid, x1, x2, y1)
		carveV(grid, y1, y2, x2)
	} else {
		carveV(grid, y1, y2, x1)
		carveH(grid, x1, x2, y2)
	}
}

// carveH carves row y and the row below it from x1 to x2 inclusive.
func carveH(grid *gamemap.Grid, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		carveInterior(grid, x, y)
		carveInterior(grid, x, y+1)
	}
}

// carveV carves column x and the column to its right from y1 to y2 inclusive.
func carveV(grid *gamemap.Grid, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		carveInterior(grid, x, y)
		carveInterior(grid, x+1, y)
	}
}

// carveInterior marks (x, y) as floor unless it is on or outside the border.
func carveInterior(grid *gamemap.Grid, x, y int) {
	if x <= 0 || y <= 0 || x >= grid.Width-1 || y >= grid.Height-1 {
		return
	}
	grid.Set(x, y, gamemap.TileFloor)
}

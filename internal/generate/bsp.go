// Package generate builds dungeon levels: a binary space partition of the map
// interior, one room per leaf, L-shaped corridors between consecutive rooms,
// and a decorative cover pass.
package generate

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"stealth-shooter/internal/gamemap"
)

const (
	// MinSplitSize is the smallest width or height a node must have to be split.
	MinSplitSize = 10
	// MinPartSize is the smallest width or height a split may leave on either side.
	MinPartSize = 5
)

// ErrInvalidConfig is returned by Generate for unusable parameters.
var ErrInvalidConfig = errors.New("generate: invalid config")

// Config drives generation of one level.
type Config struct {
	Width, Height int     // cells, border included
	MaxDepth      int     // partition depth limit; at most 2^MaxDepth rooms
	CellSize      float64 // world units per cell
	PickupChance  float64 // per-room pickup probability used by Populate
	Rand          *rand.Rand
}

// Validate reports whether cfg can produce a level.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}
	if cfg.Width < gamemap.MinSize || cfg.Height < gamemap.MinSize {
		return fmt.Errorf("%w: size %dx%d below %d", ErrInvalidConfig, cfg.Width, cfg.Height, gamemap.MinSize)
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, cfg.MaxDepth)
	}
	if !(cfg.CellSize > 0) {
		return fmt.Errorf("%w: cell size %v must be positive", ErrInvalidConfig, cfg.CellSize)
	}
	if cfg.PickupChance < 0 || cfg.PickupChance > 1 {
		return fmt.Errorf("%w: pickup chance %v outside [0,1]", ErrInvalidConfig, cfg.PickupChance)
	}
	return nil
}

func (cfg *Config) rng() *rand.Rand {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return cfg.Rand
}

// Node is one partition rectangle. Left and Right index into Tree.Nodes and
// are -1 for a leaf.
type Node struct {
	Rect        gamemap.Rect
	Left, Right int
}

// Leaf reports whether n has no children.
func (n Node) Leaf() bool {
	return n.Left < 0 && n.Right < 0
}

// Tree is an arena of partition nodes; Nodes[0] is the root.
type Tree struct {
	Nodes []Node
}

// Leaves returns the leaf indices in depth-first order, left before right.
func (t *Tree) Leaves() []int {
	if len(t.Nodes) == 0 {
		return nil
	}
	var leaves []int
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Nodes[i]
		if n.Leaf() {
			leaves = append(leaves, i)
			continue
		}
		// Push right first so left is visited first.
		stack = append(stack, n.Right, n.Left)
	}
	return leaves
}

// Partition recursively splits area until depth runs out or nodes become too
// small to split.
func Partition(area gamemap.Rect, maxDepth int, rng *rand.Rand) *Tree {
	t := &Tree{Nodes: []Node{{Rect: area, Left: -1, Right: -1}}}
	type frame struct{ index, depth int }
	stack := []frame{{0, maxDepth}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth <= 0 {
			continue
		}
		a, b, ok := split(t.Nodes[f.index].Rect, rng)
		if !ok {
			continue
		}
		left := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{Rect: a, Left: -1, Right: -1}, Node{Rect: b, Left: -1, Right: -1})
		t.Nodes[f.index].Left = left
		t.Nodes[f.index].Right = left + 1
		stack = append(stack, frame{left + 1, f.depth - 1}, frame{left, f.depth - 1})
	}
	return t
}

// split divides r in two, returning false when r stays a leaf.
func split(r gamemap.Rect, rng *rand.Rand) (gamemap.Rect, gamemap.Rect, bool) {
	if r.W < MinSplitSize || r.H < MinSplitSize {
		return gamemap.Rect{}, gamemap.Rect{}, false
	}
	// Horizontal cut when taller, vertical when wider, coin flip when square.
	var horizontal bool
	switch {
	case r.W < r.H:
		horizontal = true
	case r.W > r.H:
		horizontal = false
	default:
		horizontal = rng.Intn(2) == 0
	}

	size := r.W
	if horizontal {
		size = r.H
	}
	at := int(float64(size) * (0.3 + rng.Float64()*0.4))
	if at < MinPartSize || size-at < MinPartSize {
		return gamemap.Rect{}, gamemap.Rect{}, false
	}
	if horizontal {
		return gamemap.Rect{X: r.X, Y: r.Y, W: r.W, H: at},
			gamemap.Rect{X: r.X, Y: r.Y + at, W: r.W, H: r.H - at}, true
	}
	return gamemap.Rect{X: r.X, Y: r.Y, W: at, H: r.H},
		gamemap.Rect{X: r.X + at, Y: r.Y, W: r.W - at, H: r.H}, true
}

// roomIn picks a room covering 60 to 90% of leaf on each axis, offset so it never
// touches the leaf's edge cells.
func roomIn(leaf gamemap.Rect, rng *rand.Rand) gamemap.Rect {
	w := clamp(int(float64(leaf.W)*(0.6+rng.Float64()*0.3)), 1, leaf.W-2)
	h := clamp(int(float64(leaf.H)*(0.6+rng.Float64()*0.3)), 1, leaf.H-2)
	return gamemap.Rect{
		X: leaf.X + 1 + rng.Intn(leaf.W-w-1),
		Y: leaf.Y + 1 + rng.Intn(leaf.H-h-1),
		W: w,
		H: h,
	}
}

// carveRooms carves one room per leaf and returns them in leaf order.
func carveRooms(grid *gamemap.Grid, t *Tree, rng *rand.Rand) []gamemap.Rect {
	leaves := t.Leaves()
	rooms := make([]gamemap.Rect, 0, len(leaves))
	for _, i := range leaves {
		room := roomIn(t.Nodes[i].Rect, rng)
		for y := room.Y; y < room.Y+room.H; y++ {
			for x := room.X; x < room.X+room.W; x++ {
				grid.Set(x, y, gamemap.TileFloor)
			}
		}
		rooms = append(rooms, room)
	}
	return rooms
}

// addCover marks the center of roughly half the rooms as cover. The spawn
// room is skipped so the player never starts inside a blocking cell.
func addCover(grid *gamemap.Grid, rooms []gamemap.Rect, rng *rand.Rand) {
	for i, room := range rooms {
		if rng.Float64() <= 0.5 || i == 0 {
			continue
		}
		cx, cy := room.Center()
		grid.Set(cx, cy, gamemap.TileCover)
	}
}

// Generate builds a level. Generation itself cannot fail; errors only report
// an invalid cfg.
func Generate(cfg *Config) (*gamemap.Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := cfg.rng()

	grid, err := gamemap.New(cfg.Width, cfg.Height, cfg.CellSize)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	interior := gamemap.Rect{X: 1, Y: 1, W: cfg.Width - 2, H: cfg.Height - 2}
	tree := Partition(interior, cfg.MaxDepth, rng)
	rooms := carveRooms(grid, tree, rng)
	connectRooms(grid, rooms, rng)
	addCover(grid, rooms, rng)

	return gamemap.NewLevel(grid, rooms), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package generate

import (
	"math/rand"
	"testing"

	"stealth-shooter/internal/gamemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig(seed int64) *Config {
	return &Config{
		Width:        50,
		Height:       40,
		MaxDepth:     4,
		CellSize:     100,
		PickupChance: 1,
		Rand:         rand.New(rand.NewSource(seed)),
	}
}

func generateSeed(t *testing.T, seed int64) *gamemap.Level {
	t.Helper()
	lvl, err := Generate(defaultTestConfig(seed))
	require.NoError(t, err)
	return lvl
}

func TestGenerateBorderIsWall(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		g := generateSeed(t, seed).Grid
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.OnBorder(x, y) && g.At(x, y) != gamemap.TileWall {
					t.Fatalf("seed=%d: border cell (%d,%d) is %v", seed, x, y, g.At(x, y))
				}
			}
		}
	}
}

func TestGenerateRoomCountBounds(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		lvl := generateSeed(t, seed)
		assert.GreaterOrEqual(t, len(lvl.Rooms), 1, "seed=%d", seed)
		assert.LessOrEqual(t, len(lvl.Rooms), 16, "seed=%d", seed)
	}
}

func TestGenerateSpawnCenterIsFloor(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		lvl := generateSeed(t, seed)
		sp := lvl.SpawnPoint()
		assert.Equal(t, gamemap.TileFloor, lvl.Grid.Classify(sp.X, sp.Y), "seed=%d", seed)
	}
}

func TestGenerateRoomsDoNotOverlap(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		rooms := generateSeed(t, seed).Rooms
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				assert.False(t, rooms[i].Intersects(rooms[j]),
					"seed=%d: room %d %v overlaps room %d %v", seed, i, rooms[i], j, rooms[j])
			}
		}
	}
}

func TestGenerateIsReproducibleForSeed(t *testing.T) {
	a := generateSeed(t, 42)
	b := generateSeed(t, 42)
	assert.Equal(t, a.Rooms, b.Rooms)
	assert.Equal(t, a.Grid.Tiles, b.Grid.Tiles)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  *Config
	}{
		{"nil", nil},
		{"tiny", &Config{Width: 4, Height: 40, CellSize: 1}},
		{"negative depth", &Config{Width: 20, Height: 20, MaxDepth: -1, CellSize: 1}},
		{"zero cell", &Config{Width: 20, Height: 20, MaxDepth: 2}},
		{"bad pickup chance", &Config{Width: 20, Height: 20, CellSize: 1, PickupChance: 1.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestGenerateDegenerateAreaYieldsOneRoom(t *testing.T) {
	for _, size := range [][2]int{{5, 5}, {11, 11}, {60, 8}} {
		cfg := &Config{Width: size[0], Height: size[1], MaxDepth: 6, CellSize: 10, Rand: rand.New(rand.NewSource(1))}
		lvl, err := Generate(cfg)
		require.NoError(t, err)
		assert.Len(t, lvl.Rooms, 1, "size=%v", size)
	}
}

func TestGenerateZeroDepthYieldsOneRoom(t *testing.T) {
	cfg := defaultTestConfig(3)
	cfg.MaxDepth = 0
	lvl, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, lvl.Rooms, 1)
	assert.True(t, lvl.Rooms[0].StrictlyInside(gamemap.Rect{X: 1, Y: 1, W: 48, H: 38}))
}

func TestPartitionChildrenTileParent(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		tree := Partition(gamemap.Rect{X: 1, Y: 1, W: 48, H: 38}, 4, rng)
		for i, n := range tree.Nodes {
			if n.Leaf() {
				continue
			}
			require.True(t, n.Left >= 0 && n.Right >= 0, "node %d has one child", i)
			l, r := tree.Nodes[n.Left].Rect, tree.Nodes[n.Right].Rect
			assert.Equal(t, n.Rect.Area(), l.Area()+r.Area(), "seed=%d node=%d", seed, i)
			assert.False(t, l.Intersects(r), "seed=%d node=%d children overlap", seed, i)
			for _, c := range []gamemap.Rect{l, r} {
				assert.True(t, c.X >= n.Rect.X && c.Y >= n.Rect.Y &&
					c.X+c.W <= n.Rect.X+n.Rect.W && c.Y+c.H <= n.Rect.Y+n.Rect.H,
					"seed=%d node=%d child %v escapes parent %v", seed, i, c, n.Rect)
				assert.GreaterOrEqual(t, c.W, MinPartSize)
				assert.GreaterOrEqual(t, c.H, MinPartSize)
			}
		}
	}
}

func TestPartitionRespectsDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := Partition(gamemap.Rect{X: 1, Y: 1, W: 200, H: 200}, 3, rng)
	assert.LessOrEqual(t, len(tree.Leaves()), 8)
}

func TestPartitionSplitsAlongLongerAxis(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	tree := Partition(gamemap.Rect{X: 0, Y: 0, W: 40, H: 12}, 1, rng)
	require.Len(t, tree.Nodes, 3)
	l := tree.Nodes[tree.Nodes[0].Left].Rect
	assert.Equal(t, 12, l.H, "a wide node is cut vertically")
	assert.GreaterOrEqual(t, l.W, 12)
	assert.Less(t, l.W, 28)
}

func TestLeavesAreDepthFirstLeftToRight(t *testing.T) {
	tree := &Tree{Nodes: []Node{
		{Rect: gamemap.Rect{W: 20, H: 10}, Left: 1, Right: 2},
		{Rect: gamemap.Rect{W: 10, H: 10}, Left: 3, Right: 4},
		{Rect: gamemap.Rect{X: 10, W: 10, H: 10}, Left: -1, Right: -1},
		{Rect: gamemap.Rect{W: 10, H: 5}, Left: -1, Right: -1},
		{Rect: gamemap.Rect{Y: 5, W: 10, H: 5}, Left: -1, Right: -1},
	}}
	assert.Equal(t, []int{3, 4, 2}, tree.Leaves())
}

func TestRoomsStrictlyInsideLeaves(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		grid, err := gamemap.New(50, 40, 10)
		require.NoError(t, err)
		tree := Partition(gamemap.Rect{X: 1, Y: 1, W: 48, H: 38}, 4, rng)
		rooms := carveRooms(grid, tree, rng)
		leaves := tree.Leaves()
		require.Len(t, rooms, len(leaves))
		for i, leaf := range leaves {
			assert.True(t, rooms[i].StrictlyInside(tree.Nodes[leaf].Rect),
				"seed=%d room %v touches leaf %v", seed, rooms[i], tree.Nodes[leaf].Rect)
		}
	}
}

func TestRoomInSmallestLeaf(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	for range 100 {
		leaf := gamemap.Rect{X: 3, Y: 3, W: 3, H: 5}
		room := roomIn(leaf, rng)
		assert.True(t, room.StrictlyInside(leaf), "room %v leaf %v", room, leaf)
		assert.GreaterOrEqual(t, room.W, 1)
	}
}

func TestCoverOnlyAtRoomCenters(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		lvl := generateSeed(t, seed)
		centers := map[[2]int]bool{}
		for _, r := range lvl.Rooms {
			cx, cy := r.Center()
			centers[[2]int{cx, cy}] = true
		}
		g := lvl.Grid
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.At(x, y) == gamemap.TileCover {
					assert.True(t, centers[[2]int{x, y}], "seed=%d stray cover at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

package sim

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"stealth-shooter/internal/agent"
	"stealth-shooter/internal/config"
	"stealth-shooter/internal/gamemap"
	"stealth-shooter/internal/generate"
	"stealth-shooter/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSim(t *testing.T, seed int64) *Sim {
	t.Helper()
	s, err := New(config.DefaultConfig(), rand.New(rand.NewSource(seed)), nil)
	require.NoError(t, err)
	return s
}

// loadOpen swaps in a w×h arena of 100-unit cells: wall border, floor
// interior, one room covering the interior and nothing spawned. The player
// stands at the arena center.
func loadOpen(t *testing.T, s *Sim, w, h int) {
	t.Helper()
	g, err := gamemap.New(w, h, 100)
	require.NoError(t, err)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			g.Set(x, y, gamemap.TileFloor)
		}
	}
	lvl := gamemap.NewLevel(g, []gamemap.Rect{{X: 1, Y: 1, W: w - 2, H: h - 2}})
	require.NoError(t, s.load(lvl, generate.PopulateResult{}))
}

// placeAgent adds a guard facing away from the player so it will not notice
// them on its own.
func placeAgent(s *Sim, pos geom.Vec) *agent.Agent {
	a := s.spawnAgent(pos)
	a.Facing = geom.Bearing(s.Player.Pos, pos)
	a.Tuning.PatrolDrift = 0
	return a
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.Error(t, err)

	cfg := config.DefaultConfig()
	cfg.Level.CellSize = 0
	_, err = New(cfg, nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewBuildsLevel(t *testing.T) {
	s := newTestSim(t, 3)

	require.NotNil(t, s.Level)
	assert.NotEqual(t, [16]byte{}, [16]byte(s.Level.ID))
	assert.Equal(t, s.Level.SpawnPoint(), s.Player.Pos)
	assert.Equal(t, gamemap.TileFloor, s.Level.Grid.Classify(s.Player.Pos.X, s.Player.Pos.Y))
	assert.Equal(t, 100.0, s.Player.Health)
	assert.Equal(t, 30, s.Player.Ammo)
	assert.True(t, s.Player.Flashlight)
	assert.GreaterOrEqual(t, len(s.Agents), len(s.Level.Rooms)-1)

	ids := map[int]bool{}
	for _, a := range s.Agents {
		assert.False(t, ids[a.ID], "duplicate agent id %d", a.ID)
		ids[a.ID] = true
		assert.Equal(t, agent.Patrol, a.State)
	}
}

func TestSeededSimsMatch(t *testing.T) {
	a := newTestSim(t, 99)
	b := newTestSim(t, 99)
	assert.Equal(t, a.Level.Rooms, b.Level.Rooms)
	assert.Equal(t, a.Level.Grid.Tiles, b.Level.Grid.Tiles)
	require.Equal(t, len(a.Agents), len(b.Agents))
	for i := range a.Agents {
		assert.Equal(t, a.Agents[i].Pos, b.Agents[i].Pos)
	}
}

func TestRegenerateReplacesEverything(t *testing.T) {
	s := newTestSim(t, 5)
	first := s.Level.ID
	s.Player.Health = 10
	s.Player.Ammo = 0
	s.Bullets = append(s.Bullets, Bullet{})
	s.Ticks = 42

	require.NoError(t, s.Regenerate())
	assert.NotEqual(t, first, s.Level.ID)
	assert.Equal(t, 100.0, s.Player.Health)
	assert.Equal(t, 30, s.Player.Ammo)
	assert.Empty(t, s.Bullets)
	assert.Zero(t, s.Ticks)
}

func TestPlayerMovesAndSlides(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)
	start := s.Player.Pos

	s.Tick(Input{MoveX: 1})
	assert.InDelta(t, start.X+3, s.Player.Pos.X, 1e-9)
	assert.Equal(t, start.Y, s.Player.Pos.Y)

	s.Tick(Input{MoveX: -1, MoveY: 1})
	assert.InDelta(t, start.X+3-3*diagonalScale, s.Player.Pos.X, 1e-9)
	assert.InDelta(t, start.Y+3*diagonalScale, s.Player.Pos.Y, 1e-9)

	// Pressed against the right wall, a diagonal move only slides vertically.
	s.Player.Pos = geom.Vec{X: 899, Y: 500}
	s.Tick(Input{MoveX: 1, MoveY: -1})
	assert.Equal(t, 899.0, s.Player.Pos.X)
	assert.InDelta(t, 500-3*diagonalScale, s.Player.Pos.Y, 1e-9)
}

func TestAimSetsFacing(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)
	target := s.Player.Pos.Add(geom.Vec{X: 0, Y: -50})

	s.Tick(Input{Aim: &target})
	assert.InDelta(t, -math.Pi/2, s.Player.Facing, 1e-9)

	s.Tick(Input{})
	assert.InDelta(t, -math.Pi/2, s.Player.Facing, 1e-9, "no aim keeps facing")
}

func TestFireSpendsAmmo(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)
	s.Player.Ammo = 1

	ev := s.Tick(Input{Fire: true})
	assert.True(t, ev.Fired)
	assert.Equal(t, 0, s.Player.Ammo)
	require.Len(t, s.Bullets, 1)
	// Spawned 20 ahead, then moved 15 in the same tick.
	assert.InDelta(t, s.Player.Pos.X+35, s.Bullets[0].Pos.X, 1e-9)

	ev = s.Tick(Input{Fire: true})
	assert.False(t, ev.Fired)
	assert.Len(t, s.Bullets, 1)
}

func TestBulletDiesOnWall(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)

	s.Tick(Input{Fire: true})
	for range 40 {
		s.Tick(Input{})
	}
	assert.Empty(t, s.Bullets)
}

func TestBulletHitRevealsAndKills(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 12, 10)
	s.cfg.Pickups.DropChance = 1
	a := placeAgent(s, s.Player.Pos.Add(geom.Vec{X: 100}))

	s.Tick(Input{Fire: true})
	for i := 0; i < 10 && a.State != agent.Chase; i++ {
		s.Tick(Input{})
	}
	assert.Equal(t, agent.Chase, a.State)
	assert.Equal(t, agent.MaxAlert, a.AlertLevel)
	assert.Equal(t, 65.0, a.Health)
	assert.Empty(t, s.Bullets, "the bullet is spent on the hit")
	require.Len(t, s.Agents, 1)

	a.Health = 10
	a.Pos = s.Player.Pos.Add(geom.Vec{X: 100})
	var kills int
	s.Tick(Input{Fire: true})
	for i := 0; i < 10 && kills == 0; i++ {
		kills += s.Tick(Input{}).Kills
	}
	assert.Equal(t, 1, kills)
	assert.Empty(t, s.Agents)
	assert.True(t, s.Cleared())
	require.Len(t, s.Pickups, 1, "drop chance 1 always drops")
}

func TestKillKeepsAgentOrder(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 12, 10)
	s.cfg.Pickups.DropChance = 0
	far1 := placeAgent(s, s.Player.Pos.Add(geom.Vec{X: -300, Y: -300}))
	target := placeAgent(s, s.Player.Pos.Add(geom.Vec{X: 100}))
	far2 := placeAgent(s, s.Player.Pos.Add(geom.Vec{X: -300, Y: 300}))
	target.Health = 1

	s.Tick(Input{Fire: true})
	for range 10 {
		s.Tick(Input{})
	}
	require.Len(t, s.Agents, 2)
	assert.Same(t, far1, s.Agents[0])
	assert.Same(t, far2, s.Agents[1])
	assert.Empty(t, s.Pickups)
}

func TestPickupCollection(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)
	p := s.Player.Pos
	s.Player.Health = 97
	s.Pickups = []Pickup{
		{Kind: generate.PickupAmmo, Pos: p.Add(geom.Vec{X: 10})},
		{Kind: generate.PickupHealth, Pos: p.Add(geom.Vec{Y: 23})},
		{Kind: generate.PickupAmmo, Pos: p.Add(geom.Vec{X: 24})},
	}

	ev := s.Tick(Input{})
	assert.ElementsMatch(t, []generate.PickupKind{generate.PickupAmmo, generate.PickupHealth}, ev.Collected)
	assert.Equal(t, 33, s.Player.Ammo)
	assert.Equal(t, 100.0, s.Player.Health, "health is capped")
	require.Len(t, s.Pickups, 1, "pickup at exactly the reach distance stays")
}

func TestMeleeDamagesPlayer(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)
	a := placeAgent(s, s.Player.Pos.Add(geom.Vec{X: 20}))
	a.TakeDamage(0, s.Player.Pos)

	ev := s.Tick(Input{})
	assert.Equal(t, 0.5, ev.DamageTaken)
	assert.Equal(t, 99.5, s.Player.Health)
}

func TestPlayerDeathStopsTicks(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)
	a := placeAgent(s, s.Player.Pos.Add(geom.Vec{X: 20}))
	a.TakeDamage(0, s.Player.Pos)
	s.Player.Health = 0.5

	ev := s.Tick(Input{})
	assert.True(t, ev.PlayerDied)
	assert.True(t, s.Over())

	pos := s.Player.Pos
	ticks := s.Ticks
	ev = s.Tick(Input{MoveX: 1, Fire: true})
	assert.Equal(t, Events{}, ev)
	assert.Equal(t, pos, s.Player.Pos)
	assert.Equal(t, ticks, s.Ticks)
}

func TestStateTransitionsReported(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)
	a := placeAgent(s, s.Player.Pos.Add(geom.Vec{X: 300}))
	a.State = agent.Search
	a.AlertLevel = 10.1

	ev := s.Tick(Input{})
	require.Len(t, ev.Transitions, 1)
	assert.Equal(t, Transition{AgentID: a.ID, From: agent.Search, To: agent.Patrol}, ev.Transitions[0])
}

func TestLightCone(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 20, 20)

	cone := s.LightCone()
	require.Len(t, cone, s.cfg.Flashlight.Rays+1)
	for _, h := range cone {
		assert.LessOrEqual(t, h.Distance, s.cfg.Flashlight.Range)
	}

	s.Tick(Input{ToggleFlashlight: true})
	assert.False(t, s.Player.Flashlight)
	assert.Nil(t, s.LightCone())
}

func TestLevelClearedOnce(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)

	ev := s.Tick(Input{})
	assert.True(t, ev.LevelCleared)
	ev = s.Tick(Input{})
	assert.False(t, ev.LevelCleared)
	assert.True(t, s.Cleared())
}

func TestLogsKillsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := New(config.DefaultConfig(), rand.New(rand.NewSource(2)), log)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "sim: level generated")

	loadOpen(t, s, 12, 10)
	a := placeAgent(s, s.Player.Pos.Add(geom.Vec{X: 100}))
	a.Health = 1
	s.Tick(Input{Fire: true})
	for range 10 {
		s.Tick(Input{})
	}
	assert.Contains(t, buf.String(), "sim: agent killed")
	assert.Contains(t, buf.String(), "sim: level cleared")
}

func TestStateCounts(t *testing.T) {
	s := newTestSim(t, 1)
	loadOpen(t, s, 10, 10)
	placeAgent(s, geom.Vec{X: 200, Y: 200})
	b := placeAgent(s, geom.Vec{X: 700, Y: 700})
	b.State = agent.Search

	counts := s.StateCounts()
	assert.Equal(t, 1, counts[agent.Patrol])
	assert.Equal(t, 1, counts[agent.Search])
}

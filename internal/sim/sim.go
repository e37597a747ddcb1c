// Package sim owns one running game: the level, the player, the guards and
// everything in flight between them. The interactive loop and the headless
// CLI both drive it one Tick at a time.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"stealth-shooter/internal/agent"
	"stealth-shooter/internal/config"
	"stealth-shooter/internal/gamemap"
	"stealth-shooter/internal/generate"
	"stealth-shooter/internal/geom"
	"stealth-shooter/internal/visibility"
)

// diagonalScale keeps diagonal movement at roughly the axis speed.
const diagonalScale = 0.707

// Player is the player's body, weapon and flashlight.
type Player struct {
	Pos        geom.Vec
	Facing     float64
	Radius     float64
	Health     float64
	MaxHealth  float64
	Ammo       int
	Flashlight bool
}

// Bullet is a projectile in flight.
type Bullet struct {
	Pos geom.Vec
	Vel geom.Vec
}

// Pickup is an uncollected item on the floor.
type Pickup struct {
	Kind generate.PickupKind
	Pos  geom.Vec
}

// Input is the player's intent for one tick.
type Input struct {
	MoveX, MoveY     int       // each -1, 0 or 1
	Aim              *geom.Vec // world point to face; nil keeps the facing
	Fire             bool
	ToggleFlashlight bool
}

// Events summarizes one tick for the HUD.
type Events struct {
	Fired        bool
	Kills        int
	Collected    []generate.PickupKind
	DamageTaken  float64
	Transitions  []Transition
	PlayerDied   bool
	LevelCleared bool
}

// Transition records an agent changing state.
type Transition struct {
	AgentID  int
	From, To agent.State
}

// Sim is the simulation context. Fields are exported for rendering; only
// Tick and Regenerate mutate them during play.
type Sim struct {
	Level   *gamemap.Level
	Player  Player
	Agents  []*agent.Agent
	Bullets []Bullet
	Pickups []Pickup
	Ticks   int

	cfg     *config.Config
	rng     *rand.Rand
	logger  *slog.Logger
	caster  *visibility.Caster
	nextID  int
	cleared bool
}

// New validates cfg, generates the first level and places everything on it.
// A nil rng is seeded from cfg.Seed, or from the clock when that is zero.
// A nil logger discards output.
func New(cfg *config.Config, rng *rand.Rand, logger *slog.Logger) (*Sim, error) {
	if cfg == nil {
		return nil, errors.New("sim: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	if rng == nil {
		rng = cfg.NewRand()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Sim{cfg: cfg, rng: rng, logger: logger}
	if err := s.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the settings the simulation runs with.
func (s *Sim) Config() *config.Config { return s.cfg }

// Regenerate discards the current level and everything on it and starts a
// fresh one.
func (s *Sim) Regenerate() error {
	gen := s.cfg.Generator(s.rng)
	level, err := generate.Generate(gen)
	if err != nil {
		return fmt.Errorf("sim: regenerate: %w", err)
	}
	if err := s.load(level, generate.Populate(level, gen)); err != nil {
		return err
	}
	s.logger.Info("sim: level generated",
		"level_id", level.ID,
		"rooms", len(level.Rooms),
		"agents", len(s.Agents),
		"pickups", len(s.Pickups),
	)
	return nil
}

// load replaces the level and respawns the player, agents and pickups.
func (s *Sim) load(level *gamemap.Level, pop generate.PopulateResult) error {
	f := s.cfg.Flashlight
	caster, err := visibility.NewCaster(level.Grid, visibility.Params{
		HalfAngle: f.Angle / 2,
		RayCount:  f.Rays,
		MaxRange:  f.Range,
		StepSize:  f.Step,
	})
	if err != nil {
		return fmt.Errorf("sim: %w", err)
	}

	p := s.cfg.Player
	s.Level = level
	s.caster = caster
	s.Player = Player{
		Pos:        level.SpawnPoint(),
		Radius:     p.Radius,
		Health:     p.Health,
		MaxHealth:  p.Health,
		Ammo:       p.Ammo,
		Flashlight: true,
	}
	s.Agents = s.Agents[:0]
	for _, pos := range pop.Agents {
		s.spawnAgent(pos)
	}
	s.Bullets = nil
	s.Pickups = s.Pickups[:0]
	for _, ps := range pop.Pickups {
		s.Pickups = append(s.Pickups, Pickup{Kind: ps.Kind, Pos: ps.Pos})
	}
	s.Ticks = 0
	s.cleared = false
	return nil
}

func (s *Sim) spawnAgent(pos geom.Vec) *agent.Agent {
	s.nextID++
	a := agent.New(s.nextID, pos, s.rng.Float64()*2*math.Pi, s.cfg.Agent)
	s.Agents = append(s.Agents, a)
	return a
}

// Over reports whether the player has died. Ticks are no-ops afterwards.
func (s *Sim) Over() bool { return s.Player.Health <= 0 }

// Cleared reports whether every agent has been eliminated.
func (s *Sim) Cleared() bool { return len(s.Agents) == 0 }

// LightCone returns the flashlight fan in angular order, or nil when the
// flashlight is off.
func (s *Sim) LightCone() []visibility.RayHit {
	if !s.Player.Flashlight {
		return nil
	}
	return s.caster.Cone(s.Player.Pos, s.Player.Facing)
}

// GlowRadius is the radius of the always-lit circle around the player.
func (s *Sim) GlowRadius() float64 { return s.cfg.Flashlight.GlowRadius }

// StateCounts tallies agents by state.
func (s *Sim) StateCounts() map[agent.State]int {
	counts := make(map[agent.State]int, 4)
	for _, a := range s.Agents {
		counts[a.State]++
	}
	return counts
}

// Tick advances the simulation by one step: player, then agents in list
// order, then pickups, then bullets.
func (s *Sim) Tick(in Input) Events {
	var ev Events
	if s.Over() {
		return ev
	}
	grid := s.Level.Grid

	s.movePlayer(in)
	if in.ToggleFlashlight {
		s.Player.Flashlight = !s.Player.Flashlight
	}
	if in.Fire {
		ev.Fired = s.fire()
	}

	for _, a := range s.Agents {
		res := a.Update(grid, s.rng, s.Player.Pos)
		if res.Attacked {
			s.Player.Health -= res.Damage
			ev.DamageTaken += res.Damage
		}
		if res.Changed() {
			ev.Transitions = append(ev.Transitions, Transition{AgentID: a.ID, From: res.From, To: res.To})
			s.logger.Info("sim: agent state changed",
				"level_id", s.Level.ID,
				"agent", a.ID,
				"from", res.From,
				"to", res.To,
				"alert", a.AlertLevel,
			)
		}
	}

	ev.Collected = s.collectPickups()
	ev.Kills = s.moveBullets()

	if s.Over() {
		ev.PlayerDied = true
		s.logger.Info("sim: player died", "level_id", s.Level.ID, "tick", s.Ticks, "agents_left", len(s.Agents))
	}
	if s.Cleared() && !s.cleared {
		s.cleared = true
		ev.LevelCleared = true
		s.logger.Info("sim: level cleared", "level_id", s.Level.ID, "tick", s.Ticks)
	}
	s.Ticks++
	return ev
}

// movePlayer applies the movement and aim input. Each axis is tried on its
// own so the player slides along walls.
func (s *Sim) movePlayer(in Input) {
	p := &s.Player
	dx, dy := float64(sign(in.MoveX)), float64(sign(in.MoveY))
	if dx != 0 && dy != 0 {
		dx *= diagonalScale
		dy *= diagonalScale
	}
	speed := s.cfg.Player.Speed
	grid := s.Level.Grid

	if nx := p.Pos.X + dx*speed; dx != 0 && !grid.IsBlocking(nx, p.Pos.Y) {
		p.Pos.X = nx
	}
	if ny := p.Pos.Y + dy*speed; dy != 0 && !grid.IsBlocking(p.Pos.X, ny) {
		p.Pos.Y = ny
	}
	if in.Aim != nil && *in.Aim != p.Pos {
		p.Facing = geom.Bearing(p.Pos, *in.Aim)
	}
}

// fire spends one round and launches a bullet along the facing.
func (s *Sim) fire() bool {
	p := &s.Player
	if p.Ammo <= 0 {
		return false
	}
	p.Ammo--
	dir := geom.FromAngle(p.Facing)
	s.Bullets = append(s.Bullets, Bullet{
		Pos: p.Pos.Add(dir.Scale(s.cfg.Player.MuzzleOffset)),
		Vel: dir.Scale(s.cfg.Player.BulletSpeed),
	})
	return true
}

func (s *Sim) collectPickups() []generate.PickupKind {
	var collected []generate.PickupKind
	reach := s.cfg.Pickups.Radius + s.Player.Radius
	kept := s.Pickups[:0]
	for _, pk := range s.Pickups {
		if geom.Distance(s.Player.Pos, pk.Pos) >= reach {
			kept = append(kept, pk)
			continue
		}
		switch pk.Kind {
		case generate.PickupAmmo:
			s.Player.Ammo += s.cfg.Pickups.AmmoAmount
		case generate.PickupHealth:
			s.Player.Health = min(s.Player.MaxHealth, s.Player.Health+s.cfg.Pickups.HealthAmount)
		}
		collected = append(collected, pk.Kind)
		s.logger.Debug("sim: pickup collected", "level_id", s.Level.ID, "kind", pk.Kind, "ammo", s.Player.Ammo, "health", s.Player.Health)
	}
	s.Pickups = kept
	return collected
}

// moveBullets advances every bullet, resolves wall and agent hits, and
// returns how many agents died.
func (s *Sim) moveBullets() int {
	grid := s.Level.Grid
	hitR2 := s.cfg.Player.BulletHitRadius * s.cfg.Player.BulletHitRadius
	kills := 0

	alive := s.Bullets[:0]
	for _, b := range s.Bullets {
		b.Pos = b.Pos.Add(b.Vel)
		if grid.IsBlocking(b.Pos.X, b.Pos.Y) {
			continue
		}
		hit := -1
		for i, a := range s.Agents {
			d := b.Pos.Sub(a.Pos)
			if d.X*d.X+d.Y*d.Y < hitR2 {
				hit = i
				break // a bullet hits one guard, the first in list order
			}
		}
		if hit < 0 {
			alive = append(alive, b)
			continue
		}
		a := s.Agents[hit]
		if a.TakeDamage(s.cfg.Player.BulletDamage, s.Player.Pos) {
			s.killAgent(hit)
			kills++
		}
	}
	s.Bullets = alive
	return kills
}

// killAgent removes agent i, keeping the others in order, and maybe drops a
// pickup where it fell.
func (s *Sim) killAgent(i int) {
	a := s.Agents[i]
	s.Agents = append(s.Agents[:i], s.Agents[i+1:]...)
	s.logger.Info("sim: agent killed", "level_id", s.Level.ID, "agent", a.ID, "agents_left", len(s.Agents))

	if s.rng.Float64() < s.cfg.Pickups.DropChance {
		kind := generate.RandomPickupKind(s.rng)
		s.Pickups = append(s.Pickups, Pickup{Kind: kind, Pos: a.Pos})
		s.logger.Debug("sim: pickup dropped", "level_id", s.Level.ID, "kind", kind)
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

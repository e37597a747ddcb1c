// Package agent implements the guard state machine: cone-of-view perception
// feeding an alert accumulator whose thresholds move the guard between
// Patrol, Alert, Chase and Search.
package agent

import (
	"math"
	"math/rand"

	"stealth-shooter/internal/geom"
	"stealth-shooter/internal/visibility"
)

// MaxAlert is the ceiling of the alert accumulator.
const MaxAlert = 100.0

// Agent is a single guard. Fields are exported for renderers and tests;
// mutate them only through Update and TakeDamage during play.
type Agent struct {
	ID         int
	Pos        geom.Vec
	Facing     float64
	Health     float64
	State      State
	AlertLevel float64
	LastKnown  *geom.Vec
	Tuning     Tuning
}

// Result reports what one Update did.
type Result struct {
	From, To  State
	Perceived bool
	Attacked  bool
	Damage    float64 // melee damage dealt to the player this tick
}

// Changed reports whether the tick ended in a different state.
func (r Result) Changed() bool { return r.From != r.To }

// New creates a patrolling agent at pos with full health.
func New(id int, pos geom.Vec, facing float64, t Tuning) *Agent {
	return &Agent{
		ID:     id,
		Pos:    pos,
		Facing: facing,
		Health: t.MaxHealth,
		State:  Patrol,
		Tuning: t,
	}
}

// Dead reports whether health has run out.
func (a *Agent) Dead() bool { return a.Health <= 0 }

// Update runs one tick: perception first, then the handler of whatever state
// perception left the agent in. A state's passive decay is skipped on ticks
// where the player was perceived.
func (a *Agent) Update(grid visibility.Blocker, rng *rand.Rand, player geom.Vec) Result {
	res := Result{From: a.State}
	res.Perceived = a.perceive(grid, player)

	switch a.State {
	case Patrol:
		a.patrol(grid, rng, res.Perceived)
	case Alert:
		a.alert(res.Perceived)
	case Chase:
		res.Damage = a.chase(grid, player)
		res.Attacked = res.Damage > 0
	case Search:
		a.search(grid, res.Perceived)
	}

	res.To = a.State
	return res
}

// CanSee reports whether the player at p is within range, inside the view
// cone and not occluded.
func (a *Agent) CanSee(grid visibility.Blocker, p geom.Vec) bool {
	if geom.Distance(a.Pos, p) > a.Tuning.ViewDistance {
		return false
	}
	if geom.AngleDiff(a.Facing, geom.Bearing(a.Pos, p)) > a.Tuning.HalfViewAngle() {
		return false
	}
	return visibility.HasLineOfSight(grid, a.Pos.X, a.Pos.Y, p.X, p.Y)
}

func (a *Agent) perceive(grid visibility.Blocker, player geom.Vec) bool {
	if !a.CanSee(grid, player) {
		return false
	}
	a.AlertLevel += a.Tuning.AlertGain
	seen := player
	a.LastKnown = &seen

	// Thresholds see the raw value; the ceiling would otherwise hide a
	// crossing of ChaseThreshold.
	switch {
	case a.AlertLevel > a.Tuning.ChaseThreshold:
		a.State = Chase
	case a.AlertLevel > a.Tuning.AlertThreshold:
		if a.State != Chase {
			a.State = Alert
		}
	}
	a.AlertLevel = min(a.AlertLevel, MaxAlert)
	return true
}

func (a *Agent) decay(amount float64) {
	a.AlertLevel = max(0, a.AlertLevel-amount)
}

func (a *Agent) patrol(grid visibility.Blocker, rng *rand.Rand, perceived bool) {
	if !perceived {
		a.decay(a.Tuning.PatrolDecay)
	}
	a.Facing += (rng.Float64() - 0.5) * a.Tuning.PatrolDrift
	if !a.step(grid, a.Tuning.PatrolSpeed) {
		a.Facing += math.Pi / 2
	}
}

func (a *Agent) alert(perceived bool) {
	if a.LastKnown != nil {
		a.Facing = geom.Bearing(a.Pos, *a.LastKnown)
	}
	if perceived {
		return
	}
	a.decay(a.Tuning.AlertDecay)
	if a.AlertLevel < a.Tuning.AlertCalm {
		a.State = Patrol
	}
}

func (a *Agent) chase(grid visibility.Blocker, player geom.Vec) float64 {
	if a.LastKnown == nil {
		a.State = Search
		return 0
	}

	var damage float64
	a.Facing = geom.Bearing(a.Pos, player)
	if geom.Distance(a.Pos, player) > a.Tuning.MeleeRange {
		a.step(grid, a.Tuning.ChaseSpeed)
	} else {
		damage = a.Tuning.MeleeDamage
	}

	if !visibility.HasLineOfSight(grid, a.Pos.X, a.Pos.Y, player.X, player.Y) {
		a.decay(a.Tuning.ChaseLOSLoss)
		if a.AlertLevel < a.Tuning.ChaseGiveUp {
			a.State = Search
		}
	}
	return damage
}

func (a *Agent) search(grid visibility.Blocker, perceived bool) {
	if a.LastKnown != nil {
		target := *a.LastKnown
		if geom.Distance(a.Pos, target) > a.Tuning.ArriveRange {
			a.Facing = geom.Bearing(a.Pos, target)
			a.step(grid, a.Tuning.SearchSpeed)
		} else {
			a.LastKnown = nil
		}
	}
	if perceived {
		return
	}
	a.decay(a.Tuning.SearchDecay)
	if a.AlertLevel < a.Tuning.SearchCalm {
		a.State = Patrol
	}
}

// step moves speed units along the facing unless the destination blocks.
func (a *Agent) step(grid visibility.Blocker, speed float64) bool {
	next := a.Pos.Add(geom.FromAngle(a.Facing).Scale(speed))
	if grid.IsBlocking(next.X, next.Y) {
		return false
	}
	a.Pos = next
	return true
}

// TakeDamage applies a hit and reveals the player: the agent switches to
// Chase at full alert with the player's current position as last known.
// It reports whether the agent died.
func (a *Agent) TakeDamage(amount float64, player geom.Vec) bool {
	a.Health -= amount
	a.State = Chase
	a.AlertLevel = MaxAlert
	seen := player
	a.LastKnown = &seen
	return a.Dead()
}

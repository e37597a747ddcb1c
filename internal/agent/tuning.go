package agent

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTuning is returned by Tuning.Validate.
var ErrInvalidTuning = errors.New("agent: invalid tuning")

// Tuning holds the per-agent constants: senses, thresholds, decay rates,
// speeds and melee. Speeds and ranges are world units (per tick for speeds).
type Tuning struct {
	ViewDistance float64 `yaml:"view_distance"`
	ViewAngle    float64 `yaml:"view_angle"` // full cone width; perception uses half
	Radius       float64 `yaml:"radius"`
	MaxHealth    float64 `yaml:"max_health"`

	AlertGain      float64 `yaml:"alert_gain"`
	AlertThreshold float64 `yaml:"alert_threshold"` // above: Alert
	ChaseThreshold float64 `yaml:"chase_threshold"` // above: Chase
	AlertCalm      float64 `yaml:"alert_calm"`      // Alert below this: Patrol
	ChaseGiveUp    float64 `yaml:"chase_give_up"`   // Chase below this: Search
	SearchCalm     float64 `yaml:"search_calm"`     // Search below this: Patrol

	PatrolDecay  float64 `yaml:"patrol_decay"`
	AlertDecay   float64 `yaml:"alert_decay"`
	SearchDecay  float64 `yaml:"search_decay"`
	ChaseLOSLoss float64 `yaml:"chase_los_loss"`

	PatrolSpeed float64 `yaml:"patrol_speed"`
	PatrolDrift float64 `yaml:"patrol_drift"` // max facing change per tick
	ChaseSpeed  float64 `yaml:"chase_speed"`
	SearchSpeed float64 `yaml:"search_speed"`
	ArriveRange float64 `yaml:"arrive_range"`

	MeleeRange  float64 `yaml:"melee_range"`
	MeleeDamage float64 `yaml:"melee_damage"`
}

// DefaultTuning returns the stock guard.
func DefaultTuning() Tuning {
	return Tuning{
		ViewDistance: 200,
		ViewAngle:    math.Pi / 3,
		Radius:       12,
		MaxHealth:    100,

		AlertGain:      2,
		AlertThreshold: 50,
		ChaseThreshold: 100,
		AlertCalm:      30,
		ChaseGiveUp:    50,
		SearchCalm:     10,

		PatrolDecay:  0.5,
		AlertDecay:   0.3,
		SearchDecay:  0.2,
		ChaseLOSLoss: 1,

		PatrolSpeed: 1,
		PatrolDrift: 0.05,
		ChaseSpeed:  2.5,
		SearchSpeed: 1.5,
		ArriveRange: 20,

		MeleeRange:  30,
		MeleeDamage: 0.5,
	}
}

// HalfViewAngle is the largest facing/bearing difference that still perceives.
func (t Tuning) HalfViewAngle() float64 { return t.ViewAngle / 2 }

// Validate rejects tunings that would make the state machine meaningless.
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"view_distance", t.ViewDistance},
		{"max_health", t.MaxHealth},
		{"alert_gain", t.AlertGain},
		{"patrol_speed", t.PatrolSpeed},
		{"chase_speed", t.ChaseSpeed},
		{"search_speed", t.SearchSpeed},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, p.name, p.v)
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"radius", t.Radius},
		{"patrol_decay", t.PatrolDecay},
		{"alert_decay", t.AlertDecay},
		{"search_decay", t.SearchDecay},
		{"chase_los_loss", t.ChaseLOSLoss},
		{"patrol_drift", t.PatrolDrift},
		{"arrive_range", t.ArriveRange},
		{"melee_range", t.MeleeRange},
		{"melee_damage", t.MeleeDamage},
	}
	for _, p := range nonNegative {
		if !(p.v >= 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidTuning, p.name, p.v)
		}
	}
	if !(t.ViewAngle > 0) || t.ViewAngle > 2*math.Pi {
		return fmt.Errorf("%w: view_angle %v outside (0,2π]", ErrInvalidTuning, t.ViewAngle)
	}
	if !(t.AlertThreshold < t.ChaseThreshold) || t.ChaseThreshold > MaxAlert {
		return fmt.Errorf("%w: thresholds must satisfy alert < chase <= %v", ErrInvalidTuning, MaxAlert)
	}
	return nil
}

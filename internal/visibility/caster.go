package visibility

import (
	"errors"
	"fmt"
	"math"

	"stealth-shooter/internal/geom"
)

// ErrInvalidParams is returned by NewCaster for unusable cone parameters.
var ErrInvalidParams = errors.New("visibility: invalid params")

// Params configures a cone caster.
type Params struct {
	HalfAngle float64 // radians either side of the facing
	RayCount  int     // the cone casts RayCount+1 rays
	MaxRange  float64 // world units
	StepSize  float64 // world units per march step
}

// Validate reports whether p describes a usable cone.
func (p Params) Validate() error {
	switch {
	case !(p.MaxRange > 0) || math.IsInf(p.MaxRange, 0):
		return fmt.Errorf("%w: max range %v must be positive", ErrInvalidParams, p.MaxRange)
	case !(p.StepSize > 0):
		return fmt.Errorf("%w: step size %v must be positive", ErrInvalidParams, p.StepSize)
	case p.RayCount <= 0:
		return fmt.Errorf("%w: ray count %d must be positive", ErrInvalidParams, p.RayCount)
	case !(p.HalfAngle >= 0) || p.HalfAngle > math.Pi:
		return fmt.Errorf("%w: half angle %v outside [0,π]", ErrInvalidParams, p.HalfAngle)
	}
	return nil
}

// Caster binds a Blocker to validated cone parameters.
type Caster struct {
	grid   Blocker
	params Params
}

// NewCaster validates p and returns a Caster over grid.
func NewCaster(grid Blocker, p Params) (*Caster, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: grid is required", ErrInvalidParams)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Caster{grid: grid, params: p}, nil
}

// Params returns the caster's parameters.
func (c *Caster) Params() Params { return c.params }

// Cast casts a single ray from origin along angle.
func (c *Caster) Cast(origin geom.Vec, angle float64) RayHit {
	return Cast(c.grid, origin.X, origin.Y, angle, c.params.MaxRange, c.params.StepSize)
}

// Cone casts the configured fan centered on facing.
func (c *Caster) Cone(origin geom.Vec, facing float64) []RayHit {
	p := c.params
	return CastCone(c.grid, origin.X, origin.Y, facing, p.HalfAngle, p.RayCount, p.MaxRange, p.StepSize)
}

// HasLineOfSight reports whether to is visible from from.
func (c *Caster) HasLineOfSight(from, to geom.Vec) bool {
	return HasLineOfSight(c.grid, from.X, from.Y, to.X, to.Y)
}

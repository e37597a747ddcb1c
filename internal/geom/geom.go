// Package geom holds the small amount of plane geometry shared by the
// visibility, agent and simulation packages. All values are world units and
// radians.
package geom

import "math"

// Vec is a point or offset in world coordinates.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// FromAngle returns the unit vector pointing along angle.
func FromAngle(angle float64) Vec {
	return Vec{math.Cos(angle), math.Sin(angle)}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec) float64 {
	return b.Sub(a).Len()
}

// Bearing returns the angle from a toward b, in (-π, π].
func Bearing(a, b Vec) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// AngleDiff returns the shorter angular distance between a and b, in [0, π].
// Inputs need not be normalized.
func AngleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

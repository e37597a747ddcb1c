// Package visibility answers sightline questions against the tile grid:
// single rays, fans of rays (cones) for lighting, and coarse line-of-sight
// tests for perception.
package visibility

import "math"

// Blocker reports whether a world point stops rays.
// *gamemap.Grid satisfies it.
type Blocker interface {
	IsBlocking(x, y float64) bool
}

// RayHit is the result of one cast: the first obstructed point, or the point
// at maximum range when nothing was hit.
type RayHit struct {
	X, Y     float64
	Distance float64
	Blocked  bool
}

// Cast marches from (ox, oy) along angle in increments of step and returns the
// first sample that lands on a blocking cell. An unobstructed ray ends exactly
// at maxRange. Non-positive maxRange or step yields a zero-length hit at the
// origin.
func Cast(b Blocker, ox, oy, angle, maxRange, step float64) RayHit {
	if !(maxRange > 0) || !(step > 0) {
		return RayHit{X: ox, Y: oy}
	}
	cos, sin := math.Cos(angle), math.Sin(angle)

	x, y := ox, oy
	distance := 0.0
	for distance < maxRange {
		// The last step is shortened so no sample lands past maxRange.
		s := min(step, maxRange-distance)
		x += cos * s
		y += sin * s
		distance += s
		if b.IsBlocking(x, y) {
			return RayHit{X: x, Y: y, Distance: distance, Blocked: true}
		}
	}
	return RayHit{X: ox + cos*maxRange, Y: oy + sin*maxRange, Distance: maxRange}
}

// CastCone casts rayCount+1 rays evenly spread over
// [centerAngle-halfAngle, centerAngle+halfAngle], both ends included, and
// returns the hits in angular order. Consumers rely on that order to build a
// polygon boundary.
func CastCone(b Blocker, ox, oy, centerAngle, halfAngle float64, rayCount int, maxRange, step float64) []RayHit {
	if rayCount <= 0 {
		return nil
	}
	hits := make([]RayHit, rayCount+1)
	start := centerAngle - halfAngle
	span := 2 * halfAngle
	for i := 0; i <= rayCount; i++ {
		a := start + span*float64(i)/float64(rayCount)
		hits[i] = Cast(b, ox, oy, a, maxRange, step)
	}
	return hits
}

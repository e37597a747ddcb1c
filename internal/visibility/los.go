package visibility

import "math"

// LOSSpacing is the approximate distance between line-of-sight samples.
const LOSSpacing = 10.0

// HasLineOfSight samples the segment from (fx, fy) to (tx, ty) at
// floor(distance/LOSSpacing) even divisions, endpoints excluded, and reports
// false as soon as a sample is blocked.
//
// The test is not guaranteed to be symmetric: samples are laid out from the
// origin side, so A→B and B→A can disagree when the segment grazes a wall
// corner. Segments shorter than 2*LOSSpacing have no interior samples and are
// always clear.
func HasLineOfSight(b Blocker, fx, fy, tx, ty float64) bool {
	dx := tx - fx
	dy := ty - fy
	steps := int(math.Floor(math.Hypot(dx, dy) / LOSSpacing))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		if b.IsBlocking(fx+dx*t, fy+dy*t) {
			return false
		}
	}
	return true
}

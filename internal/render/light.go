package render

import (
	"math"

	"stealth-shooter/internal/geom"
	"stealth-shooter/internal/visibility"
)

// Light answers "is this world point lit?" for one frame: inside the
// flashlight fan (up to where each ray stopped) or within the glow radius
// around the player.
type Light struct {
	Origin geom.Vec
	Facing float64
	Half   float64
	Cone   []visibility.RayHit
	Glow   float64
	// Slack extends each ray so the wall cell that stopped it is lit too.
	Slack float64
}

// Lit reports whether p is lit.
func (l Light) Lit(p geom.Vec) bool {
	d := geom.Distance(l.Origin, p)
	if d <= l.Glow {
		return true
	}
	if len(l.Cone) == 0 {
		return false
	}
	if geom.AngleDiff(l.Facing, geom.Bearing(l.Origin, p)) > l.Half {
		return false
	}
	return d <= l.Cone[l.rayIndex(p)].Distance+l.Slack
}

// rayIndex picks the cone ray nearest in angle to p.
func (l Light) rayIndex(p geom.Vec) int {
	n := len(l.Cone)
	span := 2 * l.Half
	if n == 1 || span <= 0 {
		return 0
	}
	start := l.Facing - l.Half
	off := math.Mod(geom.Bearing(l.Origin, p)-start, 2*math.Pi)
	if off < 0 {
		off += 2 * math.Pi
	}
	if off > math.Pi+l.Half {
		// Just before the first ray.
		off -= 2 * math.Pi
	}
	i := int(math.Round(off / span * float64(n-1)))
	return min(max(i, 0), n-1)
}

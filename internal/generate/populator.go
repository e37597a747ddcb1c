package generate

import (
	"math/rand"

	"stealth-shooter/internal/gamemap"
	"stealth-shooter/internal/geom"
)

// PickupKind identifies what a pickup restores.
type PickupKind uint8

const (
	PickupAmmo PickupKind = iota
	PickupHealth
)

func (k PickupKind) String() string {
	if k == PickupHealth {
		return "health"
	}
	return "ammo"
}

// RandomPickupKind returns ammo or health with equal probability.
func RandomPickupKind(rng *rand.Rand) PickupKind {
	if rng.Float64() > 0.5 {
		return PickupAmmo
	}
	return PickupHealth
}

// PickupSpawn describes one pickup to create.
type PickupSpawn struct {
	Kind PickupKind
	Pos  geom.Vec
}

// PopulateResult is returned by Populate with world-space spawn data.
type PopulateResult struct {
	Agents  []geom.Vec
	Pickups []PickupSpawn
}

// Populate places agents and pickups in every room except the spawn room.
func Populate(level *gamemap.Level, cfg *Config) PopulateResult {
	var result PopulateResult
	rng := cfg.rng()
	grid := level.Grid
	cs := grid.CellSize

	for _, room := range level.Rooms[min(1, len(level.Rooms)):] {
		center := room.WorldCenter(cs)
		result.Agents = append(result.Agents, openPointIn(grid, room, center))

		// Large rooms sometimes hold a second guard near the first.
		if room.W > 6 && room.H > 6 && rng.Float64() > 0.5 {
			p := geom.Vec{
				X: center.X + (rng.Float64()-0.5)*float64(room.W)*cs*0.5,
				Y: center.Y + (rng.Float64()-0.5)*float64(room.H)*cs*0.5,
			}
			result.Agents = append(result.Agents, openPointIn(grid, room, p))
		}
	}

	for _, room := range level.Rooms[min(1, len(level.Rooms)):] {
		if rng.Float64() > cfg.PickupChance {
			continue
		}
		// Keep one cell clear of the room's walls when the room is wide enough.
		p := geom.Vec{
			X: (float64(room.X) + 1 + rng.Float64()*float64(max(room.W-2, 0))) * cs,
			Y: (float64(room.Y) + 1 + rng.Float64()*float64(max(room.H-2, 0))) * cs,
		}
		result.Pickups = append(result.Pickups, PickupSpawn{
			Kind: RandomPickupKind(rng),
			Pos:  openPointIn(grid, room, p),
		})
	}

	n := len(level.Rooms)
	if n > 3 {
		mid := level.Rooms[n/2]
		result.Pickups = append(result.Pickups, PickupSpawn{
			Kind: PickupAmmo,
			Pos:  openPointIn(grid, mid, mid.WorldCenter(cs)),
		})
	}
	if n > 5 {
		late := level.Rooms[int(float64(n)*0.75)]
		result.Pickups = append(result.Pickups, PickupSpawn{
			Kind: PickupHealth,
			Pos:  openPointIn(grid, late, late.WorldCenter(cs)),
		})
	}
	return result
}

// openPointIn returns p if it is on a non-blocking cell inside room,
// otherwise the center of the nearest floor cell inside room. Falls back to p
// when the room has no floor.
func openPointIn(grid *gamemap.Grid, room gamemap.Rect, p geom.Vec) geom.Vec {
	if x, y, ok := grid.CellAt(p.X, p.Y); ok && room.Contains(x, y) && !grid.IsBlocking(p.X, p.Y) {
		return p
	}
	cs := grid.CellSize
	best, bestDist := p, -1.0
	for y := room.Y; y < room.Y+room.H; y++ {
		for x := room.X; x < room.X+room.W; x++ {
			if grid.At(x, y) != gamemap.TileFloor {
				continue
			}
			c := geom.Vec{X: (float64(x) + 0.5) * cs, Y: (float64(y) + 0.5) * cs}
			if d := geom.Distance(p, c); bestDist < 0 || d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	return best
}

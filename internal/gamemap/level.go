package gamemap

import (
	"stealth-shooter/internal/geom"

	"github.com/google/uuid"
)

// Level is one generated dungeon: the grid plus its rooms in creation order.
// Rooms[0] is the player spawn room.
type Level struct {
	ID    uuid.UUID
	Grid  *Grid
	Rooms []Rect
}

// NewLevel wraps a generated grid and room list with a fresh level ID.
func NewLevel(grid *Grid, rooms []Rect) *Level {
	return &Level{ID: uuid.New(), Grid: grid, Rooms: rooms}
}

// SpawnPoint returns the world-space center of the spawn room.
func (l *Level) SpawnPoint() geom.Vec {
	if len(l.Rooms) == 0 {
		return geom.Vec{X: l.Grid.CellSize * 1.5, Y: l.Grid.CellSize * 1.5}
	}
	return l.Rooms[0].WorldCenter(l.Grid.CellSize)
}

package gamemap

// TileKind identifies the classification of one grid cell.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileCover
)

// Blocks reports whether the kind stops movement and rays.
// Cover blocks exactly like Wall; it differs only in how it is drawn.
func (k TileKind) Blocks() bool {
	return k != TileFloor
}

func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileCover:
		return "cover"
	}
	return "unknown"
}

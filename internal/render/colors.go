package render

import (
	"stealth-shooter/assets"
	"stealth-shooter/internal/agent"
	"stealth-shooter/internal/generate"

	"github.com/gdamore/tcell/v2"
)

// Glyphs for things drawn on top of the map.
const (
	GlyphPlayer = "🥷"
	GlyphGuard  = "💂"
	GlyphAmmo   = "📦"
	GlyphHealth = "💊"
	GlyphBullet = '•'
)

// Terrain runes. Each fills both columns of a cell.
const (
	runeWall  = '█'
	runeCover = '▒'
	runeFloor = '·'
)

// Theme is a palette resolved to terminal colors.
type Theme struct {
	Name       string
	Wall       tcell.Color
	WallStroke tcell.Color
	Floor      tcell.Color
	FloorAlt   tcell.Color
	Cover      tcell.Color
	Fog        tcell.Color
	Flashlight tcell.Color
}

// NewTheme converts a palette's hex colors.
func NewTheme(p assets.Palette) Theme {
	return Theme{
		Name:       p.Name,
		Wall:       tcell.GetColor(p.Wall),
		WallStroke: tcell.GetColor(p.WallStroke),
		Floor:      tcell.GetColor(p.Floor),
		FloorAlt:   tcell.GetColor(p.FloorAlt),
		Cover:      tcell.GetColor(p.Cover),
		Fog:        tcell.GetColor(p.Fog),
		Flashlight: tcell.NewRGBColor(int32(p.Flashlight.R), int32(p.Flashlight.G), int32(p.Flashlight.B)),
	}
}

// StateColor is the background behind a guard glyph, so its mood shows even
// though emoji cannot be tinted.
func StateColor(s agent.State) tcell.Color {
	switch s {
	case agent.Alert:
		return tcell.ColorYellow
	case agent.Chase:
		return tcell.ColorDarkRed
	case agent.Search:
		return tcell.ColorOrange
	}
	return tcell.ColorDimGray
}

// PickupGlyph returns the glyph for a pickup kind.
func PickupGlyph(k generate.PickupKind) string {
	if k == generate.PickupHealth {
		return GlyphHealth
	}
	return GlyphAmmo
}

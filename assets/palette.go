// Package assets holds the level themes. Colors are "#rrggbb" strings so the
// data stays independent of any terminal library.
package assets

import (
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a flashlight tint.
type RGB struct {
	R, G, B uint8
}

// Palette is one level theme.
type Palette struct {
	Name       string
	Wall       string
	WallStroke string
	Floor      string
	FloorAlt   string
	Cover      string
	Fog        string // unlit floor
	Flashlight RGB
}

// Palettes lists the hand-made themes.
var Palettes = []Palette{
	{
		Name:       "Warehouse",
		Wall:       "#1a1a2e",
		WallStroke: "#2a2a4e",
		Floor:      "#0d0d15",
		FloorAlt:   "#12121a",
		Cover:      "#2a2a3e",
		Fog:        "#0a0a15",
		Flashlight: RGB{255, 255, 240},
	},
	{
		Name:       "Basement",
		Wall:       "#1c2e1a",
		WallStroke: "#2e4a2a",
		Floor:      "#0d150d",
		FloorAlt:   "#121a12",
		Cover:      "#2a3e2a",
		Fog:        "#0a150a",
		Flashlight: RGB{255, 250, 220},
	},
	{
		Name:       "Mansion",
		Wall:       "#2e1a1a",
		WallStroke: "#4a2a2a",
		Floor:      "#150d0d",
		FloorAlt:   "#1a1212",
		Cover:      "#3e2a2a",
		Fog:        "#150a0a",
		Flashlight: RGB{255, 240, 220},
	},
	{
		Name:       "Laboratory",
		Wall:       "#1a2a2e",
		WallStroke: "#2a4a5e",
		Floor:      "#0d1215",
		FloorAlt:   "#101518",
		Cover:      "#2a3a4e",
		Fog:        "#0a1015",
		Flashlight: RGB{240, 250, 255},
	},
	{
		Name:       "Prison",
		Wall:       "#2e2215",
		WallStroke: "#4a3a25",
		Floor:      "#15100a",
		FloorAlt:   "#1a140d",
		Cover:      "#3e3020",
		Fog:        "#100a05",
		Flashlight: RGB{255, 230, 200},
	},
	{
		Name:       "Neon",
		Wall:       "#1a1a2e",
		WallStroke: "#4a2a6e",
		Floor:      "#0d0d18",
		FloorAlt:   "#12101f",
		Cover:      "#2e2a4e",
		Fog:        "#0f0a18",
		Flashlight: RGB{230, 200, 255},
	},
	{
		Name:       "Hospital",
		Wall:       "#202528",
		WallStroke: "#354040",
		Floor:      "#101515",
		FloorAlt:   "#151a1a",
		Cover:      "#2a3535",
		Fog:        "#0a1212",
		Flashlight: RGB{240, 255, 250},
	},
	{
		Name:       "Bunker",
		Wall:       "#252525",
		WallStroke: "#404040",
		Floor:      "#121212",
		FloorAlt:   "#181818",
		Cover:      "#353535",
		Fog:        "#0d0d0d",
		Flashlight: RGB{255, 245, 230},
	},
}

// ProceduralChance is how often PickPalette invents a theme instead of
// choosing a hand-made one.
const ProceduralChance = 0.2

// PickPalette returns a random theme for a new level.
func PickPalette(rng *rand.Rand) Palette {
	if rng.Float64() < ProceduralChance {
		return ProceduralPalette(rng.Float64() * 360)
	}
	return Palettes[rng.Intn(len(Palettes))]
}

// ProceduralPalette builds a muted theme around hue (degrees). Saturation is
// fixed so the same hue always yields the same palette.
func ProceduralPalette(hue float64) Palette {
	const sat = 0.35
	hex := func(s, l float64) string {
		return colorful.Hsl(hue, s, l).Clamped().Hex()
	}
	r, g, b := colorful.Hsl(mod360(hue+30), 0.2, 0.95).Clamped().RGB255()
	return Palette{
		Name:       "Random",
		Wall:       hex(sat, 0.15),
		WallStroke: hex(sat, 0.25),
		Floor:      hex(sat*0.5, 0.08),
		FloorAlt:   hex(sat*0.5, 0.10),
		Cover:      hex(sat, 0.20),
		Fog:        hex(sat*0.5, 0.05),
		Flashlight: RGB{r, g, b},
	}
}

func mod360(h float64) float64 {
	for h >= 360 {
		h -= 360
	}
	return h
}

package render

import (
	"stealth-shooter/internal/gamemap"
	"stealth-shooter/internal/geom"
	"stealth-shooter/internal/sim"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDHeight is the number of rows reserved at the bottom of the screen.
const HUDHeight = 4

// Renderer draws the simulation onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, cellSize float64, theme Theme) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(w, max(h-HUDHeight, 1), cellSize),
		theme:  theme,
	}
}

// SetTheme switches the palette, e.g. for a new level.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// Theme returns the current palette.
func (r *Renderer) Theme() Theme { return r.theme }

// Resize re-reads the screen size after a resize event.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-HUDHeight, 1)
}

// ScreenToWorld converts a terminal cell (e.g. the mouse) to a world point.
func (r *Renderer) ScreenToWorld(sx, sy int) geom.Vec {
	return r.camera.ScreenToWorld(sx, sy)
}

// Camera exposes the current view.
func (r *Renderer) Camera() *Camera { return r.camera }

// LightFor builds the frame's lighting from the simulation state.
func LightFor(s *sim.Sim) Light {
	cfg := s.Config()
	return Light{
		Origin: s.Player.Pos,
		Facing: s.Player.Facing,
		Half:   cfg.Flashlight.Angle / 2,
		Cone:   s.LightCone(),
		Glow:   s.GlowRadius(),
		Slack:  cfg.Level.CellSize * 0.75,
	}
}

// DrawFrame renders terrain, pickups, bullets, guards and the player. The HUD
// is drawn separately by DrawHUD, which also shows the frame.
func (r *Renderer) DrawFrame(s *sim.Sim) {
	r.screen.Clear()
	r.camera.CellSize = s.Level.Grid.CellSize
	r.camera.Center(s.Player.Pos)
	light := LightFor(s)

	r.drawMap(s.Level.Grid, light)

	for _, p := range s.Pickups {
		if light.Lit(p.Pos) {
			r.drawAt(p.Pos, PickupGlyph(p.Kind), r.floorStyle())
		}
	}
	bulletStyle := r.floorStyle().Foreground(r.theme.Flashlight)
	for _, b := range s.Bullets {
		if sx, sy, ok := r.camera.WorldToScreen(b.Pos); ok {
			r.screen.SetContent(sx, sy, GlyphBullet, nil, bulletStyle)
		}
	}
	for _, a := range s.Agents {
		if light.Lit(a.Pos) {
			r.drawAt(a.Pos, GlyphGuard, tcell.StyleDefault.Background(StateColor(a.State)))
		}
	}
	r.drawAt(s.Player.Pos, GlyphPlayer, r.floorStyle())
}

func (r *Renderer) floorStyle() tcell.Style {
	return tcell.StyleDefault.Background(r.theme.Floor)
}

// drawMap renders every on-screen cell, lit or fogged.
func (r *Renderer) drawMap(grid *gamemap.Grid, light Light) {
	t := r.theme
	cs := grid.CellSize
	cols := r.camera.ViewWidth/2 + 1

	for y := r.camera.OffsetY; y < r.camera.OffsetY+r.camera.ViewHeight; y++ {
		for x := r.camera.OffsetX; x < r.camera.OffsetX+cols; x++ {
			if !grid.InBounds(x, y) {
				continue
			}
			sx, sy, onScreen := r.camera.CellToScreen(x, y)
			if !onScreen {
				continue
			}
			center := geom.Vec{X: (float64(x) + 0.5) * cs, Y: (float64(y) + 0.5) * cs}
			lit := light.Lit(center)

			var ch rune
			var style tcell.Style
			switch kind := grid.At(x, y); {
			case kind == gamemap.TileWall && lit:
				ch, style = runeWall, tcell.StyleDefault.Foreground(t.WallStroke).Background(t.Wall)
			case kind == gamemap.TileWall:
				ch, style = runeWall, tcell.StyleDefault.Foreground(t.Wall).Background(t.Fog)
			case kind == gamemap.TileCover && lit:
				ch, style = runeCover, tcell.StyleDefault.Foreground(t.Cover).Background(t.Floor)
			case kind == gamemap.TileCover:
				ch, style = runeCover, tcell.StyleDefault.Foreground(t.Wall).Background(t.Fog)
			case lit:
				bg := t.Floor
				if (x+y)%2 == 1 {
					bg = t.FloorAlt
				}
				ch, style = runeFloor, tcell.StyleDefault.Foreground(t.Flashlight).Background(bg)
			default:
				ch, style = ' ', tcell.StyleDefault.Background(t.Fog)
			}
			r.putCell(sx, sy, ch, style)
		}
	}
}

// putCell fills both columns of a grid cell with ch.
func (r *Renderer) putCell(sx, sy int, ch rune, style tcell.Style) {
	r.screen.SetContent(sx, sy, ch, nil, style)
	if sx+1 < r.camera.ViewWidth {
		r.screen.SetContent(sx+1, sy, ch, nil, style)
	}
}

// drawAt draws glyph over the cell containing world point p.
func (r *Renderer) drawAt(p geom.Vec, glyph string, style tcell.Style) {
	if sx, sy, ok := r.camera.WorldToScreen(p); ok {
		r.putGlyph(sx, sy, glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

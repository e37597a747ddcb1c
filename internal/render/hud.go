package render

import (
	"fmt"

	"stealth-shooter/internal/agent"
	"stealth-shooter/internal/sim"

	"github.com/gdamore/tcell/v2"
)

// StatusLine summarizes the player and the guards in one row. Guard counts
// read alert, chase and search in that order. The line fits an 80-column
// terminal.
func StatusLine(s *sim.Sim, themeName string) string {
	p := s.Player
	light := "off"
	if p.Flashlight {
		light = "on"
	}
	counts := s.StateCounts()
	return fmt.Sprintf("HP %.0f/%.0f  AMMO %d  GUARDS %d (A%d C%d S%d)  LIGHT %s  [%s]",
		max(p.Health, 0), p.MaxHealth, p.Ammo, len(s.Agents),
		counts[agent.Alert], counts[agent.Chase], counts[agent.Search],
		light, themeName)
}

// DrawHUD renders the status bar, the last messages and, when the level has
// ended, a banner. It then shows the frame.
func (r *Renderer) DrawHUD(s *sim.Sim, messages []string) {
	screenW, screenH := r.screen.Size()
	hudY := screenH - HUDHeight

	r.drawHLine(hudY, tcell.ColorGray)
	r.drawText(0, hudY+1, StatusLine(s, r.theme.Name), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Message log (last 2 messages).
	start := max(len(messages)-2, 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	var banner string
	var color tcell.Color
	switch {
	case s.Over():
		banner, color = "YOU DIED.  r: new level   q: quit", tcell.ColorRed
	case s.Cleared():
		banner, color = "LEVEL CLEARED.  r: new level   q: quit", tcell.ColorLime
	}
	if banner != "" {
		x := max((screenW-len(banner))/2, 0)
		r.drawText(x, hudY/2, banner, tcell.StyleDefault.Foreground(color).Background(tcell.ColorBlack).Bold(true))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}

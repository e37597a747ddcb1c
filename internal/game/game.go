// Package game runs the interactive terminal session: it reads keyboard and
// mouse input, ticks the simulation at a fixed rate and redraws every frame.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"stealth-shooter/assets"
	"stealth-shooter/internal/agent"
	"stealth-shooter/internal/config"
	"stealth-shooter/internal/generate"
	"stealth-shooter/internal/geom"
	"stealth-shooter/internal/render"
	"stealth-shooter/internal/sim"

	"github.com/gdamore/tcell/v2"
)

// maxMessages bounds the message log.
const maxMessages = 50

// Game is the top-level orchestrator.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	sim      *sim.Sim
	cfg      *config.Config
	rng      *rand.Rand
	logger   *slog.Logger
	messages []string

	held   heldKeys
	fire   bool // latched until the next tick
	toggle bool

	mouseSeen      bool
	mouseX, mouseY int
	buttonDown     bool
}

// New creates the terminal screen and a Game on it.
func New(cfg *config.Config, logger *slog.Logger) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	g, err := newGame(screen, cfg, nil, logger)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return g, nil
}

// newGame wires a Game to an initialized screen. A nil rng is seeded from
// cfg.Seed (or the clock); it drives the simulation and the palette choice.
func newGame(screen tcell.Screen, cfg *config.Config, rng *rand.Rand, logger *slog.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if rng == nil {
		rng = cfg.NewRand()
	}

	s, err := sim.New(cfg, rng, logger)
	if err != nil {
		return nil, err
	}
	g := &Game{
		screen: screen,
		sim:    s,
		cfg:    cfg,
		rng:    rng,
		logger: logger,
	}
	g.renderer = render.NewRenderer(screen, cfg.Level.CellSize, render.NewTheme(assets.PickPalette(rng)))
	g.addMessage("WASD/arrows move, mouse aims, click or space fires, f flashlight, r new level, q quits.")
	g.addMessage(fmt.Sprintf("You slip into the %s. %d guards on patrol.", g.renderer.Theme().Name, len(s.Agents)))
	return g, nil
}

// Run is the main loop. It returns when the player quits or the screen closes.
func (g *Game) Run() {
	defer g.screen.Fini()

	// Start an async input reader goroutine.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	rate := max(g.cfg.TickRate, 1)
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	g.logger.Info("game: session started", "tick_rate", rate, "theme", g.renderer.Theme().Name)
	g.draw()
	for {
		select {
		case ev, ok := <-eventCh:
			if !ok {
				return // screen closed
			}
			if !g.handleEvent(ev, time.Now()) {
				g.logger.Info("game: session ended", "ticks", g.sim.Ticks)
				return
			}
		case now := <-ticker.C:
			g.step(now)
			g.draw()
		}
	}
}

// handleEvent applies one terminal event. It returns false when the player
// asked to quit.
func (g *Game) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventMouse:
		g.mouseX, g.mouseY = ev.Position()
		g.mouseSeen = true
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !g.buttonDown {
			g.fire = true
		}
		g.buttonDown = down
	case *tcell.EventKey:
		action := keyToAction(ev)
		switch action {
		case ActionQuit:
			return false
		case ActionMoveN, ActionMoveS, ActionMoveE, ActionMoveW:
			g.held.press(action, now)
		case ActionFire:
			g.fire = true
		case ActionFlashlight:
			g.toggle = !g.toggle
		case ActionRegenerate:
			g.regenerate()
		}
	}
	return true
}

// input collects the latched and held input for the next tick.
func (g *Game) input(now time.Time) sim.Input {
	dx, dy := g.held.direction(now)
	in := sim.Input{
		MoveX:            dx,
		MoveY:            dy,
		Fire:             g.fire,
		ToggleFlashlight: g.toggle,
	}
	switch {
	case g.mouseSeen:
		aim := g.renderer.ScreenToWorld(g.mouseX, g.mouseY)
		in.Aim = &aim
	case dx != 0 || dy != 0:
		// Without a mouse the player faces where they walk. The point sits
		// far enough ahead to stay in front after this tick's step.
		ahead := geom.Vec{X: float64(dx), Y: float64(dy)}.Scale(g.cfg.Level.CellSize + 100*g.cfg.Player.Speed)
		aim := g.sim.Player.Pos.Add(ahead)
		in.Aim = &aim
	}
	g.fire, g.toggle = false, false
	return in
}

// step advances the simulation one tick and turns its events into messages.
func (g *Game) step(now time.Time) {
	if g.sim.Over() {
		g.fire, g.toggle = false, false
		return
	}
	in := g.input(now)
	ev := g.sim.Tick(in)
	g.report(in, ev)
}

func (g *Game) report(in sim.Input, ev sim.Events) {
	if in.Fire && !ev.Fired {
		g.addMessage("Click. Out of ammo.")
	}
	if in.ToggleFlashlight {
		if g.sim.Player.Flashlight {
			g.addMessage("Flashlight on.")
		} else {
			g.addMessage("Flashlight off. Only your glow is left.")
		}
	}
	for _, t := range ev.Transitions {
		if msg := transitionMessage(t); msg != "" {
			g.addMessage(msg)
		}
	}
	switch {
	case ev.Kills == 1:
		g.addMessage(fmt.Sprintf("Guard down. %d left.", len(g.sim.Agents)))
	case ev.Kills > 1:
		g.addMessage(fmt.Sprintf("%d guards down. %d left.", ev.Kills, len(g.sim.Agents)))
	}
	for _, k := range ev.Collected {
		switch k {
		case generate.PickupAmmo:
			g.addMessage(fmt.Sprintf("You grab ammo. (+%d)", g.cfg.Pickups.AmmoAmount))
		case generate.PickupHealth:
			g.addMessage(fmt.Sprintf("You patch yourself up. (+%.0f HP)", g.cfg.Pickups.HealthAmount))
		}
	}
	if ev.PlayerDied {
		g.addMessage("The guards got you.")
	}
	if ev.LevelCleared {
		g.addMessage("The last guard falls. Press r for a new level.")
	}
}

// transitionMessage describes a guard's state change, or returns "" for
// changes the player would not notice.
func transitionMessage(t sim.Transition) string {
	switch {
	case t.To == agent.Chase:
		return fmt.Sprintf("Guard #%d spotted you!", t.AgentID)
	case t.From == agent.Patrol && t.To == agent.Alert:
		return fmt.Sprintf("Guard #%d heard something.", t.AgentID)
	case t.From == agent.Chase && t.To == agent.Search:
		return fmt.Sprintf("Guard #%d lost your trail.", t.AgentID)
	}
	return ""
}

// regenerate builds a fresh level with a new palette.
func (g *Game) regenerate() {
	if err := g.sim.Regenerate(); err != nil {
		g.logger.Error("game: regenerate failed", "error", err)
		g.addMessage(fmt.Sprintf("Could not build a new level: %v", err))
		return
	}
	g.held.clear()
	g.fire, g.toggle = false, false
	g.renderer.SetTheme(render.NewTheme(assets.PickPalette(g.rng)))
	g.addMessage(fmt.Sprintf("New level: the %s. %d guards on patrol.", g.renderer.Theme().Name, len(g.sim.Agents)))
}

func (g *Game) draw() {
	g.renderer.DrawFrame(g.sim)
	g.renderer.DrawHUD(g.sim, g.messages)
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

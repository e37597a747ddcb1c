package game

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionFire
	ActionFlashlight
	ActionRegenerate
	ActionQuit
)

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'w', 'W':
		return ActionMoveN
	case 's', 'S':
		return ActionMoveS
	case 'd', 'D':
		return ActionMoveE
	case 'a', 'A':
		return ActionMoveW
	case ' ':
		return ActionFire
	case 'f', 'F':
		return ActionFlashlight
	case 'r', 'R':
		return ActionRegenerate
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a movement action to (dx, dy).
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionMoveN:
		return 0, -1
	case ActionMoveS:
		return 0, 1
	case ActionMoveE:
		return 1, 0
	case ActionMoveW:
		return -1, 0
	}
	return 0, 0
}

// holdDuration is how long one key press keeps a direction held. It spans
// the gap between a terminal's auto-repeat events.
const holdDuration = 200 * time.Millisecond

// heldKeys tracks movement keys as held. Terminals report presses (and
// auto-repeats) but never releases, so a direction stays down until its
// last press expires.
type heldKeys struct {
	until map[Action]time.Time
}

// opposite returns the movement action that cancels a.
func opposite(a Action) Action {
	switch a {
	case ActionMoveN:
		return ActionMoveS
	case ActionMoveS:
		return ActionMoveN
	case ActionMoveE:
		return ActionMoveW
	case ActionMoveW:
		return ActionMoveE
	}
	return ActionNone
}

// press marks the direction of a as held until now+holdDuration. Pressing a
// direction releases its opposite. Non-movement actions are ignored.
func (h *heldKeys) press(a Action, now time.Time) {
	if dx, dy := actionToDelta(a); dx == 0 && dy == 0 {
		return
	}
	if h.until == nil {
		h.until = make(map[Action]time.Time, 4)
	}
	h.until[a] = now.Add(holdDuration)
	delete(h.until, opposite(a))
}

// direction returns the combined held direction at now.
func (h *heldKeys) direction(now time.Time) (dx, dy int) {
	for a, until := range h.until {
		if now.Before(until) {
			ax, ay := actionToDelta(a)
			dx += ax
			dy += ay
		}
	}
	return dx, dy
}

func (h *heldKeys) clear() { clear(h.until) }

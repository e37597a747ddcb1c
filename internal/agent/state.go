package agent

// State is an agent's behavior mode.
type State uint8

const (
	Patrol State = iota // wander, decay alertness
	Alert               // turn toward the last sighting
	Chase               // pursue and melee the player
	Search              // walk to the last sighting
)

func (s State) String() string {
	switch s {
	case Patrol:
		return "patrol"
	case Alert:
		return "alert"
	case Chase:
		return "chase"
	case Search:
		return "search"
	}
	return "unknown"
}

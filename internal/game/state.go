package game

// State is the top-level game mode. Exactly one is active at a time.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns the string representation of the game state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event is a trigger that may move the state machine.
type Event int

const (
	EventStart       Event = iota // name confirmed on the menu
	EventPauseToggle              // pause key
	EventCollide                  // player hit an obstacle
	EventReset                    // restart key after game over
)

// String returns the string representation of the event.
func (e Event) String() string {
	switch e {
	case EventStart:
		return "Start"
	case EventPauseToggle:
		return "PauseToggle"
	case EventCollide:
		return "Collide"
	case EventReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// transition is one edge of the state machine with its side effect.
type transition struct {
	to     State
	effect func(g *Game)
}

// transitions lists every legal edge. Pairs not in the table are ignored.
// Effects must not fire events themselves.
var transitions = map[State]map[Event]transition{
	StateMenu: {
		EventStart: {to: StatePlaying, effect: (*Game).beginRun},
	},
	StatePlaying: {
		EventPauseToggle: {to: StatePaused, effect: (*Game).enterPause},
		EventCollide:     {to: StateGameOver, effect: (*Game).finishRun},
	},
	StatePaused: {
		EventPauseToggle: {to: StatePlaying, effect: (*Game).leavePause},
	},
	StateGameOver: {
		EventReset: {to: StatePlaying, effect: (*Game).beginRun},
	},
}

// fire applies ev to the current state. It reports whether a transition happened.
func (g *Game) fire(ev Event) bool {
	tr, ok := transitions[g.state][ev]
	if !ok {
		return false
	}

	from := g.state
	g.state = tr.to
	if tr.effect != nil {
		tr.effect(g)
	}
	g.events = append(g.events, ev)
	g.logger.Debug("state transition", "from", from, "event", ev, "to", tr.to)
	return true
}

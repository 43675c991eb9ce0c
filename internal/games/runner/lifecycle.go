package runner

import "fmt"

// State is the lifecycle state of a session.
type State int

const (
	StateIdle    State = iota // No run; ticks are ignored
	StateRunning              // Ticks advance the simulation
	StateEnded                // Run over; final score on display
)

var stateNames = [...]string{
	StateIdle:    "idle",
	StateRunning: "running",
	StateEnded:   "ended",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name, e.g. in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("runner: unknown state %q", text)
}

// Reason is what triggered a lifecycle transition.
type Reason int

const (
	ReasonStart      Reason = iota // Idle -> Running
	ReasonRestart                  // Ended -> Running
	ReasonResize                   // Running -> Running with fresh geometry
	ReasonCollision                // Running -> Ended
	ReasonEndedEarly               // Running -> Ended by the exit/pause input
	ReasonExit                     // Ended -> Idle
)

var reasonNames = [...]string{
	ReasonStart:      "start",
	ReasonRestart:    "restart",
	ReasonResize:     "resize",
	ReasonCollision:  "collision",
	ReasonEndedEarly: "ended-early",
	ReasonExit:       "exit",
}

func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// transitions is the complete table of legal transitions.
var transitions = map[State]map[Reason]State{
	StateIdle: {
		ReasonStart: StateRunning,
	},
	StateRunning: {
		ReasonResize:     StateRunning,
		ReasonCollision:  StateEnded,
		ReasonEndedEarly: StateEnded,
	},
	StateEnded: {
		ReasonRestart: StateRunning,
		ReasonExit:    StateIdle,
	},
}

// Lifecycle is the session state machine. The zero value is Idle.
type Lifecycle struct {
	state State
}

func (l *Lifecycle) State() State {
	return l.state
}

// Fire applies the transition for reason. It reports false, leaving the
// state untouched, when reason is not legal in the current state.
func (l *Lifecycle) Fire(reason Reason) (Event, bool) {
	to, ok := transitions[l.state][reason]
	if !ok {
		return Event{}, false
	}
	ev := Event{From: l.state, To: to, Reason: reason}
	l.state = to
	return ev, true
}

package core

// Action is a semantic input intent, abstracted from physical keys,
// pointer events and network messages.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up, W - jump, or begin a run when idle
	ActionPointer        // Pointer/mouse press - same as jump
	ActionExit           // Escape - end the run early, or leave the end screen
	ActionRestart        // R, Enter - restart from the end screen
	ActionQuit           // Q, Ctrl+C - leave the host
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionJump:    "jump",
	ActionPointer: "pointer",
	ActionExit:    "exit",
	ActionRestart: "restart",
	ActionQuit:    "quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps a name produced by String back to its action.
// Unknown names map to ActionNone.
func ParseAction(name string) Action {
	for a, n := range actionNames {
		if n == name {
			return a
		}
	}
	return ActionNone
}

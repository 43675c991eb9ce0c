package runner

// Event describes one lifecycle transition. Score is the score right after
// the transition: the final score for transitions into Ended.
type Event struct {
	From   State
	To     State
	Reason Reason
	Score  int
}

// Notifier receives lifecycle events, e.g. to show the end overlay.
// It is called synchronously from the session's goroutine.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(ev Event) {
	f(ev)
}

// Notifiers fans an event out to several notifiers in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(ev Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ev)
		}
	}
}

package runner

import "github.com/vovakirdan/hopper/internal/core"

// ExitMode selects what the exit/pause input should do.
type ExitMode int

const (
	EndRunEarly ExitMode = iota // End a running run, keeping its score
	ExitToIdle                  // Leave the end screen
)

func (m ExitMode) String() string {
	if m == ExitToIdle {
		return "exit-to-idle"
	}
	return "end-run-early"
}

// Controller is the surface hosts drive: input intents plus the per-frame
// tick. Implementations are not safe for concurrent use; a host calls them
// from a single goroutine.
type Controller interface {
	Start()
	HandleJumpInput()
	HandleExitOrPauseInput(mode ExitMode)
	HandleResize(width, height float64) error
	Advance(dtMillis float64) Snapshot
	Snapshot() Snapshot
}

var _ Controller = (*Session)(nil)

// Dispatch applies a semantic action to c. The exit action ends a running
// run and otherwise leaves the end screen. Quit and unknown actions belong
// to the host and are ignored.
func Dispatch(c Controller, a core.Action) {
	switch a {
	case core.ActionJump, core.ActionPointer:
		c.HandleJumpInput()
	case core.ActionExit:
		if c.Snapshot().State == StateRunning {
			c.HandleExitOrPauseInput(EndRunEarly)
		} else {
			c.HandleExitOrPauseInput(ExitToIdle)
		}
	case core.ActionRestart:
		if c.Snapshot().State == StateEnded {
			c.Start()
		}
	}
}

package replay

import (
	"fmt"

	"github.com/vovakirdan/hopper/internal/config"
	"github.com/vovakirdan/hopper/internal/games/runner"
)

// Sink stores journals.
type Sink interface {
	SaveJournal(Journal) error
}

// Recorder is a runner.Controller that owns a seeded session and appends
// every call that can change it to a journal.
type Recorder struct {
	session *runner.Session
	journal Journal

	sink  Sink
	onErr func(error)
}

var _ runner.Controller = (*Recorder)(nil)

// NewRecorder creates a session seeded with seed on a width x height
// viewport and starts an empty journal for it.
func NewRecorder(cfg config.RunnerConfig, seed int64, width, height float64, opts ...runner.Option) (*Recorder, error) {
	opts = append(opts, runner.WithRNG(runner.NewSeededRNG(seed)))
	s, err := runner.New(cfg, runner.Viewport{Width: width, Height: height}, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	j, err := NewJournal(cfg, seed, width, height)
	if err != nil {
		return nil, err
	}
	return &Recorder{session: s, journal: j}, nil
}

// SaveTo makes the recorder store its journal in sink every time a run
// ends. Save errors go to onErr, which may be nil.
func (r *Recorder) SaveTo(sink Sink, onErr func(error)) {
	r.sink = sink
	r.onErr = onErr
}

// Flush stores the journal in the sink now. Journals without a run are
// not stored.
func (r *Recorder) Flush() error {
	if r.sink == nil || r.Empty() {
		return nil
	}
	if err := r.sink.SaveJournal(r.Journal()); err != nil {
		return fmt.Errorf("replay: saving %s: %w", r.journal.ID, err)
	}
	return nil
}

func (r *Recorder) record(ev Event) {
	r.journal.Events = append(r.journal.Events, ev)
}

// saveIfEnded flushes when the last call ended a run.
func (r *Recorder) saveIfEnded(prev runner.State) {
	if prev == runner.StateEnded || r.session.State() != runner.StateEnded {
		return
	}
	if err := r.Flush(); err != nil && r.onErr != nil {
		r.onErr(err)
	}
}

func (r *Recorder) Start() {
	r.record(Event{Kind: KindStart})
	r.session.Start()
}

func (r *Recorder) HandleJumpInput() {
	r.record(Event{Kind: KindJump})
	r.session.HandleJumpInput()
}

func (r *Recorder) HandleExitOrPauseInput(mode runner.ExitMode) {
	prev := r.session.State()
	if prev == runner.StateIdle {
		return
	}
	r.record(Event{Kind: KindExit, Mode: mode})
	r.session.HandleExitOrPauseInput(mode)
	r.saveIfEnded(prev)
}

// HandleResize records only sizes the session accepted.
func (r *Recorder) HandleResize(width, height float64) error {
	if err := r.session.HandleResize(width, height); err != nil {
		return err
	}
	r.record(Event{Kind: KindResize, Width: width, Height: height})
	return nil
}

// Advance records only ticks that reach a running session.
func (r *Recorder) Advance(dtMillis float64) runner.Snapshot {
	if r.session.State() != runner.StateRunning {
		return r.session.Snapshot()
	}
	r.record(Event{Kind: KindAdvance, DT: dtMillis})
	snap := r.session.Advance(dtMillis)
	r.saveIfEnded(runner.StateRunning)
	return snap
}

func (r *Recorder) Snapshot() runner.Snapshot {
	return r.session.Snapshot()
}

// Journal returns a copy of the journal recorded so far.
func (r *Recorder) Journal() Journal {
	j := r.journal
	j.Events = append([]Event(nil), r.journal.Events...)
	return j
}

// Empty reports whether no run was ever started.
func (r *Recorder) Empty() bool {
	for _, ev := range r.journal.Events {
		if ev.Kind == KindStart || ev.Kind == KindJump {
			return false
		}
	}
	return true
}

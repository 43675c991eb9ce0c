// Package replay records the controller calls of a session and plays them
// back. A session is deterministic for a fixed seed, config and call
// sequence, so a journal reproduces the whole run.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/hopper/internal/config"
	"github.com/vovakirdan/hopper/internal/games/runner"
)

// ErrUnknownKind is returned when a journal holds an event Play cannot apply.
var ErrUnknownKind = errors.New("replay: unknown event kind")

// Kind is the controller call an Event records.
type Kind string

const (
	KindStart   Kind = "start"
	KindJump    Kind = "jump"
	KindExit    Kind = "exit"
	KindResize  Kind = "resize"
	KindAdvance Kind = "advance"
)

// Event is one recorded controller call.
type Event struct {
	Kind   Kind            `json:"k"`
	DT     float64         `json:"dt,omitempty"`
	Width  float64         `json:"w,omitempty"`
	Height float64         `json:"h,omitempty"`
	Mode   runner.ExitMode `json:"m,omitempty"`
}

// Journal is everything needed to replay one host session.
type Journal struct {
	ID        string
	Seed      int64
	Width     float64
	Height    float64
	Config    string // YAML of the runner config
	CreatedAt time.Time
	Events    []Event
}

// NewJournal creates an empty journal with a fresh ID.
func NewJournal(cfg config.RunnerConfig, seed int64, width, height float64) (Journal, error) {
	data, err := config.Encode(cfg)
	if err != nil {
		return Journal{}, fmt.Errorf("replay: %w", err)
	}
	return Journal{
		ID:        uuid.NewString(),
		Seed:      seed,
		Width:     width,
		Height:    height,
		Config:    string(data),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Ticks returns the number of recorded Advance calls.
func (j Journal) Ticks() int {
	n := 0
	for _, ev := range j.Events {
		if ev.Kind == KindAdvance {
			n++
		}
	}
	return n
}

// Play re-simulates the journal and returns the final snapshot. fn, if not
// nil, is called with the snapshot after every recorded tick.
func Play(j Journal, fn func(runner.Snapshot), opts ...runner.Option) (runner.Snapshot, error) {
	cfg, err := config.Decode([]byte(j.Config))
	if err != nil {
		return runner.Snapshot{}, fmt.Errorf("replay: %s: %w", j.ID, err)
	}

	opts = append(opts, runner.WithRNG(runner.NewSeededRNG(j.Seed)))
	s, err := runner.New(cfg, runner.Viewport{Width: j.Width, Height: j.Height}, opts...)
	if err != nil {
		return runner.Snapshot{}, fmt.Errorf("replay: %s: %w", j.ID, err)
	}

	for i, ev := range j.Events {
		switch ev.Kind {
		case KindStart:
			s.Start()
		case KindJump:
			s.HandleJumpInput()
		case KindExit:
			s.HandleExitOrPauseInput(ev.Mode)
		case KindResize:
			// Recorded resizes were accepted, so this cannot fail
			// unless the journal was edited.
			if err := s.HandleResize(ev.Width, ev.Height); err != nil {
				return s.Snapshot(), fmt.Errorf("replay: %s: event %d: %w", j.ID, i, err)
			}
		case KindAdvance:
			snap := s.Advance(ev.DT)
			if fn != nil {
				fn(snap)
			}
		default:
			return s.Snapshot(), fmt.Errorf("%w %q at event %d", ErrUnknownKind, ev.Kind, i)
		}
	}

	return s.Snapshot(), nil
}

package runner

import (
	"testing"

	"github.com/vovakirdan/hopper/internal/config"
)

// sequenceRNG returns the given values in order, repeating the last one.
type sequenceRNG struct {
	values []float64
	i      int
}

func (r *sequenceRNG) Float64() float64 {
	v := r.values[min(r.i, len(r.values)-1)]
	r.i++
	return v
}

// eventLog records lifecycle events.
type eventLog struct {
	events []Event
}

func (l *eventLog) Notify(ev Event) {
	l.events = append(l.events, ev)
}

func (l *eventLog) reasons() []Reason {
	out := make([]Reason, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Reason
	}
	return out
}

const (
	testW = 800.0
	testH = 600.0
)

// nominalDT is one nominal frame, which makes the physics ratio exactly 1.
var nominalDT = config.DefaultRunnerConfig().Physics.NominalFrameMS()

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithRNG(NewSeededRNG(42))}, opts...)
	s, err := New(config.DefaultRunnerConfig(), Viewport{Width: testW, Height: testH}, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func newRunningSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := newTestSession(t, opts...)
	s.Start()
	if s.State() != StateRunning {
		t.Fatalf("Start() should enter running, got %v", s.State())
	}
	return s
}

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hopper/internal/config"
	"github.com/vovakirdan/hopper/internal/core"
	"github.com/vovakirdan/hopper/internal/games/runner"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60}
}

// newTestModel hosts a seeded session on an 80x25 terminal.
func newTestModel(t *testing.T) (Model, *runner.Session) {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	w, h := FitViewport(cfg, 80, 25)
	s, err := runner.New(cfg, runner.Viewport{Width: w, Height: h}, runner.WithRNG(runner.NewSeededRNG(1)))
	if err != nil {
		t.Fatalf("runner.New() failed: %v", err)
	}
	m := NewModel(s, testConfig())
	m.now = func() time.Time { return t0 }
	return m, s
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{runeKey("w"), core.ActionJump},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionExit},
		{runeKey("p"), core.ActionExit},
		{runeKey("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart},
		{runeKey("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey("x"), core.ActionNone},
	}

	for _, tc := range tests {
		if got := keys.Action(tc.msg); got != tc.want {
			t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestViewport(t *testing.T) {
	w, h := Viewport(80, 25, runner.DefaultScale)
	if w != 800 || h != 480 {
		t.Errorf("Viewport(80, 25) = %vx%v, expected 800x480", w, h)
	}

	w, h = FitViewport(config.DefaultRunnerConfig(), 0, 3)
	if w <= 0 || h < 180 {
		t.Errorf("FitViewport(0, 3) = %vx%v, expected a playable size", w, h)
	}
}

func TestModelStartsAndTicks(t *testing.T) {
	m, s := newTestModel(t)

	if cmd := m.Init(); cmd != nil {
		t.Error("idle model should not tick")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if s.State() != runner.StateRunning {
		t.Fatalf("space should start a run, state = %v", s.State())
	}
	if cmd == nil || !m.ticking {
		t.Fatal("starting a run should start ticking")
	}

	m, cmd = update(t, m, TickMsg(t0.Add(time.Second/60)))
	if got := s.Snapshot().Frame; got != 1 {
		t.Errorf("frame after one tick = %d, expected 1", got)
	}
	if cmd == nil {
		t.Error("running model should schedule the next tick")
	}
	if !strings.Contains(m.View(), "Score: 0") {
		t.Error("view should show the HUD")
	}
}

func TestModelStopsTickingWhenRunEnds(t *testing.T) {
	m, s := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if s.State() != runner.StateEnded {
		t.Fatalf("esc while running should end the run, state = %v", s.State())
	}
	if !strings.Contains(m.View(), "Game over!") {
		t.Error("view should show the end screen")
	}

	// The tick already in flight is dropped and not rescheduled
	m, cmd := update(t, m, TickMsg(t0.Add(32*time.Millisecond)))
	if cmd != nil || m.ticking {
		t.Error("ticking should stop after the run ended")
	}
	if got := s.Snapshot().Frame; got != 1 {
		t.Errorf("ended run advanced to frame %d", got)
	}

	m, cmd = update(t, m, runeKey("r"))
	if s.State() != runner.StateRunning || cmd == nil {
		t.Errorf("restart should run and tick again, state = %v", s.State())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if s.State() != runner.StateIdle {
		t.Errorf("second esc should return to idle, state = %v", s.State())
	}
}

func TestModelMouseStarts(t *testing.T) {
	m, s := newTestModel(t)

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if s.State() != runner.StateIdle {
		t.Fatal("mouse motion should be ignored")
	}

	update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 3, Y: 4})
	if s.State() != runner.StateRunning {
		t.Errorf("left click should start a run, state = %v", s.State())
	}
}

func TestModelResize(t *testing.T) {
	m, s := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 31})
	if snap := s.Snapshot(); snap.Width != 1000 || snap.Height != 600 {
		t.Errorf("playfield = %vx%v, expected 1000x600", snap.Width, snap.Height)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 5})
	if !strings.Contains(m.View(), "too small") {
		t.Error("a tiny terminal should be reported")
	}
	if s.Snapshot().Width != 1000 {
		t.Error("rejected size must not reach the session")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

// fakeController reports a fixed snapshot and counts calls.
type fakeController struct {
	snap  runner.Snapshot
	jumps int
}

func (f *fakeController) Start() {}
func (f *fakeController) HandleJumpInput() { f.jumps++ }
func (f *fakeController) HandleExitOrPauseInput(runner.ExitMode) {}
func (f *fakeController) HandleResize(float64, float64) error { return nil }
func (f *fakeController) Advance(float64) runner.Snapshot { return f.snap }
func (f *fakeController) Snapshot() runner.Snapshot { return f.snap }

func TestModelTracksBestScore(t *testing.T) {
	fake := &fakeController{snap: runner.Snapshot{State: runner.StateEnded, Score: 7}}
	m := NewModel(fake, testConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	fake.snap.Score = 3
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	if m.Best() != 7 || fake.jumps != 2 {
		t.Errorf("best = %d, jumps = %d", m.Best(), fake.jumps)
	}
	if !strings.Contains(m.View(), "Best: 7") {
		t.Error("status line should show the best score")
	}
}

package runner

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/hopper/internal/config"
)

func TestNewRejectsUnusableSurfaces(t *testing.T) {
	cfg := config.DefaultRunnerConfig()

	tests := []struct {
		name    string
		surface Surface
		want    error
	}{
		{"nil surface", nil, ErrNoSurface},
		{"zero width", Viewport{Width: 0, Height: 600}, ErrEmptyViewport},
		{"negative height", Viewport{Width: 800, Height: -1}, ErrEmptyViewport},
		{"nan size", Viewport{Width: math.NaN(), Height: 600}, ErrEmptyViewport},
		{"too short for ground", Viewport{Width: 800, Height: 150}, ErrViewportTooShort},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(cfg, tc.surface)
			if !errors.Is(err, tc.want) {
				t.Errorf("New() error = %v, expected %v", err, tc.want)
			}
			if s != nil {
				t.Error("New() should not return a session on error")
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Physics.Gravity = 0

	if _, err := New(cfg, Viewport{Width: testW, Height: testH}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New() error = %v, expected config.ErrInvalid", err)
	}
}

func TestSessionStartsIdle(t *testing.T) {
	s := newTestSession(t)

	snap := s.Advance(16)
	if snap.State != StateIdle {
		t.Errorf("state = %v, expected idle", snap.State)
	}
	if snap.Frame != 0 {
		t.Errorf("Advance while idle should not tick, frame = %d", snap.Frame)
	}
	if snap.GroundY != testH-120 || snap.Player.Y != snap.GroundY-30 {
		t.Errorf("groundY=%v playerY=%v", snap.GroundY, snap.Player.Y)
	}
}

func TestFreeFallLandsAndStays(t *testing.T) {
	s := newRunningSession(t)
	restY := s.restY()

	// A fresh run starts at rest and stays there without input
	for i := 0; i < 60; i++ {
		snap := s.Advance(16)
		if snap.Player.Y != restY || s.player.VY != 0 || snap.Player.Airborne {
			t.Fatalf("tick %d: resting player moved: %+v vy=%v", i, snap.Player, s.player.VY)
		}
	}

	s.player.Y = restY - 150
	s.player.Airborne = true

	prevY := s.player.Y
	landed := false
	for i := 0; i < 60; i++ {
		snap := s.Advance(16)
		if snap.Player.Y < prevY {
			t.Fatalf("tick %d: player rose while falling (%v -> %v)", i, prevY, snap.Player.Y)
		}
		if snap.Player.Y > restY {
			t.Fatalf("tick %d: player below the ground line: %v", i, snap.Player.Y)
		}
		if snap.Player.Y == restY {
			landed = true
			if s.player.VY != 0 || snap.Player.Airborne {
				t.Fatalf("tick %d: landed with vy=%v airborne=%v", i, s.player.VY, snap.Player.Airborne)
			}
		}
		prevY = snap.Player.Y
	}
	if !landed {
		t.Error("player never landed")
	}
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	log := &eventLog{}
	s := newRunningSession(t, WithNotifier(log))
	for i := 0; i < 120; i++ {
		s.Advance(nominalDT)
	}
	before := s.Snapshot()

	s.Start()

	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("second Start changed the run:\n before %+v\n after  %+v", before, after)
	}
	if len(log.events) != 1 {
		t.Errorf("expected a single start event, got %v", log.reasons())
	}
}

func TestJumpInput(t *testing.T) {
	s := newRunningSession(t)
	jump := config.DefaultRunnerConfig().Physics.JumpImpulse

	s.HandleJumpInput()
	if s.player.VY != jump || !s.player.Airborne {
		t.Fatalf("after jump vy=%v airborne=%v", s.player.VY, s.player.Airborne)
	}

	snap := s.Advance(nominalDT)
	if snap.Player.Y >= s.restY() {
		t.Errorf("player should be above the ground after jumping, Y = %v", snap.Player.Y)
	}

	vy := s.player.VY
	s.HandleJumpInput()
	if s.player.VY != vy || !s.player.Airborne {
		t.Errorf("jump in the air should be a no-op, vy %v -> %v", vy, s.player.VY)
	}
}

func TestJumpInputStartsRun(t *testing.T) {
	log := &eventLog{}
	s := newTestSession(t, WithNotifier(log))

	s.HandleJumpInput()
	if s.State() != StateRunning {
		t.Fatalf("jump while idle should start, state = %v", s.State())
	}
	if s.player.Airborne {
		t.Error("the starting jump input should not also jump")
	}

	s.HandleExitOrPauseInput(EndRunEarly)
	s.HandleJumpInput()

	want := []Reason{ReasonStart, ReasonEndedEarly, ReasonRestart}
	if !reflect.DeepEqual(log.reasons(), want) {
		t.Errorf("reasons = %v, expected %v", log.reasons(), want)
	}
}

func TestSpeedRampsAndResets(t *testing.T) {
	s := newRunningSession(t)

	prev := s.Snapshot().Speed
	if prev != 5 {
		t.Fatalf("initial speed = %v, expected 5", prev)
	}
	for i := 0; i < 100; i++ {
		snap := s.Advance(nominalDT)
		if snap.Speed < prev {
			t.Fatalf("tick %d: speed decreased %v -> %v", i, prev, snap.Speed)
		}
		prev = snap.Speed
	}
	if math.Abs(prev-5.5) > 1e-9 {
		t.Errorf("speed after 100 ticks = %v, expected 5.5", prev)
	}

	s.HandleExitOrPauseInput(EndRunEarly)
	s.Start()
	if got := s.Snapshot().Speed; got != 5 {
		t.Errorf("speed after restart = %v, expected 5", got)
	}
}

func TestPassedObstacleScoresOnce(t *testing.T) {
	s := newRunningSession(t)
	s.gen.obstacles = append(s.gen.obstacles, Obstacle{X: -25, Y: s.groundY - 40, Width: 20, Height: 40})

	snap := s.Advance(nominalDT)
	if snap.Score != 1 {
		t.Fatalf("score = %d, expected 1", snap.Score)
	}
	if len(snap.Obstacles) != 0 {
		t.Fatalf("obstacle should be culled, got %+v", snap.Obstacles)
	}

	for i := 0; i < 10; i++ {
		if snap = s.Advance(nominalDT); snap.Score != 1 {
			t.Fatalf("tick %d: score changed to %d", i, snap.Score)
		}
	}
}

func TestCollisionEndsRunImmediately(t *testing.T) {
	log := &eventLog{}
	s := newRunningSession(t, WithNotifier(log))
	s.gen.obstacles = append(s.gen.obstacles, Obstacle{X: 80, Y: s.groundY - 40, Width: 20, Height: 40})

	snap := s.Advance(nominalDT)

	if snap.State != StateEnded {
		t.Fatalf("state = %v, expected ended", snap.State)
	}
	if snap.Speed != 5 {
		t.Errorf("the colliding tick must not ramp the speed, got %v", snap.Speed)
	}
	last := log.events[len(log.events)-1]
	if last.Reason != ReasonCollision || last.To != StateEnded {
		t.Errorf("last event = %+v, expected collision into ended", last)
	}

	// Stale ticks are no-ops
	if again := s.Advance(nominalDT); !reflect.DeepEqual(again, snap) {
		t.Errorf("Advance after ended changed the snapshot")
	}
}

func TestRunWithoutJumpingEndsInCollision(t *testing.T) {
	s := newRunningSession(t)

	for i := 0; i < 600 && s.State() == StateRunning; i++ {
		s.Advance(nominalDT)
	}

	if s.State() != StateEnded {
		t.Fatalf("expected the first obstacle to end the run, state = %v", s.State())
	}
	if s.Snapshot().Score != 0 {
		t.Errorf("score = %d, expected 0", s.Snapshot().Score)
	}
}

func TestExitInput(t *testing.T) {
	log := &eventLog{}
	s := newRunningSession(t, WithNotifier(log))
	s.gen.obstacles = append(s.gen.obstacles, Obstacle{X: -25, Y: s.groundY - 40, Width: 20, Height: 40})
	s.Advance(nominalDT)

	// Exit-to-idle while running only ends the run
	s.HandleExitOrPauseInput(ExitToIdle)
	snap := s.Snapshot()
	if snap.State != StateEnded || snap.Score != 1 {
		t.Fatalf("after exit while running: state=%v score=%d", snap.State, snap.Score)
	}
	if last := log.events[len(log.events)-1]; last.Score != 1 || last.Reason != ReasonEndedEarly {
		t.Errorf("end event = %+v", last)
	}

	s.score.Add(5)
	if s.Snapshot().Score != 1 {
		t.Error("final score must not change after the run ended")
	}

	s.HandleExitOrPauseInput(EndRunEarly)
	if s.State() != StateEnded {
		t.Errorf("end-run-early on the end screen should be a no-op, state = %v", s.State())
	}

	s.HandleExitOrPauseInput(ExitToIdle)
	snap = s.Snapshot()
	if snap.State != StateIdle || snap.Score != 0 || len(snap.Obstacles) != 0 {
		t.Errorf("after exit: state=%v score=%d obstacles=%d", snap.State, snap.Score, len(snap.Obstacles))
	}

	n := len(log.events)
	s.HandleExitOrPauseInput(ExitToIdle)
	if len(log.events) != n || s.State() != StateIdle {
		t.Error("exit while idle should do nothing")
	}

	want := []Reason{ReasonStart, ReasonEndedEarly, ReasonExit}
	if !reflect.DeepEqual(log.reasons(), want) {
		t.Errorf("reasons = %v, expected %v", log.reasons(), want)
	}
}

func TestResize(t *testing.T) {
	log := &eventLog{}
	s := newTestSession(t, WithNotifier(log))

	// Idle: only cached
	if err := s.HandleResize(1000, 700); err != nil {
		t.Fatalf("HandleResize() failed: %v", err)
	}
	if s.State() != StateIdle || len(log.events) != 0 {
		t.Fatalf("resize while idle changed state: %v %v", s.State(), log.reasons())
	}

	s.Start()
	if got := s.Snapshot().GroundY; got != 580 {
		t.Errorf("groundY after start = %v, expected 580", got)
	}

	for i := 0; i < 100; i++ {
		s.Advance(nominalDT)
	}

	// Running: full reset on the new geometry
	if err := s.HandleResize(640, 400); err != nil {
		t.Fatalf("HandleResize() failed: %v", err)
	}
	snap := s.Snapshot()
	if snap.State != StateRunning || snap.Frame != 0 || snap.Speed != 5 || len(snap.Obstacles) != 0 {
		t.Errorf("resize while running should reset the run, got %+v", snap)
	}
	if snap.GroundY != 280 || snap.Player.Y != 250 || snap.Width != 640 {
		t.Errorf("new geometry not applied: %+v", snap)
	}
	if last := log.events[len(log.events)-1]; last.Reason != ReasonResize {
		t.Errorf("last event = %+v, expected resize", last)
	}

	// Unusable sizes are reported and ignored
	if err := s.HandleResize(0, 0); !errors.Is(err, ErrEmptyViewport) {
		t.Errorf("HandleResize(0, 0) = %v, expected ErrEmptyViewport", err)
	}
	if s.Snapshot().Width != 640 {
		t.Error("rejected resize must not change the cached size")
	}
}

func TestObstacleShiftScaling(t *testing.T) {
	for _, scale := range []bool{false, true} {
		cfg := config.DefaultRunnerConfig()
		cfg.Obstacles.ScaleByDT = scale
		s, err := New(cfg, Viewport{Width: testW, Height: testH}, WithRNG(NewSeededRNG(1)))
		if err != nil {
			t.Fatal(err)
		}
		s.Start()
		s.gen.obstacles = append(s.gen.obstacles, Obstacle{X: 700, Y: s.groundY - 40, Width: 20, Height: 40})

		snap := s.Advance(nominalDT / 2)

		want := 695.0
		if scale {
			want = 697.5
		}
		if got := snap.Obstacles[0].X; math.Abs(got-want) > 1e-9 {
			t.Errorf("scale_by_dt=%v: X = %v, expected %v", scale, got, want)
		}
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() []Snapshot {
		s := newTestSession(t, WithRNG(NewSeededRNG(7)))
		s.Start()
		var out []Snapshot
		for i := 0; i < 500; i++ {
			if i%50 == 0 {
				s.HandleJumpInput()
			}
			out = append(out, s.Advance(16))
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different runs")
	}
}

// jumpBot jumps when the nearest obstacle is about eleven ticks away.
func jumpBot(snap Snapshot) bool {
	if snap.Player.Airborne {
		return false
	}
	left := snap.Player.X - snap.Player.Radius
	right := snap.Player.X + snap.Player.Radius
	for _, o := range snap.Obstacles {
		if o.X+o.Width > left && o.X < right+11*snap.Speed {
			return true
		}
	}
	return false
}

func TestJumpingOverObstaclesScores(t *testing.T) {
	s := newRunningSession(t)

	prev := 0
	for i := 0; i < 1200; i++ {
		if jumpBot(s.Snapshot()) {
			s.HandleJumpInput()
		}
		snap := s.Advance(nominalDT)
		if snap.State != StateRunning {
			t.Fatalf("tick %d: bot crashed with score %d", i, snap.Score)
		}
		if d := snap.Score - prev; d < 0 || d > 1 {
			t.Fatalf("tick %d: score jumped from %d to %d", i, prev, snap.Score)
		}
		prev = snap.Score
	}

	if prev < 5 {
		t.Errorf("score after 1200 ticks = %d, expected at least 5", prev)
	}
}

func TestNilSessionIsInert(t *testing.T) {
	var s *Session

	s.Start()
	s.HandleJumpInput()
	s.HandleExitOrPauseInput(ExitToIdle)

	if err := s.HandleResize(800, 600); !errors.Is(err, ErrNoSurface) {
		t.Errorf("HandleResize() on nil = %v, expected ErrNoSurface", err)
	}
	if snap := s.Advance(16); snap.State != StateIdle || snap.Frame != 0 {
		t.Errorf("Advance() on nil = %+v", snap)
	}
}

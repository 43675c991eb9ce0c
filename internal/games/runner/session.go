// Package runner implements the jump-and-dodge game: a ball that jumps over
// ground obstacles scrolling in from the right at an ever increasing speed.
//
// A Session is a pure state machine. Hosts feed it input intents and call
// Advance once per frame with the elapsed time; it never draws, sleeps or
// schedules anything itself.
package runner

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/hopper/internal/config"
)

var (
	ErrNoSurface        = errors.New("runner: no drawable surface")
	ErrEmptyViewport    = errors.New("runner: viewport has zero area")
	ErrViewportTooShort = errors.New("runner: viewport too short for the ground line")
)

// Surface is the drawable area a session plays on.
type Surface interface {
	Size() (width, height float64)
}

// Viewport is a fixed-size Surface.
type Viewport struct {
	Width, Height float64
}

func (v Viewport) Size() (float64, float64) {
	return v.Width, v.Height
}

// Option configures a Session.
type Option func(*Session)

// WithRNG sets the source of obstacle heights. The default is seeded from
// the clock.
func WithRNG(rng RNG) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithNotifier sets the receiver of lifecycle events.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// Session owns one player, the obstacle generator, the ramp, the score and
// the lifecycle. All methods are no-ops on a nil *Session.
type Session struct {
	cfg      config.RunnerConfig
	physics  Physics
	rng      RNG
	gen      *Generator
	ramp     *Ramp
	score    Score
	life     Lifecycle
	notifier Notifier

	player  Player
	width   float64 // Cached surface size; applied to the run on reset
	height  float64
	groundY float64
	frame   int // Ticks since the run started
}

// New creates an Idle session for surface. It fails when surface is nil or
// its size cannot hold the ground line and the player.
func New(cfg config.RunnerConfig, surface Surface, opts ...Option) (*Session, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	width, height := surface.Size()
	if err := checkViewport(cfg, width, height); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:     cfg,
		physics: NewPhysics(cfg.Physics),
		ramp:    NewRamp(cfg.Difficulty),
		width:   width,
		height:  height,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewSeededRNG(time.Now().UnixNano())
	}
	s.gen = NewGenerator(cfg.Obstacles, s.rng)
	s.resetRun()

	return s, nil
}

func checkViewport(cfg config.RunnerConfig, width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("%w: %vx%v", ErrEmptyViewport, width, height)
	}
	if need := cfg.Player.GroundOffset + 2*cfg.Player.Radius; height < need {
		return fmt.Errorf("%w: height %v, need at least %v", ErrViewportTooShort, height, need)
	}
	return nil
}

// resetRun puts the player at rest on a fresh ground line and clears the
// obstacles, the ramp, the score and the frame counter.
func (s *Session) resetRun() {
	s.groundY = s.height - s.cfg.Player.GroundOffset
	s.player = Player{
		X:      s.cfg.Player.X,
		Y:      s.restY(),
		Radius: s.cfg.Player.Radius,
	}
	s.gen.Reset()
	s.ramp.Reset()
	s.score.Reset()
	s.frame = 0
}

func (s *Session) restY() float64 {
	return s.groundY - s.cfg.Player.Radius
}

func (s *Session) fire(reason Reason) bool {
	ev, ok := s.life.Fire(reason)
	if !ok {
		return false
	}
	if ev.To == StateEnded {
		s.score.Freeze()
	}
	ev.Score = s.score.Value()
	if s.notifier != nil {
		s.notifier.Notify(ev)
	}
	return true
}

// Start begins a new run from Idle or Ended. It is a no-op while Running.
func (s *Session) Start() {
	if s == nil {
		return
	}

	var reason Reason
	switch s.life.State() {
	case StateIdle:
		reason = ReasonStart
	case StateEnded:
		reason = ReasonRestart
	default:
		return
	}
	s.resetRun()
	s.fire(reason)
}

// HandleJumpInput jumps while Running and grounded, and starts a run
// otherwise. Jumping in the air does nothing.
func (s *Session) HandleJumpInput() {
	if s == nil {
		return
	}
	if s.life.State() != StateRunning {
		s.Start()
		return
	}
	s.physics.Jump(&s.player)
}

// HandleExitOrPauseInput ends a running run regardless of mode. From the
// end screen, ExitToIdle returns to Idle and clears the run.
func (s *Session) HandleExitOrPauseInput(mode ExitMode) {
	if s == nil {
		return
	}
	switch s.life.State() {
	case StateRunning:
		s.fire(ReasonEndedEarly)
	case StateEnded:
		if mode == ExitToIdle {
			s.fire(ReasonExit)
			s.resetRun()
		}
	}
}

// HandleResize caches the new surface size. A running run restarts on the
// new geometry; otherwise the size applies to the next run. An unusable size
// is reported and ignored.
func (s *Session) HandleResize(width, height float64) error {
	if s == nil {
		return ErrNoSurface
	}
	if err := checkViewport(s.cfg, width, height); err != nil {
		return err
	}
	s.width, s.height = width, height

	if s.life.State() == StateRunning {
		s.resetRun()
		s.fire(ReasonResize)
	}
	return nil
}

// Advance runs one tick of dtMillis elapsed milliseconds and returns the
// resulting snapshot. Outside Running it only returns the snapshot.
func (s *Session) Advance(dtMillis float64) Snapshot {
	if s == nil {
		return Snapshot{}
	}
	if s.life.State() != StateRunning {
		return s.Snapshot()
	}

	ratio := s.physics.Ratio(dtMillis)
	s.frame++

	s.physics.Step(&s.player, s.restY(), ratio)

	speed := s.ramp.Speed()
	shift := speed
	if s.cfg.Obstacles.ScaleByDT {
		shift *= ratio
	}
	s.score.Add(s.gen.Step(speed, shift, s.width, s.groundY))

	if Collides(s.player.Rect(), s.gen.Obstacles()) {
		s.fire(ReasonCollision)
		return s.Snapshot()
	}

	s.ramp.Step()
	return s.Snapshot()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	if s == nil {
		return StateIdle
	}
	return s.life.State()
}

package transition

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Sequencer runs one camera transition trigger: a pre-delay, an
// interpolated camera/player move and a post-delay. It is driven by Tick
// once per frame and is not safe for concurrent use.
type Sequencer struct {
	name     string
	position Vec3
	cfg      Config
	easing   ease.TweenFunc

	camera Camera
	freeze FreezeCoordinator
	events Events

	entry    Entry
	phase    Phase
	active   bool
	timer    float64
	progress float64

	cameraStart  Vec2
	cameraFinish Vec2
	playerStart  Vec2
	playerFinish Vec2

	previous        Bounds
	capturePrevious bool

	preEvent  oneShot
	postEvent oneShot

	player   Player
	snapshot PlayerSnapshot
}

// New builds an idle sequencer that starts with an Enter transition. freeze
// and events may be nil.
func New(name string, cfg Config, camera Camera, freeze FreezeCoordinator, events Events) (*Sequencer, error) {
	if camera == nil {
		return nil, ErrNilCamera
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("transition: %s: %w", name, err)
	}
	fn, _ := easingFunc(cfg.Easing)
	if freeze == nil {
		freeze = noFreeze{}
	}
	if events == nil {
		events = EventFuncs{}
	}
	return &Sequencer{
		name:            name,
		cfg:             cfg,
		easing:          fn,
		camera:          camera,
		freeze:          freeze,
		events:          events,
		entry:           EntryEnter,
		phase:           PhasePreDelay,
		capturePrevious: true,
	}, nil
}

func (s *Sequencer) Name() string { return s.name }
func (s *Sequencer) Config() Config { return s.cfg }
func (s *Sequencer) Active() bool { return s.active }
func (s *Sequencer) Phase() Phase { return s.phase }
func (s *Sequencer) Entry() Entry { return s.entry }
func (s *Sequencer) Timer() float64 { return s.timer }
func (s *Sequencer) Progress() float64 { return s.progress }
func (s *Sequencer) CameraFinish() Vec2 { return s.cameraFinish }
func (s *Sequencer) PlayerFinish() Vec2 { return s.playerFinish }
func (s *Sequencer) PreviousBounds() Bounds { return s.previous }
func (s *Sequencer) PreviousCaptured() bool { return !s.capturePrevious }
func (s *Sequencer) Position() Vec3 { return s.position }
func (s *Sequencer) SetPosition(p Vec3) { s.position = p }
func (s *Sequencer) Snapshot() PlayerSnapshot { return s.snapshot }

// Reconfigure swaps the authored configuration. It is refused while a
// sequence is running.
func (s *Sequencer) Reconfigure(cfg Config) error {
	if s.active {
		return ErrActive
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("transition: %s: %w", s.name, err)
	}
	s.cfg = cfg
	s.easing, _ = easingFunc(cfg.Easing)
	return nil
}

// ResetPreviousBounds lets the next Enter capture the camera bounds again.
func (s *Sequencer) ResetPreviousBounds() {
	s.capturePrevious = true
}

// Trigger is the "player entered the region" signal. It reports whether a
// sequence started. Triggers while a sequence is active are ignored.
func (s *Sequencer) Trigger(p Player) bool {
	if p == nil {
		return false
	}

	// Only-move triggers swap the bounds and never touch the player.
	if s.cfg.OnlyMoveCamera {
		s.camera.SetBounds(s.cfg.Target())
		s.events.OnlyMoveCamera()
		return false
	}

	if s.active {
		return false
	}

	s.active = true
	s.player = p
	s.camera.Detach()

	s.phase = PhasePreDelay
	s.timer = s.cfg.PreTransitionDelay
	s.progress = 0
	s.preEvent.arm()
	s.postEvent.arm()

	cam := s.camera.Position().XY()
	s.cameraStart = cam
	s.playerStart = p.Position()
	if s.entry == EntryEnter && s.capturePrevious {
		s.capturePrevious = false
		s.previous = s.camera.Bounds()
	}
	s.playerFinish = PlayerFinish(s.entry, s.playerStart, s.cfg.PlayerChange)
	s.cameraFinish = CameraFinish(s.cfg.Axis, s.entry, s.previous, s.cfg.Target(), s.cfg.PlayerChange, cam)

	s.freeze.FreezeAll(true)
	s.freeze.SetInTransition(true)
	s.freeze.AllowPause(false)

	p.SetAnimationSpeed(0)
	p.FreezeInput(true)
	p.FreezePlayer(true)
	s.snapshot = Capture(p)
	return true
}

// Update ticks with the clock's elapsed time.
func (s *Sequencer) Update(clock Clock) {
	s.Tick(clock.Elapsed())
}

// Tick advances an active sequence by dt seconds. Idle sequencers ignore it.
func (s *Sequencer) Tick(dt float64) {
	if !s.active {
		return
	}
	if s.player == nil {
		panic("transition: " + s.name + ": active sequence has no player")
	}
	if dt < 0 {
		dt = 0
	}

	switch s.phase {
	case PhasePreDelay:
		s.fire(HookBeforeDelay, s.cfg.EventCallPreDelay, &s.preEvent, s.events.PreTransition)
		s.timer -= dt
		if s.timer <= 0 {
			s.fire(HookAfterDelay, s.cfg.EventCallPreDelay, &s.preEvent, s.events.PreTransition)
			s.player.SetAnimationSpeed(1)
			s.phase = PhaseTransition
			s.timer = 0
		}
	case PhaseTransition:
		s.progress = s.movementProgress()
		s.timer += dt

		t := applyEasing(s.easing, s.progress)
		cam := Lerp(s.cameraStart, s.cameraFinish, t)
		s.camera.SetPosition(Vec3{X: cam.X, Y: cam.Y, Z: s.camera.Position().Z})
		s.player.SetPosition(Lerp(s.playerStart, s.playerFinish, t))

		if s.progress >= 1 {
			s.finishMovement()
		}
	case PhasePostDelay:
		s.fire(HookBeforeDelay, s.cfg.EventCallPostDelay, &s.postEvent, s.events.PostTransition)
		s.timer -= dt
		if s.timer <= 0 {
			s.fire(HookAfterDelay, s.cfg.EventCallPostDelay, &s.postEvent, s.events.PostTransition)
			s.complete()
		}
	}
}

// movementProgress is computed from the timer before it advances, so the
// reported progress trails the clock by one tick.
func (s *Sequencer) movementProgress() float64 {
	d := s.cfg.TransitionDelay
	if d <= 0 {
		return 1
	}
	return clamp(s.timer, 0, d) / d
}

func (s *Sequencer) fire(hook Hook, policy EventCall, shot *oneShot, fn func()) {
	if policy.Fires(hook, s.entry) {
		shot.fire(fn)
	}
}

func (s *Sequencer) finishMovement() {
	s.player.SetAnimationSpeed(0)

	z := s.camera.Position().Z
	s.camera.SetPosition(Vec3{X: s.cameraFinish.X, Y: s.cameraFinish.Y, Z: z})
	s.camera.SetBounds(FinalBounds(s.entry, s.previous, s.cfg.Target()))
	s.player.SetPosition(s.playerFinish)
	s.camera.Attach(s.player)

	s.phase = PhasePostDelay
	s.timer = s.cfg.PostTransitionDelay
}

func (s *Sequencer) complete() {
	p := s.player

	s.entry = s.entry.Toggle()
	s.active = false

	s.freeze.FreezeAll(false)
	s.freeze.SetInTransition(false)
	s.freeze.AllowPause(true)

	p.FreezeInput(false)
	p.FreezePlayer(false)
	s.snapshot.Restore(p)

	s.player = nil
	s.snapshot = PlayerSnapshot{}
}

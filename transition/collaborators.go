package transition

// Camera is the camera follow handle driven by a sequence.
type Camera interface {
	Position() Vec3
	SetPosition(p Vec3)
	Bounds() Bounds
	SetBounds(b Bounds)
	// Attach makes the camera follow p again. Detach stops following so the
	// sequence can move the camera without the bounds interfering.
	Attach(p Player)
	Detach()
}

// Player is the player handle owned by a sequence while it is active.
type Player interface {
	Position() Vec2
	SetPosition(p Vec2)
	// AnimationSpeed is 0 when paused and 1 when playing.
	AnimationSpeed() float64
	SetAnimationSpeed(speed float64)
	Velocity() Vec2
	SetVelocity(v Vec2)
	Invincible() bool
	SetInvincible(invincible bool)
	FreezeInput(frozen bool)
	FreezePlayer(frozen bool)
}

// FreezeCoordinator freezes the rest of the game while a sequence runs.
type FreezeCoordinator interface {
	FreezeAll(frozen bool)
	SetInTransition(active bool)
	AllowPause(allowed bool)
}

// Events receives the sequence notifications.
type Events interface {
	PreTransition()
	PostTransition()
	OnlyMoveCamera()
}

// Clock supplies the time elapsed since the previous tick, in seconds.
type Clock interface {
	Elapsed() float64
}

// EventFuncs adapts plain functions to Events. Nil fields are skipped.
type EventFuncs struct {
	Pre      func()
	Post     func()
	OnlyMove func()
}

func (f EventFuncs) PreTransition() {
	if f.Pre != nil {
		f.Pre()
	}
}

func (f EventFuncs) PostTransition() {
	if f.Post != nil {
		f.Post()
	}
}

func (f EventFuncs) OnlyMoveCamera() {
	if f.OnlyMove != nil {
		f.OnlyMove()
	}
}

type noFreeze struct{}

func (noFreeze) FreezeAll(bool) {}
func (noFreeze) SetInTransition(bool) {}
func (noFreeze) AllowPause(bool) {}

// Package sim provides in-memory collaborators for running camera
// transitions without a game world: headless tools and tests drive a
// transition.Sequencer against these.
package sim

import "github.com/milk9111/camtransition/transition"

// Camera is a plain camera follow handle.
type Camera struct {
	Pos      transition.Vec3
	Limits   transition.Bounds
	Attached transition.Player
}

func (c *Camera) Position() transition.Vec3 { return c.Pos }
func (c *Camera) SetPosition(p transition.Vec3) { c.Pos = p }
func (c *Camera) Bounds() transition.Bounds { return c.Limits }
func (c *Camera) SetBounds(b transition.Bounds) { c.Limits = b }
func (c *Camera) Attach(p transition.Player) { c.Attached = p }
func (c *Camera) Detach() { c.Attached = nil }

func NewCamera(pos transition.Vec3, b transition.Bounds) *Camera {
	return &Camera{Pos: pos, Limits: b}
}

// Player is a plain player handle. Frozen player state pauses its
// animation; unfreezing only resumes it when it was frozen before.
type Player struct {
	Pos           transition.Vec2
	Vel           transition.Vec2
	AnimSpeed     float64
	Invincibility bool
	InputFrozen   bool
	Frozen        bool
	wasFrozen     bool
}

func NewPlayer(pos transition.Vec2) *Player {
	return &Player{Pos: pos, AnimSpeed: 1}
}

func (p *Player) Position() transition.Vec2 { return p.Pos }
func (p *Player) SetPosition(v transition.Vec2) { p.Pos = v }
func (p *Player) AnimationSpeed() float64 { return p.AnimSpeed }
func (p *Player) SetAnimationSpeed(speed float64) { p.AnimSpeed = speed }
func (p *Player) Velocity() transition.Vec2 { return p.Vel }
func (p *Player) SetVelocity(v transition.Vec2) { p.Vel = v }
func (p *Player) Invincible() bool { return p.Invincibility }
func (p *Player) SetInvincible(invincible bool) { p.Invincibility = invincible }
func (p *Player) FreezeInput(frozen bool) { p.InputFrozen = frozen }

func (p *Player) FreezePlayer(frozen bool) {
	if frozen {
		p.Frozen = true
		p.wasFrozen = true
		return
	}
	if !p.wasFrozen {
		return
	}
	p.Frozen = false
	p.wasFrozen = false
	p.AnimSpeed = 1
}

// Freeze records the coordinator calls. Unfreezing is ignored unless a
// freeze was recorded first.
type Freeze struct {
	Frozen       bool
	InTransition bool
	PauseAllowed bool
	FreezeCalls  int
	wasFrozen    bool
}

func NewFreeze() *Freeze {
	return &Freeze{PauseAllowed: true}
}

func (f *Freeze) FreezeAll(frozen bool) {
	f.FreezeCalls++
	if frozen {
		f.Frozen = true
		f.wasFrozen = true
		return
	}
	if f.wasFrozen {
		f.Frozen = false
		f.wasFrozen = false
	}
}

func (f *Freeze) SetInTransition(active bool) { f.InTransition = active }
func (f *Freeze) AllowPause(allowed bool) { f.PauseAllowed = allowed }

// Recorder counts event notifications.
type Recorder struct {
	Pre      int
	Post     int
	OnlyMove int
	Log      []string
}

func (r *Recorder) PreTransition() {
	r.Pre++
	r.Log = append(r.Log, "pre")
}

func (r *Recorder) PostTransition() {
	r.Post++
	r.Log = append(r.Log, "post")
}

func (r *Recorder) OnlyMoveCamera() {
	r.OnlyMove++
	r.Log = append(r.Log, "only_move")
}

// FixedClock reports the same step every tick.
type FixedClock struct {
	Step float64
}

func (c FixedClock) Elapsed() float64 { return c.Step }

// Frame is what Run reports after each tick.
type Frame struct {
	Tick     int
	Time     float64
	Active   bool
	Phase    transition.Phase
	Progress float64
}

// Run ticks seq until it goes idle or maxTicks is reached and returns the
// number of ticks performed. observe may be nil.
func Run(seq *transition.Sequencer, clock transition.Clock, maxTicks int, observe func(Frame)) int {
	elapsed := 0.0
	n := 0
	for n < maxTicks && seq.Active() {
		dt := clock.Elapsed()
		seq.Tick(dt)
		elapsed += dt
		n++
		if observe != nil {
			observe(Frame{
				Tick:     n,
				Time:     elapsed,
				Active:   seq.Active(),
				Phase:    seq.Phase(),
				Progress: seq.Progress(),
			})
		}
	}
	return n
}

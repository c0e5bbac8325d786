package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/transition"
)

// cameraHandle exposes a camera entity to a sequencer.
type cameraHandle struct {
	w *ecs.World
	e ecs.Entity
}

func (c cameraHandle) Position() transition.Vec3 {
	tr, ok := ecs.Get(c.w, c.e, component.TransformComponent.Kind())
	if !ok {
		return transition.Vec3{}
	}
	var z float64
	if cam, ok := ecs.Get(c.w, c.e, component.CameraComponent.Kind()); ok {
		z = cam.Z
	}
	return transition.Vec3{X: tr.X, Y: tr.Y, Z: z}
}

func (c cameraHandle) SetPosition(p transition.Vec3) {
	if tr, ok := ecs.Get(c.w, c.e, component.TransformComponent.Kind()); ok {
		tr.X = p.X
		tr.Y = p.Y
	}
	if cam, ok := ecs.Get(c.w, c.e, component.CameraComponent.Kind()); ok {
		cam.Z = p.Z
	}
}

func (c cameraHandle) Bounds() transition.Bounds {
	if cam, ok := ecs.Get(c.w, c.e, component.CameraComponent.Kind()); ok {
		return cam.Bounds
	}
	return transition.Bounds{}
}

func (c cameraHandle) SetBounds(b transition.Bounds) {
	if cam, ok := ecs.Get(c.w, c.e, component.CameraComponent.Kind()); ok {
		cam.Bounds = b
	}
}

func (c cameraHandle) Attach(transition.Player) { c.setAttached(true) }
func (c cameraHandle) Detach() { c.setAttached(false) }

func (c cameraHandle) setAttached(attached bool) {
	if cam, ok := ecs.Get(c.w, c.e, component.CameraComponent.Kind()); ok {
		cam.Attached = attached
	}
}

// playerHandle exposes the player entity to a sequencer. Position is the
// Transform; velocity lives on the cp body.
type playerHandle struct {
	w *ecs.World
	e ecs.Entity
}

func (p playerHandle) Position() transition.Vec2 {
	if tr, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind()); ok {
		return transition.Vec2{X: tr.X, Y: tr.Y}
	}
	return transition.Vec2{}
}

func (p playerHandle) SetPosition(v transition.Vec2) {
	tr, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tr.X = v.X
	tr.Y = v.Y
	if pb, ok := ecs.Get(p.w, p.e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetPosition(bodyCenter(tr, pb))
	}
}

func (p playerHandle) AnimationSpeed() float64 {
	if anim, ok := ecs.Get(p.w, p.e, component.AnimationComponent.Kind()); ok {
		return anim.Speed
	}
	return 0
}

func (p playerHandle) SetAnimationSpeed(speed float64) {
	if anim, ok := ecs.Get(p.w, p.e, component.AnimationComponent.Kind()); ok {
		anim.Speed = speed
	}
}

func (p playerHandle) Velocity() transition.Vec2 {
	if pb, ok := ecs.Get(p.w, p.e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		v := pb.Body.Velocity()
		return transition.Vec2{X: v.X, Y: v.Y}
	}
	return transition.Vec2{}
}

func (p playerHandle) SetVelocity(v transition.Vec2) {
	if pb, ok := ecs.Get(p.w, p.e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetVelocity(v.X, v.Y)
	}
}

func (p playerHandle) Invincible() bool {
	return ecs.Has(p.w, p.e, component.InvulnerableComponent.Kind())
}

func (p playerHandle) SetInvincible(invincible bool) {
	if !invincible {
		ecs.Remove(p.w, p.e, component.InvulnerableComponent.Kind())
		return
	}
	if p.Invincible() {
		return
	}
	if err := ecs.Add(p.w, p.e, component.InvulnerableComponent.Kind(), &component.Invulnerable{}); err != nil {
		panic("camera transition system: add invulnerable: " + err.Error())
	}
}

func (p playerHandle) FreezeInput(frozen bool) {
	if ctrl, ok := ecs.Get(p.w, p.e, component.PlayerControlComponent.Kind()); ok {
		ctrl.InputFrozen = frozen
	}
	if in, ok := ecs.Get(p.w, p.e, component.InputComponent.Kind()); ok && frozen {
		*in = component.Input{}
	}
}

func (p playerHandle) FreezePlayer(frozen bool) {
	ctrl, ok := ecs.Get(p.w, p.e, component.PlayerControlComponent.Kind())
	if !ok {
		return
	}
	if frozen {
		ctrl.Frozen = true
		ctrl.WasFrozen = true
		return
	}
	if !ctrl.WasFrozen {
		return
	}
	ctrl.Frozen = false
	ctrl.WasFrozen = false
	p.SetAnimationSpeed(1)
}

// freezeHandle writes the GameState singleton and every Freezable entity.
type freezeHandle struct {
	w *ecs.World
}

func (f freezeHandle) FreezeAll(frozen bool) {
	if _, gs, ok := ecs.Singleton(f.w, component.GameStateComponent.Kind()); ok {
		applyFreeze(&gs.Frozen, &gs.WasFrozen, frozen)
	}
	ecs.ForEach(f.w, component.FreezableComponent.Kind(), func(_ ecs.Entity, fr *component.Freezable) {
		applyFreeze(&fr.Frozen, &fr.WasFrozen, frozen)
	})
}

func (f freezeHandle) SetInTransition(active bool) {
	if _, gs, ok := ecs.Singleton(f.w, component.GameStateComponent.Kind()); ok {
		gs.InTransition = active
	}
}

func (f freezeHandle) AllowPause(allowed bool) {
	if _, gs, ok := ecs.Singleton(f.w, component.GameStateComponent.Kind()); ok {
		gs.PauseAllowed = allowed
		if !allowed {
			gs.Paused = false
		}
	}
}

// applyFreeze only unfreezes state that was frozen through it.
func applyFreeze(frozenFlag, wasFrozen *bool, frozen bool) {
	if frozen {
		*frozenFlag = true
		*wasFrozen = true
		return
	}
	if *wasFrozen {
		*frozenFlag = false
		*wasFrozen = false
	}
}

func gameFrozen(w *ecs.World) bool {
	_, gs, ok := ecs.Singleton(w, component.GameStateComponent.Kind())
	return ok && (gs.Frozen || gs.Paused)
}

func bodyCenter(tr *component.Transform, pb *component.PhysicsBody) cp.Vector {
	return cp.Vector{X: tr.X + pb.Width/2, Y: tr.Y + pb.Height/2}
}

// entityBB is the world box of an entity given its Transform and an offset
// box relative to it.
func entityBB(tr *component.Transform, box component.AABB) cp.BB {
	l := tr.X + box.X
	b := tr.Y + box.Y
	return cp.BB{L: l, B: b, R: l + box.W, T: b + box.H}
}

func playerBB(w *ecs.World, e ecs.Entity) (cp.BB, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	pl, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || pl.Width <= 0 || pl.Height <= 0 {
		return cp.BB{}, false
	}
	return entityBB(tr, component.AABB{W: pl.Width, H: pl.Height}), true
}

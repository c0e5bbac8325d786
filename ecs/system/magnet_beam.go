package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
)

const (
	EventBeamLocked    = "magnet_beam.locked"
	EventBeamDestroyed = "magnet_beam.destroyed"

	minBeamTime       = 0.1
	segmentsPerSecond = 10
)

// MagnetBeamSystem grows beams until they touch a Solid, then locks them.
// A locked beam is solid while the player is above it and falling, passes
// through while the player is below it, and expires after its destroy delay.
// Freezable beams neither grow nor expire while frozen.
type MagnetBeamSystem struct {
	dt float64
}

func NewMagnetBeamSystem(dt float64) *MagnetBeamSystem {
	return &MagnetBeamSystem{dt: dt}
}

func (s *MagnetBeamSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	playerEnt, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())

	ecs.ForEach2(w, component.MagnetBeamComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, beam *component.MagnetBeam, tr *component.Transform) {
		frozen := false
		if fr, ok := ecs.Get(w, e, component.FreezableComponent.Kind()); ok {
			frozen = fr.Frozen
		}

		if !beam.Locked {
			if frozen {
				return
			}
			if hasPlayer {
				s.follow(w, playerEnt, beam, tr)
			}
			s.grow(beam)
			if touchesSolid(w, beamBB(beam, tr)) {
				lockBeam(beam)
				w.Events().Push(ecs.Event{Type: EventBeamLocked, Data: e})
			}
			return
		}

		if hasPlayer {
			s.updateSolid(w, e, playerEnt, beam, tr)
		}

		if beam.DestroyDelay > 0 && !frozen {
			beam.DestroyTimer -= s.dt
			if beam.DestroyTimer <= 0 {
				ecs.DestroyEntity(w, e)
				w.Events().Push(ecs.Event{Type: EventBeamDestroyed, Data: e})
			}
		}
	})
}

// follow keeps an unlocked beam anchored in front of the player.
func (s *MagnetBeamSystem) follow(w *ecs.World, playerEnt ecs.Entity, beam *component.MagnetBeam, tr *component.Transform) {
	ptr, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tr.X = ptr.X + beam.OffsetX
	tr.Y = ptr.Y + beam.OffsetY
}

func (s *MagnetBeamSystem) grow(beam *component.MagnetBeam) {
	if beam.BeamTime >= beam.MaxBeamTime && beam.Segments > 0 {
		return
	}
	beam.Elapsed += s.dt
	beam.BeamTime = math.Min(math.Max(beam.Elapsed, minBeamTime), beam.MaxBeamTime)
	segments := int(beam.BeamTime * segmentsPerSecond)
	if beam.MaxSegments > 0 && segments > beam.MaxSegments {
		segments = beam.MaxSegments
	}
	if segments < 1 {
		segments = 1
	}
	beam.Segments = segments
}

func lockBeam(beam *component.MagnetBeam) {
	beam.Locked = true
	beam.DestroyTimer = beam.DestroyDelay
}

// updateSolid toggles the beam's collider against the player's vertical
// position: solid once the player is above it and not rising, pass-through
// once the player is below it.
func (s *MagnetBeamSystem) updateSolid(w *ecs.World, beamEnt, playerEnt ecs.Entity, beam *component.MagnetBeam, tr *component.Transform) {
	ptr, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
	if !ok {
		return
	}
	playerY := ptr.Y
	if pl, ok := ecs.Get(w, playerEnt, component.PlayerComponent.Kind()); ok {
		playerY += pl.Height / 2
	}
	var vy float64
	if pb, ok := ecs.Get(w, playerEnt, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		vy = pb.Body.Velocity().Y
	}

	bb := beamBB(beam, tr)
	above := playerY < bb.B && vy >= 0
	below := playerY > bb.T

	switch {
	case above && !beam.Solid:
		beam.Solid = true
		if err := ecs.Add(w, beamEnt, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			OffsetX: bb.L - tr.X,
			Width:   bb.R - bb.L,
			Height:  bb.T - bb.B,
			Static:  true,
		}); err != nil {
			panic("magnet beam system: add body: " + err.Error())
		}
	case below && beam.Solid:
		beam.Solid = false
		ecs.Remove(w, beamEnt, component.PhysicsBodyComponent.Kind())
	}
}

// beamBB is the beam's world box. The Transform is the top of the beam's
// origin edge; the beam extends from it along Direction.
func beamBB(beam *component.MagnetBeam, tr *component.Transform) cp.BB {
	width := float64(beam.Segments) * beam.SegmentWidth
	l := tr.X
	if beam.Direction < 0 {
		l -= width
	}
	return cp.BB{L: l, B: tr.Y, R: l + width, T: tr.Y + beam.Height}
}

func touchesSolid(w *ecs.World, bb cp.BB) bool {
	hit := false
	ecs.ForEach2(w, component.SolidComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, solid *component.Solid, tr *component.Transform) {
		if !hit && bb.Intersects(entityBB(tr, component.AABB{W: solid.Width, H: solid.Height})) {
			hit = true
		}
	})
	return hit
}

// FreezeBeam freezes or unfreezes one beam. Unfreezing a beam that was not
// frozen is ignored.
func FreezeBeam(w *ecs.World, e ecs.Entity, freeze bool) {
	if fr, ok := ecs.Get(w, e, component.FreezableComponent.Kind()); ok {
		applyFreeze(&fr.Frozen, &fr.WasFrozen, freeze)
	}
}

// HideBeams shows or hides every magnet beam. Beams keep colliding while
// hidden.
func HideBeams(w *ecs.World, hide bool) int {
	n := 0
	ecs.ForEach2(w, component.MagnetBeamComponent.Kind(), component.AppearanceComponent.Kind(), func(_ ecs.Entity, _ *component.MagnetBeam, look *component.Appearance) {
		look.Hidden = hide
		n++
	})
	return n
}

package system

import (
	"log"
	"math"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
)

const (
	playerMoveSpeed = 220.0
	playerJumpSpeed = 600.0
	groundedEpsilon = 1.0
)

// BeamSpawner creates a magnet beam whose origin edge is centred on x, y
// and which grows towards dir.
type BeamSpawner func(w *ecs.World, x, y, dir float64) (ecs.Entity, error)

type PlayerControllerSystem struct {
	physics   *PhysicsSystem
	spawnBeam BeamSpawner
}

// NewPlayerControllerSystem maps Input onto the player body. physics and
// spawnBeam may be nil.
func NewPlayerControllerSystem(physics *PhysicsSystem, spawnBeam BeamSpawner) *PlayerControllerSystem {
	return &PlayerControllerSystem{physics: physics, spawnBeam: spawnBeam}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil || gameFrozen(w) {
		return
	}

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.PlayerControlComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, pl *component.Player, ctrl *component.PlayerControl, input *component.Input, bodyComp *component.PhysicsBody) {
			if ctrl.Frozen || ctrl.InputFrozen || bodyComp.Body == nil {
				return
			}

			moveSpeed := pl.MoveSpeed
			if moveSpeed <= 0 {
				moveSpeed = playerMoveSpeed
			}
			jumpSpeed := pl.JumpSpeed
			if jumpSpeed <= 0 {
				jumpSpeed = playerJumpSpeed
			}

			vel := bodyComp.Body.Velocity()
			vel.X = input.MoveX * moveSpeed
			if input.MoveX != 0 {
				pl.Facing = math.Copysign(1, input.MoveX)
			}
			if input.JumpPressed && p.grounded(bodyComp) {
				vel.Y = -jumpSpeed
			}
			bodyComp.Body.SetVelocityVector(vel)

			if input.BeamPressed && p.spawnBeam != nil && !growingBeam(w) {
				tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
				if !ok {
					return
				}
				facing := pl.Facing
				if facing == 0 {
					facing = 1
				}
				x := tr.X + pl.Width/2 + facing*pl.Width/2
				y := tr.Y + pl.Height/2
				beamEnt, err := p.spawnBeam(w, x, y, facing)
				if err != nil {
					log.Printf("player controller: spawn beam: %v", err)
					return
				}
				if beam, ok := ecs.Get(w, beamEnt, component.MagnetBeamComponent.Kind()); ok {
					if btr, ok := ecs.Get(w, beamEnt, component.TransformComponent.Kind()); ok {
						beam.OffsetX = btr.X - tr.X
						beam.OffsetY = btr.Y - tr.Y
					}
				}
			}
		})
}

func (p *PlayerControllerSystem) grounded(bodyComp *component.PhysicsBody) bool {
	if p.physics != nil {
		return p.physics.Grounded(bodyComp)
	}
	return math.Abs(bodyComp.Body.Velocity().Y) < groundedEpsilon
}

func growingBeam(w *ecs.World) bool {
	growing := false
	ecs.ForEach(w, component.MagnetBeamComponent.Kind(), func(_ ecs.Entity, beam *component.MagnetBeam) {
		if !beam.Locked {
			growing = true
		}
	})
	return growing
}

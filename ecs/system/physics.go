package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/camtransition/common"
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
)

type PhysicsSystem struct {
	space    *cp.Space
	dt       float64
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return &PhysicsSystem{
		space:    space,
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Update syncs bodies with PhysicsBody components and steps the space. The
// space does not step while the game is frozen or paused, which keeps
// bodies where a camera transition put them.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	if gameFrozen(w) {
		return
	}
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		if pb.Width <= 0 || pb.Height <= 0 {
			return
		}

		var body *cp.Body
		if pb.Static {
			body = ps.space.StaticBody
		} else {
			mass := pb.Mass
			if mass <= 0 {
				mass = 1
			}
			// Infinite moment keeps the box upright.
			body = cp.NewBody(mass, math.Inf(1))
			body.SetPosition(bodyCenter(tr, pb))
			ps.space.AddBody(body)
		}

		var shape *cp.Shape
		if pb.Static {
			bb := entityBB(tr, component.AABB{X: pb.OffsetX, Y: pb.OffsetY, W: pb.Width, H: pb.Height})
			shape = cp.NewBox2(body, bb, 0)
		} else {
			shape = cp.NewBox(body, pb.Width, pb.Height, 0)
		}
		shape.SetFriction(pb.Friction)
		ps.space.AddShape(shape)

		pb.Body = body
		pb.Shape = shape
		ps.entities[e] = &bodyInfo{body: body, shape: shape, static: pb.Static}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) {
		if pb.Static || pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		tr.X = pos.X - pb.Width/2
		tr.Y = pos.Y - pb.Height/2
	})
}

// Grounded reports whether a dynamic body rests on something below it.
func (ps *PhysicsSystem) Grounded(pb *component.PhysicsBody) bool {
	if ps == nil || pb == nil || pb.Body == nil {
		return false
	}
	grounded := false
	pb.Body.EachArbiter(func(arb *cp.Arbiter) {
		// EachArbiter orders the pair so the normal points away from pb.
		if arb.Normal().Y > 0.5 {
			grounded = true
		}
	})
	return grounded
}

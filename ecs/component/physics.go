package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are created by the physics system. OffsetX/OffsetY shift a
// static collider from the Transform.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	OffsetX  float64
	OffsetY  float64
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Static   bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Solid is level geometry the player stands on and beams lock against.
type Solid struct {
	Width  float64
	Height float64
}

var SolidComponent = NewComponent[Solid]()

package component

import "github.com/milk9111/camtransition/transition"

// Camera follows TargetName while Attached. Its Transform is the top-left of
// the view; Bounds clamp that position. Z is the render depth and is never
// changed by transitions.
type Camera struct {
	TargetName string
	Z          float64
	ViewW      float64
	ViewH      float64
	Bounds     transition.Bounds
	Attached   bool
}

var CameraComponent = NewComponent[Camera]()

package component

import "github.com/milk9111/camtransition/transition"

// AABB is an axis-aligned box. X/Y are offsets from the owning Transform.
type AABB struct {
	X float64
	Y float64
	W float64
	H float64
}

// CameraTransition is a trigger volume driving one sequencer. Settings is
// the authored record; Sequencer is built from it on first use and
// Overlapping tracks the player so a trigger fires once per entry.
type CameraTransition struct {
	Trigger     AABB
	Settings    transition.Settings
	Script      string
	Sequencer   *transition.Sequencer
	Overlapping bool
}

var CameraTransitionComponent = NewComponent[CameraTransition]()

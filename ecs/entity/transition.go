package entity

import (
	"fmt"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/prefabs"
)

// NewCameraTransition places a trigger at the settings position. The
// sequencer itself is built by the camera transition system on first use.
func NewCameraTransition(w *ecs.World, spec prefabs.TransitionSpec) (ecs.Entity, error) {
	if err := spec.Settings.Validate(); err != nil {
		return 0, fmt.Errorf("camera transition %s: %w", spec.Name, err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.Position.X,
		Y:      spec.Position.Y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("camera transition %s: add transform: %w", spec.Name, err)
	}

	if err := ecs.Add(w, e, component.CameraTransitionComponent.Kind(), &component.CameraTransition{
		Trigger: component.AABB{
			X: spec.Trigger.OffsetX,
			Y: spec.Trigger.OffsetY,
			W: spec.Trigger.Width,
			H: spec.Trigger.Height,
		},
		Settings: spec.Settings,
		Script:   spec.Script,
	}); err != nil {
		return 0, fmt.Errorf("camera transition %s: add trigger: %w", spec.Name, err)
	}

	return e, nil
}

package entity

import (
	"fmt"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/prefabs"
	"golang.org/x/image/colornames"
)

// NewMagnetBeam spawns a beam whose origin edge is centred on x, y and which
// grows towards dir.
func NewMagnetBeam(w *ecs.World, x, y, dir float64, spec prefabs.BeamSpec) (ecs.Entity, error) {
	if dir == 0 {
		dir = 1
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      x,
		Y:      y - spec.Height/2,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("magnet beam: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.MagnetBeamComponent.Kind(), &component.MagnetBeam{
		Direction:    dir,
		MaxSegments:  spec.MaxSegments,
		MaxBeamTime:  spec.MaxBeamTime,
		DestroyDelay: spec.DestroyDelay,
		SegmentWidth: spec.SegmentWidth,
		Height:       spec.Height,
	}); err != nil {
		return 0, fmt.Errorf("magnet beam: add beam: %w", err)
	}
	if err := ecs.Add(w, e, component.FreezableComponent.Kind(), &component.Freezable{}); err != nil {
		return 0, fmt.Errorf("magnet beam: add freezable: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: spec.Color.Or(colornames.Lightskyblue),
		Layer: 1,
	}); err != nil {
		return 0, fmt.Errorf("magnet beam: add appearance: %w", err)
	}
	return e, nil
}

// BeamSpawner binds spec for the player controller.
func BeamSpawner(spec prefabs.BeamSpec) func(w *ecs.World, x, y, dir float64) (ecs.Entity, error) {
	return func(w *ecs.World, x, y, dir float64) (ecs.Entity, error) {
		return NewMagnetBeam(w, x, y, dir, spec)
	}
}

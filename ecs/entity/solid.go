package entity

import (
	"fmt"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/prefabs"
	"golang.org/x/image/colornames"
)

func NewSolid(w *ecs.World, spec prefabs.SolidSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), newTransform(spec.Transform)); err != nil {
		return 0, fmt.Errorf("solid %s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.SolidComponent.Kind(), &component.Solid{Width: spec.Width, Height: spec.Height}); err != nil {
		return 0, fmt.Errorf("solid %s: add solid: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Friction: spec.Friction,
		Static:   true,
	}); err != nil {
		return 0, fmt.Errorf("solid %s: add physics body: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), &component.Appearance{
		Color: spec.Color.Or(colornames.Slategray),
	}); err != nil {
		return 0, fmt.Errorf("solid %s: add appearance: %w", spec.Name, err)
	}
	return e, nil
}

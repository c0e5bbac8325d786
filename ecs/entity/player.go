package entity

import (
	"fmt"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/prefabs"
	"golang.org/x/image/colornames"
)

func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	player := ecs.CreateEntity(w)

	defs := make(map[string]component.AnimationDef, len(spec.Animation.Defs))
	for name, def := range spec.Animation.Defs {
		if def.Name == "" {
			def.Name = name
		}
		defs[name] = component.AnimationDef{
			Name:       def.Name,
			FrameCount: def.FrameCount,
			FPS:        def.FPS,
			Loop:       def.Loop,
		}
	}

	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}

	steps := []struct {
		name string
		add  func() error
	}{
		{"player tag", func() error {
			return ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
		}},
		{"player", func() error {
			return ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
				MoveSpeed: spec.MoveSpeed,
				JumpSpeed: spec.JumpSpeed,
				Width:     spec.Collider.Width,
				Height:    spec.Collider.Height,
				Facing:    1,
			})
		}},
		{"player control", func() error {
			return ecs.Add(w, player, component.PlayerControlComponent.Kind(), &component.PlayerControl{})
		}},
		{"input", func() error {
			return ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{})
		}},
		{"transform", func() error {
			return ecs.Add(w, player, component.TransformComponent.Kind(), newTransform(spec.Transform))
		}},
		{"animation", func() error {
			return ecs.Add(w, player, component.AnimationComponent.Kind(), &component.Animation{
				Defs:    defs,
				Current: spec.Animation.Current,
				Speed:   1,
				Playing: spec.Animation.Playing,
			})
		}},
		{"physics body", func() error {
			return ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:    spec.Collider.Width,
				Height:   spec.Collider.Height,
				Mass:     mass,
				Friction: spec.Friction,
			})
		}},
		{"appearance", func() error {
			return ecs.Add(w, player, component.AppearanceComponent.Kind(), &component.Appearance{
				Color: spec.Color.Or(colornames.Gold),
				Layer: 2,
			})
		}},
	}
	for _, step := range steps {
		if err := step.add(); err != nil {
			return 0, fmt.Errorf("player: add %s: %w", step.name, err)
		}
	}

	return player, nil
}

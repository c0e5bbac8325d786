package entity

import (
	"fmt"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/prefabs"
)

// Level holds the entities LoadLevelToWorld created.
type Level struct {
	Spec        *prefabs.LevelSpec
	GameState   ecs.Entity
	Camera      ecs.Entity
	Player      ecs.Entity
	Solids      []ecs.Entity
	Transitions []ecs.Entity
}

func NewGameState(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.GameStateComponent.Kind(), &component.GameState{PauseAllowed: true}); err != nil {
		return 0, fmt.Errorf("game state: add: %w", err)
	}
	return e, nil
}

// LoadLevelToWorld populates the world with a level's game state, camera,
// player, solids and camera transition triggers.
func LoadLevelToWorld(w *ecs.World, spec *prefabs.LevelSpec) (*Level, error) {
	if w == nil {
		return nil, fmt.Errorf("load level: world is nil")
	}
	if spec == nil {
		return nil, fmt.Errorf("load level: spec is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("load level %s: %w", spec.Name, err)
	}

	lvl := &Level{Spec: spec}
	var err error
	if lvl.GameState, err = NewGameState(w); err != nil {
		return nil, err
	}
	if lvl.Camera, err = NewCamera(w, spec.Camera); err != nil {
		return nil, err
	}
	if lvl.Player, err = NewPlayer(w, spec.Player); err != nil {
		return nil, err
	}
	for _, s := range spec.Solids {
		e, err := NewSolid(w, s)
		if err != nil {
			return nil, err
		}
		lvl.Solids = append(lvl.Solids, e)
	}
	for _, t := range spec.Transitions {
		e, err := NewCameraTransition(w, t)
		if err != nil {
			return nil, err
		}
		lvl.Transitions = append(lvl.Transitions, e)
	}
	return lvl, nil
}

// LoadLevel loads a level spec by file name and places it in the world.
func LoadLevel(w *ecs.World, name string) (*Level, error) {
	spec, err := prefabs.LoadLevelSpec(name)
	if err != nil {
		return nil, err
	}
	return LoadLevelToWorld(w, spec)
}

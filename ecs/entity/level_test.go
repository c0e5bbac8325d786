package entity

import (
	"testing"

	"github.com/milk9111/camtransition/common"
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/ecs/system"
	"github.com/milk9111/camtransition/prefabs"
	"github.com/milk9111/camtransition/transition"
)

func TestLoadLevel(t *testing.T) {
	w := ecs.NewWorld()
	lvl, err := LoadLevel(w, "demo_level.yaml")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}

	if len(lvl.Solids) != len(lvl.Spec.Solids) || len(lvl.Transitions) != 2 {
		t.Fatalf("unexpected level %+v", lvl)
	}

	cases := []struct {
		name string
		e    ecs.Entity
		has  []component.Kind
	}{
		{"game_state", lvl.GameState, []component.Kind{component.GameStateComponent.Kind()}},
		{"camera", lvl.Camera, []component.Kind{component.CameraComponent.Kind(), component.CameraTagComponent.Kind(), component.TransformComponent.Kind()}},
		{"player", lvl.Player, []component.Kind{
			component.PlayerTagComponent.Kind(),
			component.PlayerComponent.Kind(),
			component.PlayerControlComponent.Kind(),
			component.InputComponent.Kind(),
			component.AnimationComponent.Kind(),
			component.PhysicsBodyComponent.Kind(),
			component.AppearanceComponent.Kind(),
		}},
		{"solid", lvl.Solids[0], []component.Kind{component.SolidComponent.Kind(), component.PhysicsBodyComponent.Kind()}},
		{"trigger", lvl.Transitions[0], []component.Kind{component.CameraTransitionComponent.Kind(), component.TransformComponent.Kind()}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ecs.Query(w, c.has...)
			found := false
			for _, e := range got {
				if e == c.e {
					found = true
				}
			}
			if !found {
				t.Fatalf("entity %s is missing a component", c.e)
			}
		})
	}

	ct, ok := ecs.Get(w, lvl.Transitions[0], component.CameraTransitionComponent.Kind())
	if !ok || ct.Settings.Name != "door" || ct.Trigger.W != 20 || ct.Sequencer != nil {
		t.Fatalf("unexpected trigger %+v", ct)
	}
	tr, _ := ecs.Get(w, lvl.Transitions[0], component.TransformComponent.Kind())
	if tr.X != 950 {
		t.Fatalf("trigger should sit at its settings position, got %+v", tr)
	}
	cam, _ := ecs.Get(w, lvl.Camera, component.CameraComponent.Kind())
	if !cam.Attached || cam.Z != -10 || cam.Bounds.Max.X != 320 {
		t.Fatalf("unexpected camera %+v", cam)
	}
}

func TestLoadLevelToWorldRejectsInvalidSpec(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := LoadLevelToWorld(w, nil); err == nil {
		t.Fatalf("expected an error for a nil spec")
	}
	if _, err := LoadLevelToWorld(w, &prefabs.LevelSpec{}); err == nil {
		t.Fatalf("expected an error for a level without a player size")
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("invalid levels must not create entities, got %d", n)
	}
}

func TestNewMagnetBeam(t *testing.T) {
	w := ecs.NewWorld()
	spawn := BeamSpawner(prefabs.BeamSpec{SegmentWidth: 8, Height: 6, MaxBeamTime: 1})
	e, err := spawn(w, 100, 50, 0)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	beam, _ := ecs.Get(w, e, component.MagnetBeamComponent.Kind())
	if tr.X != 100 || tr.Y != 47 || beam.Direction != 1 {
		t.Fatalf("unexpected beam %+v %+v", tr, beam)
	}
	if !ecs.Has(w, e, component.FreezableComponent.Kind()) {
		t.Fatalf("beams must be freezable")
	}
}

// TestDemoDoorTransition walks the demo level through the door trigger
// with the systems the game runs.
func TestDemoDoorTransition(t *testing.T) {
	w := ecs.NewWorld()
	lvl, err := LoadLevel(w, "demo_level.yaml")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	physics := system.NewPhysicsSystem(common.Step)
	w.AddSystem(physics)
	w.AddSystem(system.NewCameraTransitionSystem(system.FixedStep(common.Step), prefabs.LoadScript))
	w.AddSystem(system.NewCameraSystem())

	tr, _ := ecs.Get(w, lvl.Player, component.TransformComponent.Kind())
	tr.X = 940

	var scriptEvents []string
	completed := false
	for i := 0; i < 600 && !completed; i++ {
		w.Update()
		for _, evt := range w.Events().Pending() {
			switch evt.Type {
			case system.EventTransitionScript:
				scriptEvents = append(scriptEvents, evt.Data.(system.ScriptEvent).Name)
			case system.EventTransitionCompleted:
				completed = true
			}
		}
	}
	if !completed {
		t.Fatalf("door transition never completed")
	}

	if tr.X != 1004 {
		t.Fatalf("expected the player pushed to 1004, got %v", tr.X)
	}
	camTr, _ := ecs.Get(w, lvl.Camera, component.TransformComponent.Kind())
	cam, _ := ecs.Get(w, lvl.Camera, component.CameraComponent.Kind())
	if camTr.X != 960 || cam.Bounds.Min.X != 960 || !cam.Attached {
		t.Fatalf("unexpected camera %+v %+v", camTr, cam)
	}
	want := []string{"door_closing:door", "DOOR_settled"}
	if len(scriptEvents) != len(want) || scriptEvents[0] != want[0] || scriptEvents[1] != want[1] {
		t.Fatalf("expected script events %v, got %v", want, scriptEvents)
	}

	ct, _ := ecs.Get(w, lvl.Transitions[0], component.CameraTransitionComponent.Kind())
	if ct.Settings.Entry != transition.EntryExit || ct.Settings.Active {
		t.Fatalf("expected the door to wait for an exit, got %+v", ct.Settings)
	}
}

package system

import (
	"testing"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/transition"
)

const testStep = 0.05

type rig struct {
	w       *ecs.World
	physics *PhysicsSystem
	cam     ecs.Entity
	player  ecs.Entity
	trigger ecs.Entity
}

func doorConfig() transition.Config {
	cfg := transition.DefaultConfig()
	cfg.PreTransitionDelay = 0.1
	cfg.TransitionDelay = 0.2
	cfg.PostTransitionDelay = 0.1
	cfg.CameraMin = transition.Vec2{X: 960}
	cfg.CameraMax = transition.Vec2{X: 1280}
	cfg.PlayerChange = transition.Vec2{X: 64}
	return cfg
}

func newRig(t *testing.T, cfg transition.Config) *rig {
	t.Helper()
	w := ecs.NewWorld()
	r := &rig{w: w, physics: NewPhysicsSystem(testStep)}

	mustAdd(t, w, ecs.CreateEntity(w), component.GameStateComponent.Kind(), &component.GameState{PauseAllowed: true})

	r.cam = ecs.CreateEntity(w)
	mustAdd(t, w, r.cam, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, r.cam, component.CameraComponent.Kind(), &component.Camera{
		TargetName: "player",
		Z:          -10,
		ViewW:      640,
		ViewH:      360,
		Bounds:     transition.Bounds{Max: transition.Vec2{X: 320}},
		Attached:   true,
	})

	r.player = ecs.CreateEntity(w)
	mustAdd(t, w, r.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, r.player, component.PlayerComponent.Kind(), &component.Player{Width: 16, Height: 32, Facing: 1})
	mustAdd(t, w, r.player, component.PlayerControlComponent.Kind(), &component.PlayerControl{})
	mustAdd(t, w, r.player, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, r.player, component.AnimationComponent.Kind(), &component.Animation{Speed: 1, Playing: true})
	mustAdd(t, w, r.player, component.TransformComponent.Kind(), &component.Transform{X: 800, Y: 200})
	mustAdd(t, w, r.player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 16, Height: 32, Mass: 1})

	r.trigger = ecs.CreateEntity(w)
	mustAdd(t, w, r.trigger, component.TransformComponent.Kind(), &component.Transform{X: 950})
	mustAdd(t, w, r.trigger, component.CameraTransitionComponent.Kind(), &component.CameraTransition{
		Trigger:  component.AABB{W: 20, H: 400},
		Settings: transition.NewSettings("door", cfg),
	})

	r.physics.syncEntities(w)
	return r
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("missing component on %s", e)
	}
	return v
}

func (r *rig) movePlayer(x float64) {
	playerHandle{w: r.w, e: r.player}.SetPosition(transition.Vec2{X: x, Y: 200})
}

func (r *rig) gameState(t *testing.T) *component.GameState {
	t.Helper()
	_, gs, ok := ecs.Singleton(r.w, component.GameStateComponent.Kind())
	if !ok {
		t.Fatalf("missing game state")
	}
	return gs
}

// eventLog collects world events by type.
type eventLog map[string][]ecs.Event

func (l eventLog) drain(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		l[evt.Type] = append(l[evt.Type], evt)
	}
}

package system

import (
	"errors"
	"fmt"
	"testing"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/transition"
)

// runUntilIdle updates sys until the trigger's sequence completes.
func runUntilIdle(t *testing.T, r *rig, sys *CameraTransitionSystem, log eventLog) int {
	t.Helper()
	ct := mustGet(t, r.w, r.trigger, component.CameraTransitionComponent.Kind())
	for i := 1; i <= 100; i++ {
		sys.Update(r.w)
		log.drain(r.w)
		if !ct.Sequencer.Active() {
			return i
		}
	}
	t.Fatalf("sequence did not complete")
	return 0
}

func TestCameraTransitionSystemEnterExit(t *testing.T) {
	r := newRig(t, doorConfig())
	sys := NewCameraTransitionSystem(FixedStep(testStep), nil)
	log := eventLog{}
	player := playerHandle{w: r.w, e: r.player}
	player.SetVelocity(transition.Vec2{X: 50})

	sys.Update(r.w)
	log.drain(r.w)
	ct := mustGet(t, r.w, r.trigger, component.CameraTransitionComponent.Kind())
	if ct.Sequencer == nil || ct.Sequencer.Active() || len(log) != 0 {
		t.Fatalf("expected an idle sequencer and no events, got %v", log)
	}

	r.movePlayer(940)
	sys.Update(r.w)
	log.drain(r.w)

	gs := r.gameState(t)
	ctrl := mustGet(t, r.w, r.player, component.PlayerControlComponent.Kind())
	cam := mustGet(t, r.w, r.cam, component.CameraComponent.Kind())
	anim := mustGet(t, r.w, r.player, component.AnimationComponent.Kind())
	if !ct.Sequencer.Active() || !gs.Frozen || !gs.InTransition || gs.PauseAllowed {
		t.Fatalf("expected a locked world, got %+v", gs)
	}
	if !ctrl.Frozen || !ctrl.InputFrozen || cam.Attached || anim.Speed != 0 || !player.Invincible() {
		t.Fatalf("expected a frozen player and detached camera")
	}

	runUntilIdle(t, r, sys, log)

	camTr := mustGet(t, r.w, r.cam, component.TransformComponent.Kind())
	if got := player.Position(); got != (transition.Vec2{X: 1004, Y: 200}) {
		t.Fatalf("player should end at 1004, got %+v", got)
	}
	if camTr.X != 960 || camTr.Y != 0 || cam.Z != -10 {
		t.Fatalf("camera should end at the target min, got %+v z=%v", camTr, cam.Z)
	}
	if cam.Bounds != doorConfig().Target() || !cam.Attached {
		t.Fatalf("camera should follow inside the target bounds, got %+v", cam)
	}
	if gs.Frozen || gs.InTransition || !gs.PauseAllowed || ctrl.Frozen || ctrl.InputFrozen {
		t.Fatalf("world should be unlocked, got %+v %+v", gs, ctrl)
	}
	if player.Invincible() || player.Velocity() != (transition.Vec2{X: 50}) || anim.Speed != 1 {
		t.Fatalf("player snapshot not restored")
	}
	for _, kind := range []string{EventTransitionStarted, EventPreTransition, EventPostTransition, EventTransitionCompleted} {
		if len(log[kind]) != 1 {
			t.Fatalf("expected one %s event, got %d", kind, len(log[kind]))
		}
	}
	if ct.Settings.Entry != transition.EntryExit {
		t.Fatalf("component record should track the sequencer, got %v", ct.Settings.Entry)
	}

	r.movePlayer(945)
	sys.Update(r.w)
	if !ct.Sequencer.Active() || ct.Sequencer.Entry() != transition.EntryExit {
		t.Fatalf("expected an exit sequence")
	}
	runUntilIdle(t, r, sys, log)
	if got := player.Position(); got.X != 881 {
		t.Fatalf("player should end at 881, got %+v", got)
	}
	if camTr.X != 320 || cam.Bounds != (transition.Bounds{Max: transition.Vec2{X: 320}}) {
		t.Fatalf("camera should return to the previous bounds, got %+v %+v", camTr, cam.Bounds)
	}
}

func TestCameraTransitionSystemFiresOncePerOverlap(t *testing.T) {
	cfg := doorConfig()
	cfg.PlayerChange = transition.Vec2{}
	r := newRig(t, cfg)
	sys := NewCameraTransitionSystem(FixedStep(testStep), nil)
	log := eventLog{}

	r.movePlayer(955)
	runUntilIdle(t, r, sys, log)
	for i := 0; i < 10; i++ {
		sys.Update(r.w)
		log.drain(r.w)
	}
	if n := len(log[EventTransitionStarted]); n != 1 {
		t.Fatalf("standing in the trigger must not refire, got %d starts", n)
	}

	r.movePlayer(800)
	sys.Update(r.w)
	r.movePlayer(955)
	sys.Update(r.w)
	log.drain(r.w)
	if n := len(log[EventTransitionStarted]); n != 2 {
		t.Fatalf("re-entering should fire again, got %d starts", n)
	}
}

func TestCameraTransitionSystemIgnoresTriggersWhileLocked(t *testing.T) {
	r := newRig(t, doorConfig())
	sys := NewCameraTransitionSystem(FixedStep(testStep), nil)

	second := ecs.CreateEntity(r.w)
	mustAdd(t, r.w, second, component.TransformComponent.Kind(), &component.Transform{X: 1000})
	mustAdd(t, r.w, second, component.CameraTransitionComponent.Kind(), &component.CameraTransition{
		Trigger:  component.AABB{W: 20, H: 400},
		Settings: transition.NewSettings("inner", doorConfig()),
	})

	r.movePlayer(940)
	runUntilIdle(t, r, sys, eventLog{})
	for i := 0; i < 5; i++ {
		sys.Update(r.w)
	}

	inner := mustGet(t, r.w, second, component.CameraTransitionComponent.Kind())
	if inner.Sequencer.Active() || !inner.Overlapping {
		t.Fatalf("landing in a trigger during a transition must not start it")
	}
	if inner.Settings.Entry != transition.EntryEnter {
		t.Fatalf("inner trigger should never have run")
	}
}

func TestCameraTransitionSystemOnlyMoveCamera(t *testing.T) {
	cfg := doorConfig()
	cfg.OnlyMoveCamera = true
	r := newRig(t, cfg)
	sys := NewCameraTransitionSystem(FixedStep(testStep), nil)
	log := eventLog{}

	r.movePlayer(955)
	for i := 0; i < 3; i++ {
		sys.Update(r.w)
		log.drain(r.w)
	}

	cam := mustGet(t, r.w, r.cam, component.CameraComponent.Kind())
	if cam.Bounds != cfg.Target() || !cam.Attached {
		t.Fatalf("expected swapped bounds on an attached camera, got %+v", cam)
	}
	if len(log[EventOnlyMoveCamera]) != 1 || len(log[EventTransitionStarted]) != 0 {
		t.Fatalf("unexpected events %v", log)
	}
	if gs := r.gameState(t); gs.Frozen || gs.InTransition {
		t.Fatalf("only-move triggers must not lock the world")
	}
}

func TestCameraTransitionSystemScript(t *testing.T) {
	cases := []struct {
		name   string
		policy transition.EventCall
		src    string
		want   []string
	}{
		{
			name:   "both_hooks",
			policy: transition.EventBothBeforeDelay,
			src:    `onPreTransition := func(name) { emit("fade:" + name) }` + "\n" + `onPostTransition := func(name) { emit("done") }`,
			want:   []string{"fade:door", "done"},
		},
		{
			name:   "post_hook_only",
			policy: transition.EventOnEnterAfterDelay,
			src:    `onPostTransition := func(name) { emit("done") }`,
			want:   []string{"done"},
		},
		{
			name:   "broken_script_is_skipped",
			policy: transition.EventBothBeforeDelay,
			src:    `onPreTransition := func(`,
			want:   nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := doorConfig()
			cfg.EventCallPreDelay = c.policy
			cfg.EventCallPostDelay = c.policy
			r := newRig(t, cfg)
			ct := mustGet(t, r.w, r.trigger, component.CameraTransitionComponent.Kind())
			ct.Script = "door.tengo"

			loads := 0
			sys := NewCameraTransitionSystem(FixedStep(testStep), func(path string) ([]byte, error) {
				loads++
				if path != "door.tengo" {
					return nil, fmt.Errorf("unexpected path %s", path)
				}
				return []byte(c.src), nil
			})
			log := eventLog{}

			r.movePlayer(940)
			runUntilIdle(t, r, sys, log)

			var got []string
			for _, evt := range log[EventTransitionScript] {
				se := evt.Data.(ScriptEvent)
				if se.Trigger != "door" {
					t.Fatalf("unexpected trigger %q", se.Trigger)
				}
				got = append(got, se.Name)
			}
			if fmt.Sprint(got) != fmt.Sprint(c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if loads != 1 {
				t.Fatalf("script should load once, got %d", loads)
			}
		})
	}
}

func TestReconfigureTransition(t *testing.T) {
	r := newRig(t, doorConfig())
	sys := NewCameraTransitionSystem(FixedStep(testStep), nil)

	cfg := doorConfig()
	cfg.PlayerChange = transition.Vec2{X: 96}
	if err := ReconfigureTransition(r.w, "door", cfg, "door.tengo"); err != nil {
		t.Fatalf("reconfigure before build: %v", err)
	}
	ct := mustGet(t, r.w, r.trigger, component.CameraTransitionComponent.Kind())
	if ct.Settings.PlayerChange.X != 96 || ct.Script != "door.tengo" {
		t.Fatalf("record not updated: %+v", ct.Settings)
	}

	r.movePlayer(940)
	sys.Update(r.w)
	if err := ReconfigureTransition(r.w, "door", doorConfig(), ""); !errors.Is(err, transition.ErrActive) {
		t.Fatalf("expected ErrActive, got %v", err)
	}
	if err := ReconfigureTransition(r.w, "missing", doorConfig(), ""); !errors.Is(err, ErrTransitionNotFound) {
		t.Fatalf("expected ErrTransitionNotFound, got %v", err)
	}

	bad := doorConfig()
	bad.Axis = transition.Axis(5)
	runUntilIdle(t, r, sys, eventLog{})
	if err := ReconfigureTransition(r.w, "door", bad, ""); !errors.Is(err, transition.ErrInvalidEnum) {
		t.Fatalf("expected ErrInvalidEnum, got %v", err)
	}
	if err := ReconfigureTransition(r.w, "door", doorConfig(), ""); err != nil {
		t.Fatalf("reconfigure when idle: %v", err)
	}
	if ct.Sequencer.Config() != doorConfig() {
		t.Fatalf("sequencer config not swapped")
	}
}

func TestFreezeHandleGuards(t *testing.T) {
	r := newRig(t, doorConfig())
	beam := ecs.CreateEntity(r.w)
	mustAdd(t, r.w, beam, component.FreezableComponent.Kind(), &component.Freezable{Frozen: true})

	gs := r.gameState(t)
	gs.Frozen = true
	freeze := freezeHandle{w: r.w}
	freeze.FreezeAll(false)

	fr := mustGet(t, r.w, beam, component.FreezableComponent.Kind())
	if !gs.Frozen || !fr.Frozen {
		t.Fatalf("unfreezing without a recorded freeze must be ignored")
	}

	freeze.FreezeAll(true)
	freeze.FreezeAll(false)
	if gs.Frozen || fr.Frozen {
		t.Fatalf("expected unfrozen state after freeze/unfreeze")
	}

	player := playerHandle{w: r.w, e: r.player}
	anim := mustGet(t, r.w, r.player, component.AnimationComponent.Kind())
	anim.Speed = 0
	player.FreezePlayer(false)
	if anim.Speed != 0 {
		t.Fatalf("unfreezing a player that was not frozen must not resume animation")
	}
}

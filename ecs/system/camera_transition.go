package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/script"
	"github.com/milk9111/camtransition/transition"
)

// World event types pushed by the camera transition system.
const (
	EventTransitionStarted   = "camera_transition.started"
	EventPreTransition       = "camera_transition.pre"
	EventPostTransition      = "camera_transition.post"
	EventOnlyMoveCamera      = "camera_transition.only_move"
	EventTransitionCompleted = "camera_transition.completed"
	EventTransitionScript    = "camera_transition.script"
)

// TransitionEvent is the payload of the camera_transition.* events.
type TransitionEvent struct {
	Name   string
	Entity ecs.Entity
}

// ScriptEvent is pushed when a handler script calls emit(name).
type ScriptEvent struct {
	Trigger string
	Name    string
}

var ErrTransitionNotFound = errors.New("camera transition system: transition not found")

// FixedStep is a clock that advances by the same duration every update.
type FixedStep float64

func (s FixedStep) Elapsed() float64 { return float64(s) }

// CameraTransitionSystem detects the player entering trigger volumes and
// drives one sequencer per CameraTransition entity.
type CameraTransitionSystem struct {
	clock      transition.Clock
	loadScript func(path string) ([]byte, error)
	scripts    map[string]*script.Dispatcher
}

// NewCameraTransitionSystem ticks sequencers with clock. loadScript resolves
// CameraTransition.Script paths and may be nil when no trigger uses one.
func NewCameraTransitionSystem(clock transition.Clock, loadScript func(path string) ([]byte, error)) *CameraTransitionSystem {
	return &CameraTransitionSystem{
		clock:      clock,
		loadScript: loadScript,
		scripts:    map[string]*script.Dispatcher{},
	}
}

func (s *CameraTransitionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	camEnt, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	playerEnt, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player := playerHandle{w: w, e: playerEnt}
	pbb, hasBB := playerBB(w, playerEnt)
	locked := transitionLocked(w)

	ecs.ForEach2(w, component.CameraTransitionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ct *component.CameraTransition, tr *component.Transform) {
		if ct.Sequencer == nil {
			if err := s.build(w, e, ct, tr, camEnt, player); err != nil {
				log.Printf("camera transition system: %v", err)
				return
			}
		}
		seq := ct.Sequencer

		inside := hasBB && pbb.Intersects(entityBB(tr, ct.Trigger))
		if inside && !ct.Overlapping && (!locked || ct.Settings.OnlyMoveCamera) {
			if seq.Trigger(player) {
				w.Events().Push(ecs.Event{Type: EventTransitionStarted, Data: TransitionEvent{Name: seq.Name(), Entity: e}})
				locked = true
			}
		}
		ct.Overlapping = inside

		wasActive := seq.Active()
		seq.Update(s.clock)
		if wasActive && !seq.Active() {
			w.Events().Push(ecs.Event{Type: EventTransitionCompleted, Data: TransitionEvent{Name: seq.Name(), Entity: e}})
		}
		ct.Settings = seq.Settings()
	})
}

func (s *CameraTransitionSystem) build(w *ecs.World, e ecs.Entity, ct *component.CameraTransition, tr *component.Transform, camEnt ecs.Entity, player playerHandle) error {
	events := &transitionEvents{sys: s, w: w, e: e, name: ct.Settings.Name}
	var resume transition.Player
	if ct.Settings.Active {
		resume = player
	}
	seq, err := transition.FromSettings(ct.Settings, cameraHandle{w: w, e: camEnt}, freezeHandle{w: w}, events, resume)
	if err != nil {
		return fmt.Errorf("build %s: %w", ct.Settings.Name, err)
	}
	seq.SetPosition(transition.Vec3{X: tr.X, Y: tr.Y, Z: ct.Settings.Position.Z})
	ct.Sequencer = seq
	return nil
}

// ReloadScripts drops compiled handler scripts so the next event recompiles
// them from disk.
func (s *CameraTransitionSystem) ReloadScripts() {
	clear(s.scripts)
}

func (s *CameraTransitionSystem) dispatcher(w *ecs.World, trigger, path string) *script.Dispatcher {
	key := trigger + "|" + path
	if d, ok := s.scripts[key]; ok {
		return d
	}
	if s.loadScript == nil {
		return nil
	}
	src, err := s.loadScript(path)
	if err != nil {
		log.Printf("camera transition system: %s: load script %s: %v", trigger, path, err)
		s.scripts[key] = nil
		return nil
	}
	d, err := script.New(trigger, src, func(name string) {
		w.Events().Push(ecs.Event{Type: EventTransitionScript, Data: ScriptEvent{Trigger: trigger, Name: name}})
	})
	if err != nil {
		log.Printf("camera transition system: %v", err)
	}
	s.scripts[key] = d
	return d
}

// transitionEvents forwards sequencer notifications to the world queue and
// to the trigger's handler script.
type transitionEvents struct {
	sys  *CameraTransitionSystem
	w    *ecs.World
	e    ecs.Entity
	name string
}

func (t *transitionEvents) PreTransition() {
	t.fire(EventPreTransition, (*script.Dispatcher).PreTransition)
}

func (t *transitionEvents) PostTransition() {
	t.fire(EventPostTransition, (*script.Dispatcher).PostTransition)
}

func (t *transitionEvents) OnlyMoveCamera() {
	t.fire(EventOnlyMoveCamera, (*script.Dispatcher).OnlyMoveCamera)
}

func (t *transitionEvents) fire(kind string, hook func(*script.Dispatcher)) {
	t.w.Events().Push(ecs.Event{Type: kind, Data: TransitionEvent{Name: t.name, Entity: t.e}})
	ct, ok := ecs.Get(t.w, t.e, component.CameraTransitionComponent.Kind())
	if !ok || ct.Script == "" {
		return
	}
	if d := t.sys.dispatcher(t.w, t.name, ct.Script); d != nil {
		hook(d)
	}
}

func transitionLocked(w *ecs.World) bool {
	_, gs, ok := ecs.Singleton(w, component.GameStateComponent.Kind())
	return ok && gs.InTransition
}

// FindTransition returns the trigger entity whose record is called name.
func FindTransition(w *ecs.World, name string) (ecs.Entity, *component.CameraTransition, bool) {
	for _, e := range ecs.Query(w, component.CameraTransitionComponent.Kind()) {
		ct, ok := ecs.Get(w, e, component.CameraTransitionComponent.Kind())
		if ok && ct.Settings.Name == name {
			return e, ct, true
		}
	}
	return 0, nil, false
}

// ReconfigureTransition swaps the authored config and handler script of the
// named trigger. It fails with transition.ErrActive while that trigger's
// sequence is running.
func ReconfigureTransition(w *ecs.World, name string, cfg transition.Config, scriptPath string) error {
	_, ct, ok := FindTransition(w, name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTransitionNotFound, name)
	}
	if ct.Sequencer != nil {
		if err := ct.Sequencer.Reconfigure(cfg); err != nil {
			return err
		}
		ct.Settings = ct.Sequencer.Settings()
	} else {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("camera transition system: %s: %w", name, err)
		}
		ct.Settings.SetConfig(cfg)
	}
	ct.Script = scriptPath
	return nil
}

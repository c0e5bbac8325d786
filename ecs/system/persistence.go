package system

import (
	"log"

	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/transition"
)

const (
	EventSettingsSaved  = "persistence.saved"
	EventSettingsLoaded = "persistence.loaded"
	EventSettingsFailed = "persistence.failed"
)

// PersistenceSystem serves SaveRequest and LoadRequest entities by writing
// or restoring every transition settings record.
type PersistenceSystem struct{}

func NewPersistenceSystem() *PersistenceSystem {
	return &PersistenceSystem{}
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.SaveRequestComponent.Kind(), func(e ecs.Entity, req *component.SaveRequest) {
		ecs.DestroyEntity(w, e)
		if err := transition.SaveSettingsFile(req.Path, SnapshotTransitions(w)); err != nil {
			log.Printf("persistence system: %v", err)
			w.Events().Push(ecs.Event{Type: EventSettingsFailed, Data: err})
			return
		}
		w.Events().Push(ecs.Event{Type: EventSettingsSaved, Data: req.Path})
	})

	ecs.ForEach(w, component.LoadRequestComponent.Kind(), func(e ecs.Entity, req *component.LoadRequest) {
		ecs.DestroyEntity(w, e)
		list, err := transition.LoadSettingsFile(req.Path)
		if err != nil {
			log.Printf("persistence system: %v", err)
			w.Events().Push(ecs.Event{Type: EventSettingsFailed, Data: err})
			return
		}
		if _, err := RestoreTransitions(w, list); err != nil {
			log.Printf("persistence system: %s: %v", req.Path, err)
			w.Events().Push(ecs.Event{Type: EventSettingsFailed, Data: err})
			return
		}
		w.Events().Push(ecs.Event{Type: EventSettingsLoaded, Data: req.Path})
	})
}

// SnapshotTransitions returns the settings record of every trigger.
func SnapshotTransitions(w *ecs.World) []transition.Settings {
	var list []transition.Settings
	ecs.ForEach(w, component.CameraTransitionComponent.Kind(), func(_ ecs.Entity, ct *component.CameraTransition) {
		if ct.Sequencer != nil {
			list = append(list, ct.Sequencer.Settings())
			return
		}
		list = append(list, ct.Settings)
	})
	return list
}

// RestoreTransitions applies records to the triggers with matching names.
// Unknown names are skipped. A record saved mid-flight puts the world back
// into the locked transition state, so nothing is restored while any
// sequence is running.
func RestoreTransitions(w *ecs.World, list []transition.Settings) (int, error) {
	if transitionRunning(w) {
		return 0, transition.ErrActive
	}
	restored := 0
	playerEnt, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())
	for _, st := range list {
		_, ct, ok := FindTransition(w, st.Name)
		if !ok {
			log.Printf("persistence system: no transition named %q", st.Name)
			continue
		}
		if st.Active && !hasPlayer {
			log.Printf("persistence system: %s: %v", st.Name, transition.ErrMissingPlayer)
			continue
		}
		if ct.Sequencer != nil {
			var player transition.Player
			if st.Active {
				player = playerHandle{w: w, e: playerEnt}
			}
			if err := ct.Sequencer.PutSettings(st, player); err != nil {
				log.Printf("persistence system: %v", err)
				continue
			}
		}
		ct.Settings = st
		if st.Active {
			relock(w, playerEnt, st)
		}
		restored++
	}
	return restored, nil
}

func transitionRunning(w *ecs.World) bool {
	if transitionLocked(w) {
		return true
	}
	running := false
	ecs.ForEach(w, component.CameraTransitionComponent.Kind(), func(_ ecs.Entity, ct *component.CameraTransition) {
		if ct.Sequencer != nil && ct.Sequencer.Active() {
			running = true
		}
	})
	return running
}

// relock reapplies the freeze a running sequence holds on the world.
func relock(w *ecs.World, playerEnt ecs.Entity, st transition.Settings) {
	freeze := freezeHandle{w: w}
	freeze.FreezeAll(true)
	freeze.SetInTransition(true)
	freeze.AllowPause(false)

	player := playerHandle{w: w, e: playerEnt}
	player.FreezeInput(true)
	player.FreezePlayer(true)
	player.SetInvincible(true)
	if st.State == transition.PhaseTransition {
		player.SetAnimationSpeed(1)
	} else {
		player.SetAnimationSpeed(0)
	}

	if camEnt, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		cameraHandle{w: w, e: camEnt}.setAttached(st.State == transition.PhasePostDelay)
	}
}

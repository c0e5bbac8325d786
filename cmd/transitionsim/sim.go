package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/camtransition/prefabs"
	"github.com/milk9111/camtransition/sim"
	"github.com/milk9111/camtransition/transition"
)

var errNoTransition = errors.New("transition not found")

// scene is one sequencer with in-memory collaborators.
type scene struct {
	seq      *transition.Sequencer
	camera   *sim.Camera
	player   *sim.Player
	freeze   *sim.Freeze
	recorder *sim.Recorder
	trigger  transition.Vec3
}

// loadSettings picks the named record from a save file, or from the
// level's transition specs when no save file is given. It also returns the
// camera bounds in force before the trigger fires.
func loadSettings(cfg Config) (transition.Settings, transition.Bounds, error) {
	if cfg.Settings != "" {
		list, err := transition.LoadSettingsFile(cfg.Settings)
		if err != nil {
			return transition.Settings{}, transition.Bounds{}, err
		}
		for _, st := range list {
			if st.Name != cfg.Transition {
				continue
			}
			bounds := transition.Bounds{Min: st.CameraMinPrevious, Max: st.CameraMaxPrevious}
			if st.Entry == transition.EntryExit {
				bounds = st.Config().Target()
			}
			return st, bounds, nil
		}
		return transition.Settings{}, transition.Bounds{}, fmt.Errorf("%s: %w: %s", cfg.Settings, errNoTransition, cfg.Transition)
	}

	spec, err := prefabs.LoadLevelSpec(cfg.Level)
	if err != nil {
		return transition.Settings{}, transition.Bounds{}, err
	}
	t, ok := spec.Transition(cfg.Transition)
	if !ok {
		return transition.Settings{}, transition.Bounds{}, fmt.Errorf("%s: %w: %s", cfg.Level, errNoTransition, cfg.Transition)
	}
	return t.Settings, spec.Camera.Bounds, nil
}

// newScene places the player on the trigger and the camera at the start of
// bounds.
func newScene(st transition.Settings, bounds transition.Bounds) (*scene, error) {
	sc := &scene{
		freeze:   sim.NewFreeze(),
		recorder: &sim.Recorder{},
		trigger:  st.Position,
	}

	sc.camera = sim.NewCamera(transition.Vec3{X: bounds.Min.X, Y: bounds.Min.Y, Z: -10}, bounds)
	sc.player = sim.NewPlayer(st.Position.XY())

	var resume transition.Player
	if st.Active {
		resume = sc.player
	}
	seq, err := transition.FromSettings(st, sc.camera, sc.freeze, sc.recorder, resume)
	if err != nil {
		return nil, err
	}
	sc.seq = seq
	return sc, nil
}

// run plays cfg.Cycles trigger cycles and reports every frame to observe.
// stop is checked between cycles and may be nil.
func (sc *scene) run(cfg Config, observe func(*scene, sim.Frame), stop func() bool) {
	clock := sim.FixedClock{Step: cfg.Step}
	for cycle := 0; cycle < cfg.Cycles; cycle++ {
		if stop != nil && stop() {
			return
		}
		if !sc.seq.Active() && !sc.seq.Trigger(sc.player) {
			log.Printf("%s: trigger ignored", sc.seq.Name())
			continue
		}
		ticks := sim.Run(sc.seq, clock, cfg.MaxTicks, func(f sim.Frame) { observe(sc, f) })
		if sc.seq.Active() {
			log.Printf("%s: still running after %d ticks", sc.seq.Name(), ticks)
			return
		}
	}
}

// phaseLogger logs phase changes and the end of every cycle.
func phaseLogger() func(*scene, sim.Frame) {
	last := transition.Phase(-1)
	return func(sc *scene, f sim.Frame) {
		if f.Phase != last && f.Active {
			log.Printf("%s: t=%.3fs %s %s", sc.seq.Name(), f.Time, sc.seq.Entry(), f.Phase)
			last = f.Phase
		}
		if !f.Active {
			cam := sc.camera.Position()
			log.Printf("%s: done after %d ticks, camera (%.1f, %.1f), player (%.1f, %.1f), events %v",
				sc.seq.Name(), f.Tick, cam.X, cam.Y, sc.player.Pos.X, sc.player.Pos.Y, sc.recorder.Log)
			last = transition.Phase(-1)
		}
	}
}

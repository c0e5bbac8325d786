package system

import (
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
)

type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	return &AnimationSystem{dt: dt}
}

// Update advances every playing animation by dt scaled by its Speed, so a
// speed of 0 holds the current frame.
func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		if !anim.Playing || anim.Speed <= 0 {
			return
		}
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 || def.FPS <= 0 {
			return
		}

		frameTime := 1 / def.FPS
		anim.Timer += a.dt * anim.Speed
		for anim.Timer >= frameTime && anim.Playing {
			anim.Timer -= frameTime
			anim.Frame++
			if anim.Frame >= def.FrameCount {
				if def.Loop {
					anim.Frame = 0
				} else {
					anim.Frame = def.FrameCount - 1
					anim.Playing = false
				}
			}
		}
	})
}

// Play switches anim to name from its first frame unless it already plays it.
func Play(anim *component.Animation, name string) {
	if anim == nil || (anim.Current == name && anim.Playing) {
		return
	}
	anim.Current = name
	anim.Frame = 0
	anim.Timer = 0
	anim.Playing = true
}

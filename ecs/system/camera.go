package system

import (
	"github.com/milk9111/camtransition/common"
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update centres an attached camera on its target and clamps the view's
// top-left corner to the camera bounds. Detached cameras are left to
// whoever detached them.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok || !cam.Attached {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	centerX, centerY := target.X, target.Y
	if pl, ok := ecs.Get(w, cs.targetEntity, component.PlayerComponent.Kind()); ok {
		centerX += pl.Width / 2
		centerY += pl.Height / 2
	}

	camTransform.X = common.Clamp(centerX-cam.ViewW/2, cam.Bounds.Min.X, cam.Bounds.Max.X)
	camTransform.Y = common.Clamp(centerY-cam.ViewH/2, cam.Bounds.Min.Y, cam.Bounds.Max.Y)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}

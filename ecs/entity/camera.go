package entity

import (
	"fmt"

	"github.com/milk9111/camtransition/common"
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
	"github.com/milk9111/camtransition/prefabs"
)

func NewCamera(w *ecs.World, spec prefabs.CameraSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), newTransform(spec.Transform)); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	viewW, viewH := spec.ViewW, spec.ViewH
	if viewW <= 0 {
		viewW = common.BaseWidth
	}
	if viewH <= 0 {
		viewH = common.BaseHeight
	}
	target := spec.Target
	if target == "" {
		target = "player"
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName: target,
		Z:          spec.Z,
		ViewW:      viewW,
		ViewH:      viewH,
		Bounds:     spec.Bounds,
		Attached:   true,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}

func newTransform(spec prefabs.TransformSpec) *component.Transform {
	sx, sy := spec.ScaleX, spec.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return &component.Transform{X: spec.X, Y: spec.Y, ScaleX: sx, ScaleY: sy, Rotation: spec.Rotation}
}

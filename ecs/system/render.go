package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/camtransition/ecs"
	"github.com/milk9111/camtransition/ecs/component"
)

type RenderSystem struct {
	camEntity ecs.Entity
	// ShowTriggers outlines camera transition trigger regions.
	ShowTriggers bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY := 0.0, 0.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}

	entities := ecs.Query(w, component.TransformComponent.Kind(), component.AppearanceComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, _ := ecs.Get(w, entities[i], component.AppearanceComponent.Kind())
		lj, _ := ecs.Get(w, entities[j], component.AppearanceComponent.Kind())
		if li.Layer != lj.Layer {
			return li.Layer < lj.Layer
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		bb, ok := drawBox(w, e)
		if !ok {
			continue
		}
		look, _ := ecs.Get(w, e, component.AppearanceComponent.Kind())
		if look.Color == nil || look.Hidden {
			continue
		}
		vector.FillRect(screen,
			float32(bb.L-camX), float32(bb.B-camY),
			float32(bb.R-bb.L), float32(bb.T-bb.B),
			look.Color, false)
	}

	if !r.ShowTriggers {
		return
	}
	ecs.ForEach2(w, component.CameraTransitionComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, ct *component.CameraTransition, tr *component.Transform) {
		bb := entityBB(tr, ct.Trigger)
		clr := color.NRGBA{R: 80, G: 160, B: 255, A: 200}
		if ct.Settings.OnlyMoveCamera {
			clr = color.NRGBA{R: 255, G: 200, B: 60, A: 200}
		}
		vector.StrokeRect(screen,
			float32(bb.L-camX), float32(bb.B-camY),
			float32(bb.R-bb.L), float32(bb.T-bb.B),
			1, clr, false)
	})
}

// drawBox is the world rectangle an entity occupies.
func drawBox(w *ecs.World, e ecs.Entity) (cp.BB, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	if beam, ok := ecs.Get(w, e, component.MagnetBeamComponent.Kind()); ok {
		return beamBB(beam, tr), beam.Segments > 0
	}
	if bb, ok := playerBB(w, e); ok {
		return bb, true
	}
	if solid, ok := ecs.Get(w, e, component.SolidComponent.Kind()); ok {
		return entityBB(tr, component.AABB{W: solid.Width, H: solid.Height}), true
	}
	return cp.BB{}, false
}

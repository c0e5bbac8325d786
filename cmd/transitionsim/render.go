package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/camtransition/common"
	"github.com/milk9111/camtransition/sim"
	"github.com/milk9111/camtransition/transition"
)

const trackRow = 4

var (
	styleHeader  = tcell.StyleDefault.Bold(true)
	styleTrack   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTrigger = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCamera  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// renderer draws the transition axis as one terminal row: the camera view
// as brackets, the trigger as a bar and the player as '@'.
type renderer struct {
	screen tcell.Screen
	lo, hi float64
}

func newRenderer(screen tcell.Screen, lo, hi float64) *renderer {
	if hi <= lo {
		hi = lo + 1
	}
	return &renderer{screen: screen, lo: lo, hi: hi}
}

// extent is the world range along the transition axis a scene can touch.
func extent(sc *scene) (float64, float64) {
	cfg := sc.seq.Config()
	span := viewSpan(cfg.Axis)
	pick := func(v transition.Vec2) float64 { return axisValue(cfg.Axis, v) }

	values := []float64{
		pick(sc.trigger.XY()),
		pick(sc.player.Pos),
		pick(sc.player.Pos.Add(cfg.PlayerChange)),
		pick(sc.player.Pos.Sub(cfg.PlayerChange)),
		pick(sc.camera.Position().XY()),
		pick(cfg.CameraMin),
		pick(cfg.CameraMax),
		pick(sc.camera.Bounds().Min),
		pick(sc.camera.Bounds().Max),
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v+span)
	}
	return lo - 16, hi + 16
}

func viewSpan(axis transition.Axis) float64 {
	if axis == transition.AxisVertical {
		return common.BaseHeight
	}
	return common.BaseWidth
}

func axisValue(axis transition.Axis, v transition.Vec2) float64 {
	if axis == transition.AxisVertical {
		return v.Y
	}
	return v.X
}

func (r *renderer) column(v float64) int {
	w, _ := r.screen.Size()
	if w <= 1 {
		return 0
	}
	col := int((v - r.lo) / (r.hi - r.lo) * float64(w-1))
	return max(0, min(w-1, col))
}

func (r *renderer) draw(sc *scene, f sim.Frame) {
	r.screen.Clear()
	w, _ := r.screen.Size()
	axis := sc.seq.Config().Axis

	r.text(0, 0, styleHeader, fmt.Sprintf("%s  %s  %s  progress %.2f  t=%.3fs",
		sc.seq.Name(), sc.seq.Entry(), f.Phase, f.Progress, f.Time))
	r.text(0, 1, tcell.StyleDefault, fmt.Sprintf("frozen %v  in transition %v  pause allowed %v",
		sc.freeze.Frozen, sc.freeze.InTransition, sc.freeze.PauseAllowed))
	r.text(0, 2, tcell.StyleDefault, fmt.Sprintf("input frozen %v  player frozen %v  anim %.0f  events %v",
		sc.player.InputFrozen, sc.player.Frozen, sc.player.AnimSpeed, sc.recorder.Log))

	for x := 0; x < w; x++ {
		r.screen.SetContent(x, trackRow, '-', nil, styleTrack)
	}
	r.screen.SetContent(r.column(axisValue(axis, sc.trigger.XY())), trackRow, '|', nil, styleTrigger)
	cam := axisValue(axis, sc.camera.Position().XY())
	r.screen.SetContent(r.column(cam), trackRow, '[', nil, styleCamera)
	r.screen.SetContent(r.column(cam+viewSpan(axis)), trackRow, ']', nil, styleCamera)
	r.screen.SetContent(r.column(axisValue(axis, sc.player.Pos)), trackRow, '@', nil, stylePlayer)

	r.screen.Show()
}

func (r *renderer) text(x, y int, style tcell.Style, s string) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

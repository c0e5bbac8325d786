package transition

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

var easings = map[string]ease.TweenFunc{
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
}

// easingFunc returns nil for linear movement.
func easingFunc(name string) (ease.TweenFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "linear" {
		return nil, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// applyEasing maps raw progress in [0,1] to the interpolation factor.
// gween curves are float32, so an eased factor carries about seven
// significant digits; the endpoints are exact and the lerp itself stays
// float64.
func applyEasing(fn ease.TweenFunc, progress float64) float64 {
	if fn == nil || progress <= 0 || progress >= 1 {
		return progress
	}
	return clamp(float64(fn(float32(progress), 0, 1, 1)), 0, 1)
}

package common

const (
	BaseWidth  = 640
	BaseHeight = 360

	// TPS is the fixed update rate; systems step by 1/TPS seconds.
	TPS = 60

	// Gravity in pixels per second squared, y down.
	Gravity = 1800.0
)

// Step is the duration of one update in seconds.
const Step = 1.0 / TPS

func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

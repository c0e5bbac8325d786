package transition

import "fmt"

// Config is the authored, per-trigger configuration of a sequence.
type Config struct {
	OnlyMoveCamera bool
	Axis           Axis

	// Durations in seconds.
	PreTransitionDelay  float64
	TransitionDelay     float64
	PostTransitionDelay float64

	// CameraMin and CameraMax are the bounds applied after entering.
	CameraMin    Vec2
	CameraMax    Vec2
	PlayerChange Vec2

	EventCallPreDelay  EventCall
	EventCallPostDelay EventCall

	// Easing names a curve applied to the movement progress. Empty is linear.
	Easing string
}

// DefaultConfig mirrors the authoring defaults: one second per phase and
// both events fired before their delay.
func DefaultConfig() Config {
	return Config{
		Axis:                AxisHorizontal,
		PreTransitionDelay:  1,
		TransitionDelay:     1,
		PostTransitionDelay: 1,
		EventCallPreDelay:   EventBothBeforeDelay,
		EventCallPostDelay:  EventBothBeforeDelay,
	}
}

// Target is the configured bounds pair.
func (c Config) Target() Bounds {
	return Bounds{Min: c.CameraMin, Max: c.CameraMax}
}

// Validate checks the enum fields and the easing name. Durations are not
// checked: a negative delay simply advances on the first tick.
func (c Config) Validate() error {
	if !c.Axis.Valid() {
		return fmt.Errorf("%w: axis %d", ErrInvalidEnum, c.Axis)
	}
	if !c.EventCallPreDelay.Valid() {
		return fmt.Errorf("%w: pre delay event call %d", ErrInvalidEnum, c.EventCallPreDelay)
	}
	if !c.EventCallPostDelay.Valid() {
		return fmt.Errorf("%w: post delay event call %d", ErrInvalidEnum, c.EventCallPostDelay)
	}
	if _, err := easingFunc(c.Easing); err != nil {
		return err
	}
	return nil
}

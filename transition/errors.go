package transition

import "errors"

var (
	ErrInvalidEnum   = errors.New("transition: invalid enum value")
	ErrNilCamera     = errors.New("transition: camera is nil")
	ErrMissingPlayer = errors.New("transition: active sequence needs a player")
	ErrActive        = errors.New("transition: sequence is active")
	ErrUnknownEasing = errors.New("transition: unknown easing")
)

package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	Width     float64
	Height    float64
	// Facing is -1 or 1.
	Facing float64
}

var PlayerComponent = NewComponent[Player]()

// PlayerControl gates the controller. Unfreezing the player only applies
// after a freeze was recorded.
type PlayerControl struct {
	InputFrozen bool
	Frozen      bool
	WasFrozen   bool
}

var PlayerControlComponent = NewComponent[PlayerControl]()

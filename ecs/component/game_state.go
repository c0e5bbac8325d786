package component

// GameState is the world singleton the freeze coordinator writes.
type GameState struct {
	Frozen       bool
	WasFrozen    bool
	InTransition bool
	PauseAllowed bool
	Paused       bool
}

var GameStateComponent = NewComponent[GameState]()

// Freezable entities stop updating while frozen. Unfreeze is ignored unless
// the entity was frozen first.
type Freezable struct {
	Frozen    bool
	WasFrozen bool
}

var FreezableComponent = NewComponent[Freezable]()

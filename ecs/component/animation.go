package component

type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
}

// Animation plays Defs[Current]. Speed scales playback: 0 pauses, 1 plays.
type Animation struct {
	Defs    map[string]AnimationDef
	Current string
	Frame   int
	Timer   float64
	Speed   float64
	Playing bool
}

var AnimationComponent = NewComponent[Animation]()

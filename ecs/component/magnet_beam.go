package component

// MagnetBeam is a platform beam that grows from the player until it touches
// a Solid, then locks in place and expires after DestroyDelay seconds.
type MagnetBeam struct {
	Direction    float64
	MaxSegments  int
	MaxBeamTime  float64
	DestroyDelay float64
	SegmentWidth float64
	Height       float64

	// OffsetX/OffsetY place the beam origin relative to the player while it
	// grows.
	OffsetX float64
	OffsetY float64

	Elapsed      float64
	BeamTime     float64
	Segments     int
	Locked       bool
	Solid        bool
	DestroyTimer float64
}

var MagnetBeamComponent = NewComponent[MagnetBeam]()

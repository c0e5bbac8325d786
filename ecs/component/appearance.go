package component

import "image/color"

// Appearance draws an entity as a filled rectangle. Lower layers draw first.
// Hidden entities keep their colour but are skipped.
type Appearance struct {
	Color  color.Color
	Layer  int
	Hidden bool
}

var AppearanceComponent = NewComponent[Appearance]()

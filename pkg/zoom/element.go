package zoom

import "fmt"

// BottomOffset is the distance, in pixels, between a visible body and the
// bottom of the bodies panel.
const BottomOffset = 20

// Footprint is the on-screen geometry of a visible body. Bodies are centred
// horizontally and rest on the bottom of the panel.
type Footprint struct {
	Radius   float64
	Diameter float64
	Bottom   float64
}

// Left returns the CSS left offset that centres the body.
func (f Footprint) Left() string {
	return fmt.Sprintf("calc(50%% - %gpx)", f.Radius)
}

// Element is the host-side representation of one body.
type Element interface {
	// Hide removes the body from view.
	Hide()
	// Place shows the body with the given geometry.
	Place(Footprint)
}

// ElementFunc adapts a pair of functions to [Element].
type ElementFunc struct {
	OnHide  func()
	OnPlace func(Footprint)
}

func (e ElementFunc) Hide() {
	if e.OnHide != nil {
		e.OnHide()
	}
}

func (e ElementFunc) Place(f Footprint) {
	if e.OnPlace != nil {
		e.OnPlace(f)
	}
}

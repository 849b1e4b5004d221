package layout

import "github.com/matzehuels/voyager/pkg/body"

// Kind identifies the variant of an [Item].
type Kind string

const (
	KindSection Kind = "section"
	KindBoost   Kind = "boost"
)

// Item is one entry of a layout: a [Section] or a [Boost].
// The interface is sealed; no other package can add variants.
type Item interface {
	// Kind returns the variant tag, used as CSS class and JSON type.
	Kind() Kind
	// Position returns the item's Top in pixels along the scroll axis.
	Position() float64

	isItem()
}

// Section is a cluster of bodies rendered together.
//
// Top is the axis position of the first body placed in the section; bodies
// added later do not move it. Anchor is that first body's id.
type Section struct {
	Top    float64
	Anchor string
	Bodies []body.Body
}

// Boost is a contentless "keep scrolling" marker in an otherwise empty span.
type Boost struct {
	Top float64
}

func (Section) Kind() Kind          { return KindSection }
func (s Section) Position() float64 { return s.Top }
func (Section) isItem()             {}

func (Boost) Kind() Kind          { return KindBoost }
func (b Boost) Position() float64 { return b.Top }
func (Boost) isItem()             {}

// Visit calls onSection or onBoost depending on the variant of it.
func Visit(it Item, onSection func(Section), onBoost func(Boost)) {
	switch v := it.(type) {
	case Section:
		onSection(v)
	case Boost:
		onBoost(v)
	}
}

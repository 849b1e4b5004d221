package layout

import (
	"math"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/scale"
)

// Group clusters bodies into sections along axis.
//
// Bodies must be sorted ascending by radius. Group does not check this: with
// unsorted input the section tops are not monotonic and [InsertBoosts]
// produces meaningless gaps.
//
// A body starts a new section when it is the first body or when its position
// is at least mergeThreshold pixels away from the previous body's position.
// The comparison is against the previous body, not the section's Top, so a
// slow chain of close bodies stays in one section.
func Group(bodies []body.Body, axis scale.Axis, mergeThreshold float64) []Section {
	var sections []Section
	var previousY float64
	first := true

	for _, b := range bodies {
		y := axis.Y(b.Radius)

		if first || math.Abs(y-previousY) >= mergeThreshold {
			sections = append(sections, Section{Top: y, Anchor: b.ID})
			first = false
		}
		cur := &sections[len(sections)-1]
		cur.Bodies = append(cur.Bodies, b)

		previousY = y
	}
	return sections
}

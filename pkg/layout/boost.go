package layout

import "math"

// InsertBoosts interleaves [Boost] markers between sections.
//
// For each adjacent pair the distance is split into whole steps; one boost
// goes at every full step strictly between the two sections, excluding the
// one that would land on or past the next section. Pairs less than two steps
// apart get no boost. Nothing is inserted before the first or after the last
// section.
func InsertBoosts(sections []Section, step float64) []Item {
	items := make([]Item, 0, len(sections))

	for i, section := range sections {
		if i > 0 && step > 0 {
			prev := sections[i-1]
			count := int(math.Floor((section.Top - prev.Top) / step))
			for j := 1; j < count; j++ {
				items = append(items, Boost{Top: prev.Top + float64(j)*step})
			}
		}
		items = append(items, section)
	}
	return items
}

// BoostCount returns how many boosts [InsertBoosts] places between two
// sections distance pixels apart.
func BoostCount(distance, step float64) int {
	if step <= 0 {
		return 0
	}
	return max(0, int(math.Floor(distance/step))-1)
}

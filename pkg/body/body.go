package body

import (
	"cmp"
	"context"
	"slices"
)

// DefaultColor is used for bodies whose metadata does not name a color.
const DefaultColor = "#eeeeee"

// Body is a celestial or human-scale entity.
//
// Radius is in kilometres. For astronauts it holds the height, normalised to
// the same unit, so astronauts share the scale axis with everything else.
type Body struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Radius      float64 `json:"radius"`
	IsAstronaut bool    `json:"isAstronaut"`
	Color       string  `json:"color"`
	Text        string  `json:"text"`
}

// Source loads bodies from a data store.
//
// Implementations return bodies sorted ascending by radius, with every radius
// strictly positive. Malformed records are skipped, not returned.
type Source interface {
	Load(ctx context.Context) ([]Body, error)
}

// Sort orders bodies ascending by radius. Bodies with equal radii keep their
// relative order, so output is deterministic for a deterministic input.
func Sort(bodies []Body) {
	slices.SortStableFunc(bodies, func(a, b Body) int {
		return cmp.Compare(a.Radius, b.Radius)
	})
}

// IsSorted reports whether bodies are ascending by radius.
func IsSorted(bodies []Body) bool {
	return slices.IsSortedFunc(bodies, func(a, b Body) int {
		return cmp.Compare(a.Radius, b.Radius)
	})
}

// Radii returns the radius of every body, in order.
func Radii(bodies []Body) []float64 {
	radii := make([]float64, len(bodies))
	for i, b := range bodies {
		radii[i] = b.Radius
	}
	return radii
}

// IDs returns the id of every body, in order.
func IDs(bodies []Body) []string {
	ids := make([]string, len(bodies))
	for i, b := range bodies {
		ids[i] = b.ID
	}
	return ids
}

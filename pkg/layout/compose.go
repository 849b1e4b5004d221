package layout

import (
	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/scale"
)

// DefaultMergeThreshold is the default minimum distance, in pixels, between
// bodies in separate sections.
const DefaultMergeThreshold = 200

// DefaultOptions returns the default layout options.
func DefaultOptions() Options {
	return Options{
		PixelsPerDecade: scale.DefaultPixelsPerDecade,
		MergeThreshold:  DefaultMergeThreshold,
	}
}

// Options configures [Compose].
type Options struct {
	// PixelsPerDecade is the scroll distance per factor-of-ten change in
	// radius. It is also the boost step.
	PixelsPerDecade float64 `json:"pixels_per_decade" toml:"pixels_per_decade"`

	// MergeThreshold is the minimum distance, in pixels, between consecutive
	// bodies for the later one to start a new section.
	MergeThreshold float64 `json:"merge_threshold" toml:"merge_threshold"`
}

// Validate checks that both distances are strictly positive.
func (o Options) Validate() error {
	if !(o.PixelsPerDecade > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "pixels per decade must be positive, got %g", o.PixelsPerDecade)
	}
	if !(o.MergeThreshold > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "merge threshold must be positive, got %g", o.MergeThreshold)
	}
	return nil
}

// Layout is the ordered, positioned sequence of sections and boosts.
type Layout struct {
	Axis   scale.Axis
	Items  []Item
	Height float64
}

// Sections returns only the sections of the layout, in order.
func (l Layout) Sections() []Section {
	var out []Section
	for _, it := range l.Items {
		if s, ok := it.(Section); ok {
			out = append(out, s)
		}
	}
	return out
}

// BoostCount returns the number of boosts in the layout.
func (l Layout) BoostCount() int {
	n := 0
	for _, it := range l.Items {
		if it.Kind() == KindBoost {
			n++
		}
	}
	return n
}

// Compose lays out bodies, which must be sorted ascending by radius.
//
// An empty body list yields an empty layout. When every radius is equal the
// axis has zero range and all bodies share one section at Top 0.
func Compose(bodies []body.Body, opts Options) (Layout, error) {
	if err := opts.Validate(); err != nil {
		return Layout{}, err
	}

	axis := scale.NewAxis(body.Radii(bodies), opts.PixelsPerDecade)
	if axis.Empty() {
		return Layout{Axis: axis}, nil
	}

	sections := Group(bodies, axis, opts.MergeThreshold)
	return Layout{
		Axis:   axis,
		Items:  InsertBoosts(sections, opts.PixelsPerDecade),
		Height: axis.TotalHeight(),
	}, nil
}

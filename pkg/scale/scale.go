// Package scale maps physical radii onto a logarithmic scroll axis.
//
// Each factor-of-ten change in radius takes the same scroll distance,
// PixelsPerDecade pixels, so bodies from astronauts to stars fit on one page.
// The package is pure: an [Axis] is a value computed once from a set of radii.
package scale

import "math"

// DefaultUnitScale converts kilometres into the zoom engine's internal unit.
// Zoom exponents are computed against km * 1e-6 so that typical exponents
// stay in a comfortable range.
const DefaultUnitScale = 1e-6

// DefaultPixelsPerDecade is the scroll distance per factor-of-ten change in
// radius used by the layout and the zoom engine unless configured otherwise.
const DefaultPixelsPerDecade = 800

// Log returns log10(r). It is defined only for r > 0; callers are expected to
// have rejected non-positive radii, and NaN or -Inf propagates otherwise.
func Log(r float64) float64 {
	return math.Log10(r)
}

// Axis is a logarithmic axis over a set of radii.
type Axis struct {
	LogMin          float64 `json:"log_min"`
	LogMax          float64 `json:"log_max"`
	LogRange        float64 `json:"log_range"`
	PixelsPerDecade float64 `json:"pixels_per_decade"`

	empty bool
}

// NewAxis computes the axis spanned by radii.
//
// An empty radii slice yields an axis for which [Axis.Empty] reports true;
// mapping against it is meaningless and every position is 0.
func NewAxis(radii []float64, pixelsPerDecade float64) Axis {
	if len(radii) == 0 {
		return Axis{PixelsPerDecade: pixelsPerDecade, empty: true}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range radii {
		l := Log(r)
		lo = math.Min(lo, l)
		hi = math.Max(hi, l)
	}
	return Axis{
		LogMin:          lo,
		LogMax:          hi,
		LogRange:        hi - lo,
		PixelsPerDecade: pixelsPerDecade,
	}
}

// Empty reports whether the axis was built from no radii.
func (a Axis) Empty() bool { return a.empty }

// T returns the normalised position of r on the axis, in [0, 1] for radii
// inside the axis. When all radii are equal the range is zero and T is 0.
func (a Axis) T(r float64) float64 {
	if a.LogRange == 0 {
		return 0
	}
	return (Log(r) - a.LogMin) / a.LogRange
}

// Y returns the pixel position of r along the scroll axis.
func (a Axis) Y(r float64) float64 {
	return a.T(r) * a.TotalHeight()
}

// TotalHeight is the scroll distance the axis spans, LogRange decades times
// PixelsPerDecade.
func (a Axis) TotalHeight() float64 {
	return a.LogRange * a.PixelsPerDecade
}

// Lerp linearly interpolates between a and b. t is not clamped: values
// outside [0, 1] extrapolate.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ZoomForRadius returns the zoom exponent at which a body of radius km is
// drawn with a radius of targetPx pixels.
func ZoomForRadius(km, targetPx, unit float64) float64 {
	return math.Log10(targetPx / (km * unit))
}

// KmToPixels returns the on-screen radius of a body of radius km at zoom
// exponent zoomExp. It is the inverse of [ZoomForRadius].
func KmToPixels(km, zoomExp, unit float64) float64 {
	return km * math.Pow(10, zoomExp) * unit
}

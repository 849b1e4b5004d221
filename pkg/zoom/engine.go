package zoom

import (
	"math"
	"slices"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/scale"
)

// Engine holds the zoom bounds and scroll axis computed from a body list. It
// is host independent; [Engine.Bind] turns it into a [Scene].
type Engine struct {
	cfg    Config
	bodies []body.Body
	axis   scale.Axis

	// ZoomMin is the zoom exponent at which the smallest body is drawn with
	// DefaultRadius. It is the exponent at the top of the page.
	ZoomMin float64
	// ZoomMax is the zoom exponent at which the largest body is drawn with
	// DefaultRadius. It is reached at the end of the animated region.
	ZoomMax float64
}

// New computes the engine bounds. Zero fields of cfg take their defaults.
// The body list is copied; its order is kept.
func New(bodies []body.Body, cfg Config) (*Engine, error) {
	if len(bodies) == 0 {
		return nil, errors.New(errors.ErrCodeNoBodies, "zoom engine needs at least one body")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	smallest, largest := math.Inf(1), math.Inf(-1)
	for _, b := range bodies {
		smallest = math.Min(smallest, b.Radius)
		largest = math.Max(largest, b.Radius)
	}

	return &Engine{
		cfg:     cfg,
		bodies:  slices.Clone(bodies),
		axis:    scale.NewAxis(body.Radii(bodies), cfg.PixelsPerDecade),
		ZoomMin: scale.ZoomForRadius(smallest, cfg.DefaultRadius, cfg.UnitScale),
		ZoomMax: scale.ZoomForRadius(largest, cfg.DefaultRadius, cfg.UnitScale),
	}, nil
}

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() Config { return e.cfg }

// Bodies returns a copy of the engine's body list.
func (e *Engine) Bodies() []body.Body { return slices.Clone(e.bodies) }

// Axis returns the scroll axis, identical to the one the layout uses.
func (e *Engine) Axis() scale.Axis { return e.axis }

// AnimatedHeight is the scroll distance over which the zoom sweeps from
// ZoomMin to ZoomMax.
func (e *Engine) AnimatedHeight() float64 { return e.axis.TotalHeight() }

// TailHeight is the extra scroll distance after the animation for a viewport
// of the given height.
func (e *Engine) TailHeight(viewportHeight float64) float64 {
	return viewportHeight * e.cfg.ScrollTailFactor
}

// ZoomAt returns the zoom exponent and zoom factor for a scroll percentage.
// The interpolation is not clamped: percentages above 100 keep zooming out.
func (e *Engine) ZoomAt(percent float64) (exp, factor float64) {
	exp = scale.Lerp(e.ZoomMin, e.ZoomMax, percent/100)
	return exp, math.Pow(10, exp) * e.cfg.UnitScale
}

// Project returns the footprint of a body of radius km at zoom factor, and
// whether it is inside the visible size band.
func (e *Engine) Project(km, factor float64) (Footprint, bool) {
	r := km * factor
	if r < e.cfg.MinVisibleSize || r > e.cfg.MaxVisibleSize {
		return Footprint{}, false
	}
	return Footprint{Radius: r, Diameter: 2 * r, Bottom: BottomOffset}, true
}

// Bind attaches an element to every body and returns the ready scene.
// elements is keyed by body id. Every body must have an element; the first
// missing one is reported as [errors.ErrCodeMissingElement].
func (e *Engine) Bind(elements map[string]Element, tailHeight float64) (*Scene, error) {
	bindings := make([]binding, len(e.bodies))
	for i, b := range e.bodies {
		el, ok := elements[b.ID]
		if !ok || el == nil {
			return nil, errors.New(errors.ErrCodeMissingElement, "no element for body %q", b.ID)
		}
		bindings[i] = binding{body: b, el: el}
	}
	return &Scene{
		engine:     e,
		bindings:   bindings,
		tailHeight: math.Max(0, tailHeight),
	}, nil
}

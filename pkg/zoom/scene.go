package zoom

import (
	"math"

	"github.com/matzehuels/voyager/pkg/body"
)

type binding struct {
	body body.Body
	el   Element
}

// Frame summarises one scene update.
type Frame struct {
	Percent    float64
	ZoomExp    float64
	ZoomFactor float64
	Visible    int
}

// Scene is a bound engine. Bindings are fixed at [Engine.Bind] and only read
// afterwards. A Scene is not safe for concurrent use; hosts serialise calls
// through a [FrameSlot] or their own event loop.
type Scene struct {
	engine     *Engine
	bindings   []binding
	tailHeight float64
	last       Frame
}

// Engine returns the engine the scene was bound from.
func (s *Scene) Engine() *Engine { return s.engine }

// TailHeight returns the scroll distance past the animated region.
func (s *Scene) TailHeight() float64 { return s.tailHeight }

// TotalHeight is the animated height plus the tail: the height the facts
// panel needs so the page can scroll through the whole animation.
func (s *Scene) TotalHeight() float64 {
	return s.engine.AnimatedHeight() + s.tailHeight
}

// ScrollPercent maps a scroll offset to a percentage of the animated region.
//
// Scrolling starts counting below the header. The offset is clamped to the
// animated height plus the tail, so the result lies in
// [0, 100*(1+tail/animated)]. It is non-decreasing in scrollY. When the
// animated height is zero every offset maps to 0.
func (s *Scene) ScrollPercent(scrollY, headerHeight float64) float64 {
	animated := s.engine.AnimatedHeight()
	if animated <= 0 {
		return 0
	}
	offset := math.Max(0, scrollY-headerHeight)
	clamped := math.Min(offset, animated+s.tailHeight)
	return clamped / animated * 100
}

// Update resizes or hides every bound element for the given percentage.
func (s *Scene) Update(percent float64) Frame {
	exp, factor := s.engine.ZoomAt(percent)
	f := Frame{Percent: percent, ZoomExp: exp, ZoomFactor: factor}

	for _, b := range s.bindings {
		fp, ok := s.engine.Project(b.body.Radius, factor)
		if !ok {
			b.el.Hide()
			continue
		}
		b.el.Place(fp)
		f.Visible++
	}
	s.last = f
	return f
}

// Last returns the most recent frame produced by [Scene.Update].
func (s *Scene) Last() Frame { return s.last }

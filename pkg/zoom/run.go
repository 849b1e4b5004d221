package zoom

import (
	"fmt"

	"github.com/matzehuels/voyager/pkg/body"
)

// Page is the host the engine runs in.
type Page interface {
	// ScrollY returns the current vertical scroll offset.
	ScrollY() float64
	// HeaderHeight returns the rendered height of the page header.
	HeaderHeight() float64
	// ViewportHeight returns the height of the visible area.
	ViewportHeight() float64
	// SetFactsHeight sizes the facts panel so the page scrolls through the
	// whole animation.
	SetFactsHeight(px float64)
	// CreateBodyElements creates one element per body, keyed by body id.
	CreateBodyElements(bodies []body.Body) (map[string]Element, error)
	// RequestFrame schedules frame before the next repaint.
	RequestFrame(frame func())
	// OnScroll registers handler for scroll events.
	OnScroll(handler func())
}

// Run sets up the page and starts reacting to scroll events.
//
// The facts panel is sized, body elements are created and bound, and the
// scene is drawn at 0% before the scroll listener is attached, so no update
// can run against a missing element. The returned scene is live: later
// updates happen from the page's frame callbacks.
func Run(page Page, bodies []body.Body, cfg Config) (*Scene, error) {
	engine, err := New(bodies, cfg)
	if err != nil {
		return nil, err
	}

	tail := engine.TailHeight(page.ViewportHeight())
	page.SetFactsHeight(engine.AnimatedHeight() + tail)

	elements, err := page.CreateBodyElements(engine.Bodies())
	if err != nil {
		return nil, fmt.Errorf("create elements: %w", err)
	}
	scene, err := engine.Bind(elements, tail)
	if err != nil {
		return nil, err
	}
	scene.Update(0)

	slot := NewFrameSlot(page.RequestFrame, func(scrollY float64) {
		scene.Update(scene.ScrollPercent(scrollY, page.HeaderHeight()))
	})
	page.OnScroll(func() { slot.Post(page.ScrollY()) })

	return scene, nil
}

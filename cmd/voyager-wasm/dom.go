//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/zoom"
)

// domPage implements zoom.Page on the browser DOM.
type domPage struct {
	window js.Value
	header js.Value
	bodies js.Value
	facts  js.Value

	// funcs holds persistent callbacks so they are not collected.
	funcs []js.Func
}

func newDOMPage(window, doc js.Value) (*domPage, error) {
	p := &domPage{window: window}
	for _, q := range []struct {
		selector string
		dst      *js.Value
	}{
		{"header.header", &p.header},
		{"#bodies", &p.bodies},
		{"#facts", &p.facts},
	} {
		el := doc.Call("querySelector", q.selector)
		if el.IsNull() {
			return nil, errors.New(errors.ErrCodeMissingElement, "%s not found", q.selector)
		}
		*q.dst = el
	}
	return p, nil
}

func (p *domPage) ScrollY() float64 {
	return p.window.Get("scrollY").Float()
}

func (p *domPage) HeaderHeight() float64 {
	return p.header.Get("offsetHeight").Float()
}

func (p *domPage) ViewportHeight() float64 {
	return p.window.Get("innerHeight").Float()
}

func (p *domPage) SetFactsHeight(px float64) {
	p.facts.Get("style").Set("height", fmt.Sprintf("%gpx", px))
}

func (p *domPage) CreateBodyElements(bodies []body.Body) (map[string]zoom.Element, error) {
	doc := p.window.Get("document")
	elements := make(map[string]zoom.Element, len(bodies))
	for _, b := range bodies {
		el := doc.Call("createElement", "div")
		el.Set("className", "body")
		el.Set("id", "body-"+b.ID)
		el.Set("title", b.Name)
		el.Get("style").Set("backgroundColor", b.Color)
		p.bodies.Call("appendChild", el)
		elements[b.ID] = domElement{el: el}
	}
	return elements, nil
}

func (p *domPage) RequestFrame(frame func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		frame()
		return nil
	})
	p.window.Call("requestAnimationFrame", cb)
}

func (p *domPage) OnScroll(handler func()) {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		handler()
		return nil
	})
	p.funcs = append(p.funcs, cb)
	opts := js.Global().Get("Object").New()
	opts.Set("passive", true)
	p.window.Call("addEventListener", "scroll", cb, opts)
}

// domElement is one body's div.
type domElement struct {
	el js.Value
}

func (e domElement) Hide() {
	e.el.Get("style").Set("display", "none")
}

func (e domElement) Place(f zoom.Footprint) {
	style := e.el.Get("style")
	style.Set("display", "block")
	style.Set("width", fmt.Sprintf("%gpx", f.Diameter))
	style.Set("height", fmt.Sprintf("%gpx", f.Diameter))
	style.Set("left", f.Left())
	style.Set("bottom", fmt.Sprintf("%gpx", f.Bottom))
}

// Package render turns a composed layout into the static artifacts served to
// the browser.
//
// # Overview
//
// The zoom runtime only needs three things from the page: a header, an empty
// #bodies panel it fills with body elements, and a #facts panel whose height
// it sets. This package produces that markup, with every section and boost
// absolutely positioned at its layout Top:
//
//	fragment, err := render.RenderFragment(l, render.WithImages(files))
//	page, err := render.RenderPage(l, bodies, render.WithBasePath("/voyager/"))
//
// [RenderPage] wraps the fragment in a complete document that embeds the
// body list as JSON and loads the WebAssembly runtime.
//
// # JSON
//
// [RenderBodiesJSON] writes the body list in the shape the runtime reads.
// [RenderLayoutJSON] writes the layout itself, for inspection and tooling.
//
// # Body text
//
// Body descriptions come from README files and may contain HTML. They are
// passed through a bluemonday UGC policy before being embedded; use
// [WithRawText] for trusted data.
package render

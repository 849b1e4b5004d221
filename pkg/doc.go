// Package pkg provides the core libraries for voyager, a scroll-driven page
// that zooms from astronauts to stars.
//
// # Overview
//
// Bodies of every size, from a person to the largest known star, are placed
// along one logarithmic scroll axis. Scrolling through the page zooms the
// view so that each body passes through a visible size range in turn. The
// pkg directory is organized into these areas:
//
//  1. [body] - The body model and its sources (data directory, MongoDB)
//  2. [scale], [layout] - The logarithmic axis, sections and boosts
//  3. [zoom] - The scroll-to-zoom engine shared by the browser and terminal
//  4. [render], [assets] - HTML and JSON outputs, image copying
//  5. [pipeline], [cache] - Orchestration (load → layout → render) with caching
//  6. [config], [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// The typical data flow through voyager:
//
//	data/bodies/<id>/data.{json,yaml,toml}   or   MongoDB
//	         ↓
//	    [body] package (load, normalize, sort by radius)
//	         ↓
//	    [layout] package (axis, sections, boosts)
//	         ↓
//	    [render] package (index.html, fragment.html, JSON)
//	         ↓
//	    browser: [zoom] engine resizes bodies as the reader scrolls
//
// # Quick Start
//
// Build a page from a data directory:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source: body.DirSource{Dir: "data/bodies"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("index.html", result.Artifacts[pipeline.FormatHTML], 0o644)
//
// [body]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/body
// [scale]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/scale
// [layout]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/layout
// [zoom]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/zoom
// [render]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/render
// [assets]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/assets
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/voyager/pkg/buildinfo
package pkg

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/voyager/pkg/assets"
	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/cache"
	"github.com/matzehuels/voyager/pkg/layout"
	"github.com/matzehuels/voyager/pkg/observability"
	"github.com/matzehuels/voyager/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// The build, layout and serve commands all use it so that caching behaves
// the same everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	bodies, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Bodies = bodies
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.BodyCount = len(bodies)
	result.CacheInfo.LoadHit = loadHit

	if len(bodies) == 0 {
		r.Logger.Warn("no bodies loaded", "source", sourceName(opts.Source))
	} else {
		r.Logger.Info("loaded bodies",
			"count", len(bodies),
			"duration", result.Stats.LoadTime)
	}

	if opts.CopiesImages() {
		copier := assets.Copier{Logger: opts.Logger}
		images, err := copier.CopyImages(opts.ImageSrc, opts.ImageDest, bodies)
		if err != nil {
			return nil, fmt.Errorf("copy images: %w", err)
		}
		result.Images = images
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComposeWithCacheInfo(ctx, bodies, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.SectionCount = len(l.Sections())
	result.Stats.BoostCount = l.BoostCount()
	result.Stats.Height = l.Height
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("composed layout",
		"sections", result.Stats.SectionCount,
		"boosts", result.Stats.BoostCount,
		"height", l.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	rendered, renderHit, err := r.RenderWithCacheInfo(ctx, l, bodies, result.Images, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = rendered.Artifacts
	result.BodiesHash = rendered.BodiesHash
	result.BuildID = rendered.BuildID
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"build", result.BuildID,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads bodies and returns cache hit info.
// Bodies are cached only when opts.SourceKey is set.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]body.Body, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	name := sourceName(opts.Source)
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, name)
	start := time.Now()

	var cacheKey string
	if opts.SourceKey != nil {
		cacheKey = r.Keyer.SourceKey(*opts.SourceKey)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				var bodies []body.Body
				if err := json.Unmarshal(data, &bodies); err == nil {
					observability.Cache().OnCacheHit(ctx, "source")
					hooks.OnLoadComplete(ctx, name, len(bodies), time.Since(start), nil)
					return bodies, true, nil
				}
			}
			observability.Cache().OnCacheMiss(ctx, "source")
		}
	}

	bodies, err := opts.Source.Load(ctx)
	hooks.OnLoadComplete(ctx, name, len(bodies), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheKey != "" {
		if data, err := render.RenderBodiesJSON(bodies); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLSource); err == nil {
				observability.Cache().OnCacheSet(ctx, "source", len(data))
			}
		}
	}
	return bodies, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]body.Body, error) {
	bodies, _, err := r.LoadWithCacheInfo(ctx, opts)
	return bodies, err
}

// ComposeWithCacheInfo composes a layout with caching and returns cache hit info.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, bodies []body.Body, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(bodies))
	start := time.Now()

	bodiesJSON, err := render.RenderBodiesJSON(bodies)
	if err != nil {
		return layout.Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(bodiesJSON), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := layout.Unmarshal(data, bodies)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			hooks.OnLayoutComplete(ctx, len(cached.Sections()), cached.BoostCount(), time.Since(start), nil)
			return cached, true, nil
		}
		// Undecodable entries are recomputed.
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	l, err := layout.Compose(bodies, opts.Layout)
	hooks.OnLayoutComplete(ctx, len(l.Sections()), l.BoostCount(), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// Compose is a convenience wrapper that calls ComposeWithCacheInfo and discards the cache hit info.
func (r *Runner) Compose(ctx context.Context, bodies []body.Body, opts Options) (layout.Layout, error) {
	l, _, err := r.ComposeWithCacheInfo(ctx, bodies, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit flag is true only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, bodies []body.Body, images map[string]string, opts Options) (*Rendered, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	c, err := encodeContent(l, bodies)
	if err != nil {
		return nil, false, err
	}
	out := &Rendered{BodiesHash: c.bodiesHash, BuildID: c.buildID()}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(c.hash, opts.ArtifactKeyOpts(format, images))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		out.Artifacts = artifacts
		return out, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := renderContent(c, l, bodies, images, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(c.hash, opts.ArtifactKeyOpts(format, images))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	out.Artifacts = rendered
	return out, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Package pipeline provides the build pipeline for voyager sites.
//
// This package implements the complete load → layout → render pipeline used
// by the build, layout and serve commands. Centralizing it keeps caching and
// defaults identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read bodies from a [body.Source] (data directory or MongoDB)
//  2. Layout: Compose sections and boosts along the logarithmic scroll axis
//  3. Render: Generate artifacts (full page, fragment, bodies, layout, manifest)
//
// Between load and render, body images are optionally copied into the output
// directory so the renderer knows each image's file name.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  body.DirSource{Dir: "data/bodies"},
//	    Formats: []string{pipeline.FormatHTML, pipeline.FormatBodies},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts[pipeline.FormatHTML]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/buildinfo"
	"github.com/matzehuels/voyager/pkg/cache"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/layout"
	"github.com/matzehuels/voyager/pkg/render"
	"github.com/matzehuels/voyager/pkg/zoom"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for output artifacts.
const (
	FormatHTML     = "html"
	FormatFragment = "fragment"
	FormatBodies   = "bodies"
	FormatLayout   = "layout"
	FormatManifest = "manifest"
)

// AllFormats lists every format in the order artifacts are written.
var AllFormats = []string{FormatHTML, FormatFragment, FormatBodies, FormatLayout, FormatManifest}

var fileNames = map[string]string{
	FormatHTML:     "index.html",
	FormatFragment: "fragment.html",
	FormatBodies:   "bodies.json",
	FormatLayout:   "layout.json",
	FormatManifest: "manifest.json",
}

// FileName returns the output file name for a format.
func FileName(format string) string {
	return fileNames[format]
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if _, ok := fileNames[format]; !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(AllFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the build pipeline.
type Options struct {
	// Load options
	Source body.Source `json:"-"`
	// SourceKey enables caching of loaded bodies. Set it for remote sources
	// only; a local directory is cheaper to read than to hash.
	SourceKey *cache.SourceKeyOpts `json:"source_key,omitempty"`
	Refresh   bool                 `json:"refresh,omitempty"`

	// Layout options
	Layout layout.Options `json:"layout"`

	// Asset options. Images are copied only when both are set.
	ImageSrc  string `json:"image_src,omitempty"`
	ImageDest string `json:"image_dest,omitempty"`

	// Render options
	Formats  []string    `json:"formats,omitempty"`
	BasePath string      `json:"base_path,omitempty"`
	Title    string      `json:"title,omitempty"`
	Subtitle string      `json:"subtitle,omitempty"`
	Footer   string      `json:"footer,omitempty"`
	RawText  bool        `json:"raw_text,omitempty"`
	Wasm     string      `json:"wasm,omitempty"`
	Zoom     zoom.Config `json:"zoom"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Bodies are the loaded bodies, sorted by radius.
	Bodies []body.Body

	// BodiesHash is the content hash of the encoded bodies.
	BodiesHash string

	// Layout is the composed layout.
	Layout layout.Layout

	// BuildID identifies the rendered content. Identical inputs produce the
	// same id.
	BuildID string

	// Images maps body ids to copied image file names.
	Images map[string]string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BodyCount    int
	SectionCount int
	BoostCount   int
	Height       float64
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether bodies came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Source == nil {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout composition.
func (o *Options) SetLayoutDefaults() {
	defaults := layout.DefaultOptions()
	if o.Layout.PixelsPerDecade == 0 {
		o.Layout.PixelsPerDecade = defaults.PixelsPerDecade
	}
	if o.Layout.MergeThreshold == 0 {
		o.Layout.MergeThreshold = defaults.MergeThreshold
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout composition.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Layout.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(AllFormats)
	}
	if o.BasePath == "" {
		o.BasePath = render.DefaultBasePath
	}
	if o.Wasm == "" {
		o.Wasm = render.DefaultWasm
	}
	o.Zoom.SetDefaults()
	o.Zoom.PixelsPerDecade = o.Layout.PixelsPerDecade
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateBasePath(o.BasePath); err != nil {
		return err
	}
	if err := render.ValidateWasm(o.Wasm); err != nil {
		return err
	}
	return o.Zoom.Validate()
}

// CopiesImages reports whether the asset stage runs.
func (o *Options) CopiesImages() bool {
	return o.ImageSrc != "" && o.ImageDest != ""
}

// LayoutKeyOpts returns cache key options for layout composition.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		PixelsPerDecade: o.Layout.PixelsPerDecade,
		MergeThreshold:  o.Layout.MergeThreshold,
	}
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string, images map[string]string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		BasePath: o.BasePath,
		Title:    o.Title,
		Subtitle: o.Subtitle,
		Footer:   o.Footer,
		RawText:  o.RawText,
	}
	if len(images) > 0 {
		k.Images = cache.HashJSON(images)
	}
	switch format {
	case FormatHTML:
		k.Zoom = cache.HashJSON(o.Zoom)
		k.Wasm = o.Wasm
	case FormatManifest:
		// The manifest lists the written files and the binary version.
		k.Files = strings.Join(o.Formats, ",")
		k.Version = buildinfo.Version
	}
	return k
}

// renderOptions converts pipeline options to render options.
func (o *Options) renderOptions(buildID string, images map[string]string) []render.Option {
	opts := []render.Option{
		render.WithBasePath(o.BasePath),
		render.WithBuildID(buildID),
		render.WithImages(images),
		render.WithZoomConfig(o.Zoom),
		render.WithWasm(o.Wasm),
	}
	if o.Title != "" {
		opts = append(opts, render.WithTitle(o.Title))
	}
	if o.Subtitle != "" {
		opts = append(opts, render.WithSubtitle(o.Subtitle))
	}
	if o.Footer != "" {
		opts = append(opts, render.WithFooter(o.Footer))
	}
	if o.RawText {
		opts = append(opts, render.WithRawText())
	}
	return opts
}

// sourceName returns a printable name for a source.
func sourceName(src body.Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}

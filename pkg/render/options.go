package render

import (
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/zoom"
)

// Default page text.
const (
	DefaultTitle    = "Hey, hvor stor er du egenligt, lille?"
	DefaultSubtitle = "Husk at hvis du skal doom-scrolle, så kan du lige så godt kigge på noget interessant"
	DefaultFooter   = "Footer content"
	DefaultBasePath = "/"
	DefaultWasm     = "voyager.wasm"
)

// Option configures [RenderFragment] and [RenderPage].
type Option func(*renderer)

type renderer struct {
	basePath string
	images   map[string]string
	buildID  string
	title    string
	subtitle string
	footer   string
	wasm     string
	zoom     zoom.Config
	policy   *bluemonday.Policy
}

// WithBasePath sets the URL prefix for images and scripts. It must start and
// end with a slash.
func WithBasePath(p string) Option { return func(r *renderer) { r.basePath = p } }

// WithImages maps body ids to the image file names produced by the asset
// copy step. Bodies without an entry fall back to "<id>.jpg".
func WithImages(files map[string]string) Option { return func(r *renderer) { r.images = files } }

// WithBuildID records the build id in a meta tag.
func WithBuildID(id string) Option { return func(r *renderer) { r.buildID = id } }

func WithTitle(s string) Option    { return func(r *renderer) { r.title = s } }
func WithSubtitle(s string) Option { return func(r *renderer) { r.subtitle = s } }
func WithFooter(s string) Option   { return func(r *renderer) { r.footer = s } }

// WithWasm sets the file name of the WebAssembly runtime, relative to the
// base path.
func WithWasm(name string) Option { return func(r *renderer) { r.wasm = name } }

// ValidateWasm checks a runtime file name given to [WithWasm]. It must be a
// clean relative path ending in .wasm.
func ValidateWasm(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || path.Clean(name) != name || strings.HasPrefix(name, "..") {
		return errors.New(errors.ErrCodeInvalidPath, "wasm runtime must be a relative path: %q", name)
	}
	if path.Ext(name) != ".wasm" {
		return errors.New(errors.ErrCodeInvalidPath, "wasm runtime must end in .wasm: %q", name)
	}
	return nil
}

// WithZoomConfig embeds the runtime configuration in the page. Without it
// the page carries [zoom.DefaultConfig].
func WithZoomConfig(c zoom.Config) Option { return func(r *renderer) { r.zoom = c } }

// WithRawText disables sanitising of body text.
func WithRawText() Option { return func(r *renderer) { r.policy = nil } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		basePath: DefaultBasePath,
		title:    DefaultTitle,
		subtitle: DefaultSubtitle,
		footer:   DefaultFooter,
		wasm:     DefaultWasm,
		zoom:     zoom.DefaultConfig(),
		policy:   bluemonday.UGCPolicy(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) imageURL(id string) string {
	name, ok := r.images[id]
	if !ok {
		name = id + ".jpg"
	}
	return r.basePath + "bodies/" + name
}

func (r renderer) sanitize(text string) string {
	if r.policy == nil {
		return text
	}
	return r.policy.Sanitize(text)
}

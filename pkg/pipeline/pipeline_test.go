package pipeline

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/layout"
	"github.com/matzehuels/voyager/pkg/render"
	"github.com/matzehuels/voyager/pkg/zoom"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"html", false},
		{"fragment", false},
		{"bodies", false},
		{"layout", false},
		{"manifest", false},
		{"invalid", true},
		{"HTML", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"html", "bodies"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"html", "svg"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats() error = %v, want INVALID_FORMAT", err)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestFileName(t *testing.T) {
	for _, f := range AllFormats {
		if FileName(f) == "" {
			t.Errorf("FileName(%q) is empty", f)
		}
	}
	if got := FileName(FormatHTML); got != "index.html" {
		t.Errorf("FileName(html) = %q, want index.html", got)
	}
	if got := FileName("svg"); got != "" {
		t.Errorf("FileName(svg) = %q, want empty", got)
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	var opts Options
	if err := opts.ValidateForLoad(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ValidateForLoad() without source error = %v, want INVALID_INPUT", err)
	}

	opts.Source = body.DirSource{Dir: "data"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Fatalf("ValidateForLoad() error: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	var opts Options
	opts.SetLayoutDefaults()

	if opts.Layout != layout.DefaultOptions() {
		t.Errorf("Layout = %+v, want %+v", opts.Layout, layout.DefaultOptions())
	}

	opts = Options{Layout: layout.Options{PixelsPerDecade: 100}}
	opts.SetLayoutDefaults()
	if opts.Layout.PixelsPerDecade != 100 {
		t.Errorf("PixelsPerDecade = %v, want 100 (explicit value kept)", opts.Layout.PixelsPerDecade)
	}
	if opts.Layout.MergeThreshold != layout.DefaultMergeThreshold {
		t.Errorf("MergeThreshold = %v, want %v", opts.Layout.MergeThreshold, layout.DefaultMergeThreshold)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{Layout: layout.Options{PixelsPerDecade: 300, MergeThreshold: 50}}
	opts.SetRenderDefaults()

	if !slices.Equal(opts.Formats, AllFormats) {
		t.Errorf("Formats = %v, want %v", opts.Formats, AllFormats)
	}
	if opts.BasePath != render.DefaultBasePath {
		t.Errorf("BasePath = %q, want %q", opts.BasePath, render.DefaultBasePath)
	}
	if opts.Zoom.DefaultRadius != zoom.DefaultRadius {
		t.Errorf("Zoom.DefaultRadius = %v, want %v", opts.Zoom.DefaultRadius, zoom.DefaultRadius)
	}
	if opts.Zoom.PixelsPerDecade != 300 {
		t.Errorf("Zoom.PixelsPerDecade = %v, want the layout value 300", opts.Zoom.PixelsPerDecade)
	}

	// Formats must be a copy.
	opts.Formats[0] = "changed"
	if AllFormats[0] != FormatHTML {
		t.Error("SetRenderDefaults aliased AllFormats")
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
		{"relative base path", Options{BasePath: "site/"}, errors.ErrCodeInvalidPath},
		{"negative threshold", Options{Layout: layout.Options{MergeThreshold: -1}}, errors.ErrCodeInvalidConfig},
		{"inverted visible sizes", Options{Zoom: zoom.Config{MinVisibleSize: 100, MaxVisibleSize: 50}}, errors.ErrCodeInvalidConfig},
		{"absolute wasm", Options{Wasm: "/voyager.wasm"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForRender() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: body.DirSource{Dir: "data"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	first := opts.Formats

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if !slices.Equal(first, opts.Formats) {
		t.Errorf("Formats changed between calls: %v -> %v", first, opts.Formats)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Title: "T", BasePath: "/site/"}
	opts.SetRenderDefaults()

	html := opts.ArtifactKeyOpts(FormatHTML, nil)
	if html.Zoom == "" {
		t.Error("html key should include the zoom config")
	}
	if html.Images != "" {
		t.Errorf("Images = %q, want empty without images", html.Images)
	}

	frag := opts.ArtifactKeyOpts(FormatFragment, map[string]string{"earth": "earth.png"})
	if frag.Zoom != "" {
		t.Error("fragment key should not include the zoom config")
	}
	if frag.Images == "" {
		t.Error("fragment key should include the image map")
	}
	if frag.Title != "T" || frag.BasePath != "/site/" || frag.Format != FormatFragment {
		t.Errorf("ArtifactKeyOpts() = %+v", frag)
	}
	if html.Wasm != "voyager.wasm" || frag.Wasm != "" {
		t.Errorf("Wasm = %q / %q, want voyager.wasm on html only", html.Wasm, frag.Wasm)
	}

	manifest := opts.ArtifactKeyOpts(FormatManifest, nil)
	if manifest.Files != strings.Join(AllFormats, ",") || manifest.Version == "" {
		t.Errorf("manifest key = %+v, want formats and version", manifest)
	}
	opts.Formats = []string{FormatHTML, FormatManifest}
	if got := opts.ArtifactKeyOpts(FormatManifest, nil); got.Files == manifest.Files {
		t.Errorf("manifest key Files = %q for different formats", got.Files)
	}
}

func TestSourceName(t *testing.T) {
	if got := sourceName(body.DirSource{Dir: "data/bodies"}); got != "dir:data/bodies" {
		t.Errorf("sourceName(dir) = %q", got)
	}
	if got := sourceName(&staticSource{}); got != "*pipeline.staticSource" {
		t.Errorf("sourceName(static) = %q", got)
	}
}

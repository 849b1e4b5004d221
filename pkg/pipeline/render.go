package pipeline

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/buildinfo"
	"github.com/matzehuels/voyager/pkg/cache"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/layout"
	"github.com/matzehuels/voyager/pkg/render"
)

// buildNamespace scopes build ids generated from content hashes.
var buildNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/voyager/build"))

// Manifest describes one build. It is written as manifest.json.
type Manifest struct {
	BuildID  string            `json:"build_id"`
	Version  string            `json:"version"`
	Bodies   int               `json:"bodies"`
	Sections int               `json:"sections"`
	Boosts   int               `json:"boosts"`
	Height   float64           `json:"height"`
	Files    []string          `json:"files"`
	Images   map[string]string `json:"images,omitempty"`
	BasePath string            `json:"base_path"`
	LogRange [2]float64        `json:"log_range"`
}

// BuildID derives a stable build id from a content hash.
func BuildID(contentHash string) string {
	return uuid.NewSHA1(buildNamespace, []byte(contentHash)).String()
}

// Rendered holds the artifacts of one render and the ids derived from the
// content they were rendered from.
type Rendered struct {
	Artifacts  map[string][]byte
	BodiesHash string
	BuildID    string
}

// content is the encoded input of a render, computed once per run.
type content struct {
	bodiesJSON []byte
	layoutJSON []byte
	bodiesHash string
	hash       string
}

func encodeContent(l layout.Layout, bodies []body.Body) (content, error) {
	bodiesJSON, err := render.RenderBodiesJSON(bodies)
	if err != nil {
		return content{}, err
	}
	layoutJSON, err := render.RenderLayoutJSON(l)
	if err != nil {
		return content{}, fmt.Errorf("encode layout: %w", err)
	}
	return content{
		bodiesJSON: bodiesJSON,
		layoutJSON: layoutJSON,
		bodiesHash: cache.Hash(bodiesJSON),
		hash:       cache.Hash(append(append(slices.Clone(bodiesJSON), '\n'), layoutJSON...)),
	}, nil
}

func (c content) buildID() string { return BuildID(c.hash) }

// Render generates every requested format from a layout.
func Render(l layout.Layout, bodies []body.Body, images map[string]string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	c, err := encodeContent(l, bodies)
	if err != nil {
		return nil, err
	}
	return renderContent(c, l, bodies, images, opts)
}

func renderContent(c content, l layout.Layout, bodies []body.Body, images map[string]string, opts Options) (map[string][]byte, error) {
	buildID := c.buildID()
	results := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatHTML:
			data, err = render.RenderPage(l, bodies, opts.renderOptions(buildID, images)...)
		case FormatFragment:
			data, err = render.RenderFragment(l, opts.renderOptions(buildID, images)...)
		case FormatBodies:
			data = c.bodiesJSON
		case FormatLayout:
			data = c.layoutJSON
		case FormatManifest:
			data, err = renderManifest(l, bodies, images, buildID, opts)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		results[format] = data
	}
	return results, nil
}

func renderManifest(l layout.Layout, bodies []body.Body, images map[string]string, buildID string, opts Options) ([]byte, error) {
	files := make([]string, 0, len(opts.Formats))
	for _, f := range opts.Formats {
		files = append(files, FileName(f))
	}
	m := Manifest{
		BuildID:  buildID,
		Version:  buildinfo.Version,
		Bodies:   len(bodies),
		Sections: len(l.Sections()),
		Boosts:   l.BoostCount(),
		Height:   l.Height,
		Files:    files,
		Images:   images,
		BasePath: opts.BasePath,
		LogRange: [2]float64{l.Axis.LogMin, l.Axis.LogMax},
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	return data, nil
}

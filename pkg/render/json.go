package render

import (
	"encoding/json"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/layout"
)

// RenderBodiesJSON encodes bodies as a 2-space indented JSON array. A nil
// slice encodes as [].
func RenderBodiesJSON(bodies []body.Body) ([]byte, error) {
	if bodies == nil {
		bodies = []body.Body{}
	}
	data, err := json.MarshalIndent(bodies, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBody, err, "encode bodies")
	}
	return data, nil
}

// RenderLayoutJSON encodes the layout with one entry per item, tagged
// "section" or "boost". See [layout.Marshal].
func RenderLayoutJSON(l layout.Layout) ([]byte, error) {
	return layout.Marshal(l)
}

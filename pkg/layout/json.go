package layout

import (
	"encoding/json"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/scale"
)

type jsonLayout struct {
	Height          float64    `json:"height"`
	PixelsPerDecade float64    `json:"pixels_per_decade"`
	LogMin          float64    `json:"log_min"`
	LogMax          float64    `json:"log_max"`
	Items           []jsonItem `json:"items"`
}

type jsonItem struct {
	Type   Kind     `json:"type"`
	Top    float64  `json:"top"`
	Anchor string   `json:"anchor,omitempty"`
	Bodies []string `json:"bodies,omitempty"`
}

// Marshal encodes l as indented JSON. Sections reference their bodies by id.
func Marshal(l Layout) ([]byte, error) {
	out := jsonLayout{
		Height:          l.Height,
		PixelsPerDecade: l.Axis.PixelsPerDecade,
		LogMin:          l.Axis.LogMin,
		LogMax:          l.Axis.LogMax,
		Items:           make([]jsonItem, 0, len(l.Items)),
	}
	for _, it := range l.Items {
		switch it := it.(type) {
		case Section:
			out.Items = append(out.Items, jsonItem{
				Type:   KindSection,
				Top:    it.Top,
				Anchor: it.Anchor,
				Bodies: body.IDs(it.Bodies),
			})
		case Boost:
			out.Items = append(out.Items, jsonItem{Type: KindBoost, Top: it.Top})
		default:
			return nil, errors.New(errors.ErrCodeInternal, "unknown layout item %T", it)
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// Unmarshal decodes a layout written by [Marshal], resolving section body ids
// against bodies. An id missing from bodies is an error.
func Unmarshal(data []byte, bodies []body.Body) (Layout, error) {
	var in jsonLayout
	if err := json.Unmarshal(data, &in); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}

	byID := make(map[string]body.Body, len(bodies))
	for _, b := range bodies {
		byID[b.ID] = b
	}

	l := Layout{Height: in.Height, Items: make([]Item, 0, len(in.Items))}
	if len(in.Items) == 0 {
		l.Axis = scale.NewAxis(nil, in.PixelsPerDecade)
	} else {
		l.Axis = scale.Axis{
			LogMin:          in.LogMin,
			LogMax:          in.LogMax,
			LogRange:        in.LogMax - in.LogMin,
			PixelsPerDecade: in.PixelsPerDecade,
		}
	}

	for _, it := range in.Items {
		switch it.Type {
		case KindSection:
			s := Section{Top: it.Top, Anchor: it.Anchor, Bodies: make([]body.Body, 0, len(it.Bodies))}
			for _, id := range it.Bodies {
				b, ok := byID[id]
				if !ok {
					return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout references unknown body %q", id)
				}
				s.Bodies = append(s.Bodies, b)
			}
			l.Items = append(l.Items, s)
		case KindBoost:
			l.Items = append(l.Items, Boost{Top: it.Top})
		default:
			return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "unknown layout item type %q", it.Type)
		}
	}
	return l, nil
}

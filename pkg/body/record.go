package body

import (
	"strings"

	"github.com/matzehuels/voyager/pkg/errors"
)

// record is the on-disk shape of a body's metadata.
// Radius and Height are pointers so a missing value can be told apart from zero.
type record struct {
	Name   string   `json:"name" toml:"name" yaml:"name"`
	Radius *float64 `json:"radius" toml:"radius" yaml:"radius"`
	Height *float64 `json:"height" toml:"height" yaml:"height"`
	Color  string   `json:"color" toml:"color" yaml:"color"`
	Text   string   `json:"text" toml:"text" yaml:"text"`
}

// normalize converts a record into a Body.
//
// A record needs a radius or a height. A non-zero height marks an astronaut,
// and the radius falls back to the height when the radius is missing or zero.
func normalize(id string, rec record) (Body, error) {
	if err := errors.ValidateBodyID(id); err != nil {
		return Body{}, err
	}
	if rec.Radius == nil && rec.Height == nil {
		return Body{}, errors.New(errors.ErrCodeInvalidBody, "%s: needs a radius or a height", id)
	}

	var radius, height float64
	if rec.Radius != nil {
		radius = *rec.Radius
	}
	if rec.Height != nil {
		height = *rec.Height
	}
	if radius == 0 {
		radius = height
	}
	if err := errors.ValidateRadius(id, radius); err != nil {
		return Body{}, err
	}

	b := Body{
		ID:          id,
		Name:        strings.TrimSpace(rec.Name),
		Radius:      radius,
		IsAstronaut: height != 0,
		Color:       strings.TrimSpace(rec.Color),
		Text:        rec.Text,
	}
	if b.Name == "" {
		b.Name = id
	}
	if b.Color == "" {
		b.Color = DefaultColor
	}
	return b, nil
}

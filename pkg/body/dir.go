package body

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/voyager/pkg/errors"
)

// Metadata and text file names inside a body directory.
const (
	ReadmeFile = "README.md"
)

// metadataFiles lists the accepted metadata files in lookup order.
// The first one present wins.
var metadataFiles = []struct {
	name   string
	decode func([]byte, *record) error
}{
	{"data.json", func(b []byte, r *record) error { return json.Unmarshal(b, r) }},
	{"data.toml", func(b []byte, r *record) error { return toml.Unmarshal(b, r) }},
	{"data.yaml", func(b []byte, r *record) error { return yaml.Unmarshal(b, r) }},
}

// DirSource loads bodies from a data directory laid out as
//
//	<Dir>/<id>/data.json   (or data.toml, data.yaml)
//	<Dir>/<id>/README.md   (optional descriptive text)
//	<Dir>/<id>/image.png   (optional, see package assets)
//
// Subdirectories without metadata are ignored. Subdirectories whose metadata
// cannot be parsed or validated are skipped with a warning.
type DirSource struct {
	Dir    string
	Logger *log.Logger
}

// String names the source for logs.
func (s DirSource) String() string { return "dir:" + s.Dir }

// Load reads every body directory and returns the bodies sorted by radius.
// It fails only when Dir itself cannot be read.
func (s DirSource) Load(ctx context.Context) ([]Body, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "data directory %s", s.Dir)
		}
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	bodies := make([]Body, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		b, ok, err := s.loadOne(id)
		if err != nil {
			logger.Warn("skipping body", "id", id, "err", err)
			continue
		}
		if !ok {
			logger.Debug("no metadata, ignoring", "id", id)
			continue
		}
		bodies = append(bodies, b)
	}

	Sort(bodies)
	logger.Debug("loaded bodies", "dir", s.Dir, "count", len(bodies))
	return bodies, nil
}

// loadOne reads a single body directory. ok is false when the directory has
// no metadata file at all.
func (s DirSource) loadOne(id string) (b Body, ok bool, err error) {
	dir := filepath.Join(s.Dir, id)

	var rec record
	found := false
	for _, mf := range metadataFiles {
		data, err := os.ReadFile(filepath.Join(dir, mf.name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Body{}, false, err
		}
		if err := mf.decode(data, &rec); err != nil {
			return Body{}, false, fmt.Errorf("parse %s: %w", mf.name, err)
		}
		found = true
		break
	}
	if !found {
		return Body{}, false, nil
	}

	text, err := os.ReadFile(filepath.Join(dir, ReadmeFile))
	switch {
	case err == nil:
		rec.Text = string(text)
	case !os.IsNotExist(err):
		return Body{}, false, fmt.Errorf("read %s: %w", ReadmeFile, err)
	}

	b, err = normalize(id, rec)
	if err != nil {
		return Body{}, false, err
	}
	return b, true, nil
}

// Ensure DirSource implements Source.
var _ Source = DirSource{}

// Package config loads the site configuration from voyager.toml.
//
// Every field has a default, so a missing voyager.toml is not an error. The
// layout's pixels per decade is the single source for both the static
// layout and the zoom runtime; [Config.ZoomConfig] copies it over.
//
//	data_dir = "data/bodies"
//	base_path = "/voyager/"
//
//	[layout]
//	pixels_per_decade = 800
//	merge_threshold = 200
//
//	[source]
//	kind = "mongo"
//
//	[source.mongo]
//	uri = "mongodb://localhost:27017"
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/cache"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/layout"
	"github.com/matzehuels/voyager/pkg/render"
	"github.com/matzehuels/voyager/pkg/zoom"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "voyager.toml"

// Defaults for top-level settings.
const (
	DefaultDataDir    = "data/bodies"
	DefaultOutDir     = "dist"
	DefaultBasePath   = "/"
	DefaultAddr       = ":5173"
	DefaultSourceKind = SourceDir
	DefaultBackend    = BackendFile
)

// Source kinds.
const (
	SourceDir   = "dir"
	SourceMongo = "mongo"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

var (
	validSources  = []string{SourceDir, SourceMongo}
	validBackends = []string{BackendFile, BackendRedis, BackendNone}
)

// Config is the site configuration.
type Config struct {
	DataDir  string `toml:"data_dir"`
	OutDir   string `toml:"out_dir"`
	BasePath string `toml:"base_path"`

	Layout layout.Options `toml:"layout"`
	Zoom   zoom.Config    `toml:"zoom"`
	Page   Page           `toml:"page"`
	Source Source         `toml:"source"`
	Cache  Cache          `toml:"cache"`
	Serve  Serve          `toml:"serve"`
}

// Page holds the static text of the page.
type Page struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	Footer   string `toml:"footer"`
	// RawText embeds README text without sanitising it.
	RawText bool `toml:"raw_text"`
	// Wasm is the runtime file name relative to the base path.
	Wasm string `toml:"wasm"`
}

// Source selects where bodies are loaded from.
type Source struct {
	Kind  string           `toml:"kind"`
	Mongo body.MongoConfig `toml:"mongo"`
}

// Cache selects the pipeline cache backend.
type Cache struct {
	Backend string            `toml:"backend"`
	Dir     string            `toml:"dir"`
	Redis   cache.RedisConfig `toml:"redis"`
}

// Serve configures the development server.
type Serve struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// Load reads path and applies defaults. A missing file at the default path
// yields [Default]; a missing file at any other path is an error. Unknown
// keys are rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}

	var c Config
	meta, err := toml.DecodeFile(path, &c)
	if os.IsNotExist(err) {
		if path == DefaultFile {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.Page.Wasm == "" {
		c.Page.Wasm = render.DefaultWasm
	}
	defaults := layout.DefaultOptions()
	if c.Layout.PixelsPerDecade == 0 {
		c.Layout.PixelsPerDecade = defaults.PixelsPerDecade
	}
	if c.Layout.MergeThreshold == 0 {
		c.Layout.MergeThreshold = defaults.MergeThreshold
	}
	c.Zoom.SetDefaults()
	c.Zoom.PixelsPerDecade = c.Layout.PixelsPerDecade
	if c.Source.Kind == "" {
		c.Source.Kind = DefaultSourceKind
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultBackend
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
}

// Validate checks every section and returns the first problem.
func (c Config) Validate() error {
	if err := errors.ValidateBasePath(c.BasePath); err != nil {
		return err
	}
	if err := render.ValidateWasm(c.Page.Wasm); err != nil {
		return err
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := c.ZoomConfig().Validate(); err != nil {
		return err
	}
	if !slices.Contains(validSources, c.Source.Kind) {
		return errors.New(errors.ErrCodeInvalidConfig, "source kind %q (must be one of: %s)", c.Source.Kind, strings.Join(validSources, ", "))
	}
	if c.Source.Kind == SourceMongo && c.Source.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "source.mongo.uri is required for the mongo source")
	}
	if !slices.Contains(validBackends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q (must be one of: %s)", c.Cache.Backend, strings.Join(validBackends, ", "))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.URL == "" && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.url or cache.redis.addr is required for the redis backend")
	}
	return nil
}

// ZoomConfig returns the zoom settings with the layout's pixels per decade.
func (c Config) ZoomConfig() zoom.Config {
	z := c.Zoom
	z.PixelsPerDecade = c.Layout.PixelsPerDecade
	return z
}

// Package cli implements the voyager command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/buildinfo"
	"github.com/matzehuels/voyager/pkg/cache"
	"github.com/matzehuels/voyager/pkg/config"
	"github.com/matzehuels/voyager/pkg/observability"
	"github.com/matzehuels/voyager/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "voyager"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the voyager.toml to load. Empty means config.DefaultFile.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Voyager builds a scroll-driven journey from people to stars",
		Long:         `Voyager lays out bodies of every size along a logarithmic scroll axis and renders a page whose zoom follows the reader's scroll position.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(observability.LogPipelineHooks{Logger: c.Logger})
			observability.SetCacheHooks(observability.LogPipelineHooks{Logger: c.Logger})
			observability.SetHTTPHooks(observability.LogHTTPHooks{Logger: c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", "", "config file (default: "+config.DefaultFile+")")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file and applies the data directory
// argument, if any.
func (c *CLI) loadConfig(args []string) (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if len(args) > 0 && args[0] != "" {
		cfg.DataDir = args[0]
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	if n, ok := cch.(*cache.NullCache); ok {
		c.Logger.Debug("caching disabled", "reason", n.Reason)
	}
	var keyer cache.Keyer
	if cfg.Cache.Backend == config.BackendRedis {
		// A shared store holds several sites; scope keys by base path.
		keyer = cache.NewScopedKeyer(nil, "site:"+cfg.BasePath+":")
	}
	return pipeline.NewRunner(cch, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewDisabledCache("--no-cache"), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewDisabledCache("backend none"), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.Redis)
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewDisabledCache("no cache directory"), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// newSource opens the configured body source. The returned close function
// must be called when the source is no longer needed.
func (c *CLI) newSource(ctx context.Context, cfg config.Config) (body.Source, *cache.SourceKeyOpts, func(), error) {
	if cfg.Source.Kind != config.SourceMongo {
		return body.DirSource{Dir: cfg.DataDir, Logger: c.Logger}, nil, func() {}, nil
	}

	src, disconnect, err := body.ConnectMongo(ctx, cfg.Source.Mongo, c.Logger)
	if err != nil {
		return nil, nil, nil, err
	}
	key := &cache.SourceKeyOpts{
		Kind:     config.SourceMongo,
		Locator:  cfg.Source.Mongo.URI,
		Database: cfg.Source.Mongo.Database,
		Table:    cfg.Source.Mongo.Collection,
	}
	closeFn := func() {
		if err := disconnect(context.Background()); err != nil {
			c.Logger.Warn("disconnect mongo", "err", err)
		}
	}
	return src, key, closeFn, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/voyager/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions maps the configuration onto pipeline options.
func pipelineOptions(cfg config.Config, src body.Source, key *cache.SourceKeyOpts) pipeline.Options {
	return pipeline.Options{
		Source:    src,
		SourceKey: key,
		Layout:    cfg.Layout,
		BasePath:  cfg.BasePath,
		Title:     cfg.Page.Title,
		Subtitle:  cfg.Page.Subtitle,
		Footer:    cfg.Page.Footer,
		RawText:   cfg.Page.RawText,
		Wasm:      cfg.Page.Wasm,
		Zoom:      cfg.ZoomConfig(),
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

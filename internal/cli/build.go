package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/voyager/pkg/config"
	"github.com/matzehuels/voyager/pkg/pipeline"
)

// buildFlags holds the flags shared by build and serve.
type buildFlags struct {
	output   string
	formats  string
	basePath string
	noCache  bool
	refresh  bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory (default: "+config.DefaultOutDir+")")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): html, fragment, bodies, layout, manifest (comma-separated, default: all)")
	cmd.Flags().StringVar(&f.basePath, "base-path", "", "URL path the site is served under (default: /)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "reload bodies from a remote source, ignoring cached copies")
}

// apply overrides configuration values with explicitly set flags.
func (f *buildFlags) apply(cfg *config.Config) error {
	if f.output != "" {
		cfg.OutDir = f.output
	}
	if f.basePath != "" {
		cfg.BasePath = f.basePath
	}
	return cfg.Validate()
}

// buildCommand creates the build command that writes the static site.
func (c *CLI) buildCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build [data-dir]",
		Short: "Build the static site from a body directory",
		Long: `Build the static site from a body directory.

Each subdirectory of the data directory is one body, described by data.json,
data.yaml or data.toml, with an optional README.md and image.png or image.jpg.
With source.kind = "mongo" in voyager.toml, bodies are read from MongoDB
instead and the data directory only supplies images.

Outputs are written to the output directory:
  index.html      the full page with the zoom runtime loader
  fragment.html   header, facts and footer without the document shell
  bodies.json     every body, sorted by radius
  layout.json     sections and boosts with their positions
  manifest.json   build id and counts
  bodies/         copied body images

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}
			if err := flags.apply(&cfg); err != nil {
				return err
			}
			formats := parseFormats(flags.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			_, err = c.runBuild(cmd.Context(), cfg, formats, flags)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// runBuild executes the pipeline and writes every artifact to cfg.OutDir.
func (c *CLI) runBuild(ctx context.Context, cfg config.Config, formats []string, flags buildFlags) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, key, closeSource, err := c.newSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer closeSource()

	opts := pipelineOptions(cfg, src, key)
	opts.Formats = formats
	opts.Refresh = flags.refresh
	opts.ImageSrc = cfg.DataDir
	opts.ImageDest = filepath.Join(cfg.OutDir, "bodies")
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Building site...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return nil, err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	prog := newProgress(c.Logger)
	paths, err := writeArtifacts(cfg.OutDir, result.Artifacts)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	printSuccess("Build complete")
	for _, p := range paths {
		printFile(p)
	}
	if n := len(result.Images); n > 0 {
		printFile(fmt.Sprintf("%s (%d images)", opts.ImageDest, n))
	}
	printStats(result.Stats, buildStages(result.CacheInfo)...)
	printBuild(result)
	printNewline()
	printNextStep("Preview", appName+" serve "+cfg.DataDir)

	return result, nil
}

// writeArtifacts writes each artifact to dir under its format's file name,
// in format order, and returns the written paths.
func writeArtifacts(dir string, artifacts map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	var paths []string
	for _, format := range pipeline.AllFormats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(dir, pipeline.FileName(format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

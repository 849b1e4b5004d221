package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/voyager/pkg/config"
	"github.com/matzehuels/voyager/pkg/layout"
	"github.com/matzehuels/voyager/pkg/pipeline"
	"github.com/matzehuels/voyager/pkg/render"
)

// layoutCommand creates the layout command for inspecting the composed layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		ppd     float64
		merge   float64
	)

	cmd := &cobra.Command{
		Use:   "layout [data-dir]",
		Short: "Compose and print the section layout",
		Long: `Compose and print the section layout.

The layout command loads the bodies, groups them into sections along the
logarithmic scroll axis, inserts boosts into long gaps and prints the result
as a table. With -o the layout is also written as JSON (the same format as
layout.json in a build).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}
			if ppd != 0 {
				cfg.Layout.PixelsPerDecade = ppd
			}
			if merge != 0 {
				cfg.Layout.MergeThreshold = merge
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cfg, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&ppd, "pixels-per-decade", 0, "scroll distance per factor of ten in radius")
	cmd.Flags().Float64Var(&merge, "merge-threshold", 0, "minimum distance between sections")

	return cmd
}

// runLayout loads the bodies, composes the layout and prints it.
func (c *CLI) runLayout(ctx context.Context, cfg config.Config, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, key, closeSource, err := c.newSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer closeSource()

	opts := pipelineOptions(cfg, src, key)
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Loading bodies...")
	spinner.Start()

	bodies, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return fmt.Errorf("load: %w", err)
	}
	spinner.SetMessage("Composing layout...")
	l, cacheHit, err := runner.ComposeWithCacheInfo(ctx, bodies, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compose layout: %w", err)
	}
	spinner.StopWithSuccess(fmt.Sprintf("Composed %s", plural(len(l.Sections()), "section", "sections")))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	fmt.Fprintln(stdout, layoutTable(l))

	if output != "" {
		data, err := layout.Marshal(l)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
	}

	printKeyValue("Height", fmt.Sprintf("%.0fpx", l.Height))
	printStats(pipeline.Stats{
		BodyCount:    len(bodies),
		SectionCount: len(l.Sections()),
		BoostCount:   l.BoostCount(),
	}, stageStatus{"layout", cacheHit})
	return nil
}

// layoutTable renders one row per layout item.
func layoutTable(l layout.Layout) string {
	rows := make([][]string, 0, len(l.Items))
	for _, it := range l.Items {
		layout.Visit(it,
			func(s layout.Section) {
				names := make([]string, len(s.Bodies))
				for i, b := range s.Bodies {
					names[i] = fmt.Sprintf("%s (%s km)", b.Name, render.FormatRadius(b.Radius))
				}
				rows = append(rows, []string{"section", fmt.Sprintf("%.0f", s.Top), strings.Join(names, ", ")})
			},
			func(b layout.Boost) {
				rows = append(rows, []string{"boost", fmt.Sprintf("%.0f", b.Top), ""})
			},
		)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Item", "Top", "Bodies").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case rows[row][0] == "boost":
				return lipgloss.NewStyle().Foreground(colorDim)
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

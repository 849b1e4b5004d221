package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/pipeline"
)

// stdout receives all status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleHit         = lipgloss.NewStyle().Foreground(colorGreen)
	styleMiss        = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status lines
// =============================================================================

func printLine(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(stdout, icon.Render(glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printLine(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printLine(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(StyleWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(styleMiss, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// PrintError reports a command failure on w. Coded errors print their
// message with the code on a second line; other errors print as-is.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
	if code := errors.GetCode(err); code != "" {
		fmt.Fprintln(w, "  "+StyleDim.Render("code: "+string(code)))
	}
}

// =============================================================================
// Pipeline summaries
// =============================================================================

// printStats prints the content counts and the cache state of each stage
// that ran, e.g. "4 bodies · 3 sections · 1 boost · layout cached".
func printStats(stats pipeline.Stats, stages ...stageStatus) {
	var parts []string
	if stats.BodyCount > 0 {
		parts = append(parts, StyleDim.Render(plural(stats.BodyCount, "body", "bodies")))
	}
	if stats.SectionCount > 0 {
		parts = append(parts, StyleDim.Render(plural(stats.SectionCount, "section", "sections")))
	}
	if stats.BoostCount > 0 {
		parts = append(parts, StyleDim.Render(plural(stats.BoostCount, "boost", "boosts")))
	}
	for _, s := range stages {
		parts = append(parts, s.render())
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// stageStatus is the cache outcome of one pipeline stage.
type stageStatus struct {
	name string
	hit  bool
}

func (s stageStatus) render() string {
	if s.hit {
		return StyleDim.Render(s.name+" ") + styleHit.Render("cached")
	}
	return StyleDim.Render(s.name+" ") + styleMiss.Render("fresh")
}

// buildStages lists the stages of a full build. Bodies from a local
// directory are never cached, so load appears only when it hit.
func buildStages(ci pipeline.CacheInfo) []stageStatus {
	var out []stageStatus
	if ci.LoadHit {
		out = append(out, stageStatus{"load", true})
	}
	return append(out,
		stageStatus{"layout", ci.LayoutHit},
		stageStatus{"render", ci.RenderHit},
	)
}

// printBuild prints the build id and stage timings of a pipeline run.
func printBuild(r *pipeline.Result) {
	printKeyValue("Build", r.BuildID)
	printKeyValue("Height", fmt.Sprintf("%.0fpx", r.Stats.Height))
	printKeyValue("Timing", fmt.Sprintf("load %s · layout %s · render %s",
		r.Stats.LoadTime.Round(time.Millisecond),
		r.Stats.LayoutTime.Round(time.Millisecond),
		r.Stats.RenderTime.Round(time.Millisecond)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

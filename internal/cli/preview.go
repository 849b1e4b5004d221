package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/config"
	"github.com/matzehuels/voyager/pkg/layout"
	"github.com/matzehuels/voyager/pkg/render"
	"github.com/matzehuels/voyager/pkg/zoom"
)

// Virtual page geometry, in CSS pixels.
const (
	previewHeader   = 200
	previewViewport = 900
	previewStep     = 40
	previewFrame    = time.Second / 60
	previewBarWidth = 48
)

var (
	previewBarStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	previewAstroStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// previewCommand creates the preview command that scrolls the site in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [data-dir]",
		Short: "Scroll through the bodies in the terminal",
		Long: `Scroll through the bodies in the terminal.

The preview drives the same zoom engine as the browser runtime. Scrolling
moves through a virtual page; each visible body is drawn as a bar whose
length follows its on-screen diameter.

Keys: ↑/k ↓/j scroll, pgup/pgdn page, g/G jump to start/end, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(args)
			if err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, cfg config.Config, noCache bool) error {
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

	bodies, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	l, err := runner.Compose(ctx, bodies, opts)
	if err != nil {
		return fmt.Errorf("compose layout: %w", err)
	}

	m, err := newPreviewModel(bodies, l, cfg.ZoomConfig())
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// previewPage - zoom.Page backed by terminal state
// =============================================================================

// previewPage hosts the zoom engine. Frames requested by the engine are
// queued and handed to bubbletea as ticks.
type previewPage struct {
	scrollY     float64
	factsHeight float64
	onScroll    func()
	frames      []func()
	placed      map[string]zoom.Footprint
}

func newPreviewPage() *previewPage {
	return &previewPage{placed: make(map[string]zoom.Footprint)}
}

func (p *previewPage) ScrollY() float64          { return p.scrollY }
func (p *previewPage) HeaderHeight() float64     { return previewHeader }
func (p *previewPage) ViewportHeight() float64   { return previewViewport }
func (p *previewPage) SetFactsHeight(px float64) { p.factsHeight = px }
func (p *previewPage) RequestFrame(frame func()) { p.frames = append(p.frames, frame) }
func (p *previewPage) OnScroll(handler func())   { p.onScroll = handler }

func (p *previewPage) CreateBodyElements(bodies []body.Body) (map[string]zoom.Element, error) {
	elements := make(map[string]zoom.Element, len(bodies))
	for _, b := range bodies {
		id := b.ID
		elements[id] = zoom.ElementFunc{
			OnHide:  func() { delete(p.placed, id) },
			OnPlace: func(f zoom.Footprint) { p.placed[id] = f },
		}
	}
	return elements, nil
}

// maxScroll is the largest offset the virtual page can scroll to.
func (p *previewPage) maxScroll() float64 {
	return math.Max(0, previewHeader+p.factsHeight-previewViewport)
}

// scrollTo moves the page and fires the scroll handler.
func (p *previewPage) scrollTo(y float64) {
	p.scrollY = math.Min(math.Max(0, y), p.maxScroll())
	if p.onScroll != nil {
		p.onScroll()
	}
}

// takeFrames removes and returns the queued frames.
func (p *previewPage) takeFrames() []func() {
	frames := p.frames
	p.frames = nil
	return frames
}

// =============================================================================
// previewModel - bubbletea model
// =============================================================================

type frameMsg struct{ frames []func() }

type previewModel struct {
	page     *previewPage
	scene    *zoom.Scene
	bodies   []body.Body
	sections []layout.Section
	height   int
}

func newPreviewModel(bodies []body.Body, l layout.Layout, cfg zoom.Config) (previewModel, error) {
	page := newPreviewPage()
	scene, err := zoom.Run(page, bodies, cfg)
	if err != nil {
		return previewModel{}, err
	}
	return previewModel{
		page:     page,
		scene:    scene,
		bodies:   scene.Engine().Bodies(),
		sections: l.Sections(),
		height:   24,
	}, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "down", "j":
			m.page.scrollTo(m.page.scrollY + previewStep)
		case "up", "k":
			m.page.scrollTo(m.page.scrollY - previewStep)
		case "pgdown", " ":
			m.page.scrollTo(m.page.scrollY + previewViewport)
		case "pgup":
			m.page.scrollTo(m.page.scrollY - previewViewport)
		case "g", "home":
			m.page.scrollTo(0)
		case "G", "end":
			m.page.scrollTo(m.page.maxScroll())
		}
		return m, m.scheduleFrames()
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.page.scrollTo(m.page.scrollY + previewStep)
		case tea.MouseButtonWheelUp:
			m.page.scrollTo(m.page.scrollY - previewStep)
		}
		return m, m.scheduleFrames()
	case frameMsg:
		for _, f := range msg.frames {
			f()
		}
		return m, m.scheduleFrames()
	case tea.WindowSizeMsg:
		m.height = msg.Height
	}
	return m, nil
}

// scheduleFrames turns queued animation frames into a tick.
func (m previewModel) scheduleFrames() tea.Cmd {
	frames := m.page.takeFrames()
	if len(frames) == 0 {
		return nil
	}
	return tea.Tick(previewFrame, func(time.Time) tea.Msg { return frameMsg{frames: frames} })
}

// currentSection returns the last section whose top has scrolled past the
// header, or nil before the first one.
func (m previewModel) currentSection() *layout.Section {
	offset := m.page.scrollY - previewHeader
	var cur *layout.Section
	for i := range m.sections {
		if m.sections[i].Top > offset {
			break
		}
		cur = &m.sections[i]
	}
	return cur
}

func (m previewModel) View() string {
	var b strings.Builder
	frame := m.scene.Last()

	b.WriteString(StyleTitle.Render(render.DefaultTitle))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ scroll  pgup/pgdn page  g/G start/end  q quit"))
	b.WriteString("\n\n")

	line := func(key, value string) {
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Width(10).Render(key))
		b.WriteString(" " + StyleValue.Render(value) + "\n")
	}
	line("Scroll", fmt.Sprintf("%.0f / %.0f px", m.page.scrollY, m.page.maxScroll()))
	line("Progress", fmt.Sprintf("%.1f%%", frame.Percent))
	line("Zoom", fmt.Sprintf("10^%.2f", frame.ZoomExp))
	line("Visible", fmt.Sprintf("%d of %d", frame.Visible, len(m.bodies)))
	b.WriteString("\n")

	rows := 0
	maxRows := max(1, m.height-12)
	for _, bd := range m.bodies {
		fp, ok := m.page.placed[bd.ID]
		if !ok {
			continue
		}
		if rows == maxRows {
			b.WriteString(StyleDim.Render("  …") + "\n")
			break
		}
		width := int(math.Round(fp.Diameter / m.scene.Engine().Config().MaxVisibleSize * previewBarWidth))
		style := previewBarStyle
		if bd.IsAstronaut {
			style = previewAstroStyle
		}
		bar := style.Render(strings.Repeat("█", max(1, width)))
		b.WriteString(fmt.Sprintf("  %-16s %s %s\n", bd.Name, bar, StyleDim.Render(fmt.Sprintf("%.0fpx", fp.Diameter))))
		rows++
	}
	if rows == 0 {
		b.WriteString(StyleDim.Render("  (nothing in view)") + "\n")
	}

	if s := m.currentSection(); s != nil {
		names := make([]string, len(s.Bodies))
		for i, bd := range s.Bodies {
			names[i] = bd.Name
		}
		b.WriteString("\n" + StyleHighlight.Render("Now reading: ") + strings.Join(names, ", ") + "\n")
	}
	return b.String()
}

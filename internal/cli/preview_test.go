package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/layout"
	"github.com/matzehuels/voyager/pkg/zoom"
)

func previewBodies() []body.Body {
	return []body.Body{
		{ID: "armstrong", Name: "Armstrong", Radius: 0.0009, IsAstronaut: true},
		{ID: "moon", Name: "Moon", Radius: 1737.4},
		{ID: "earth", Name: "Earth", Radius: 6371},
		{ID: "sun", Name: "Sun", Radius: 696340},
	}
}

func newTestPreview(t *testing.T) previewModel {
	t.Helper()
	bodies := previewBodies()
	l, err := layout.Compose(bodies, layout.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	m, err := newPreviewModel(bodies, l, zoom.DefaultConfig())
	if err != nil {
		t.Fatalf("newPreviewModel() error: %v", err)
	}
	return m
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends a key and runs the frame it schedules, if any.
func press(t *testing.T, m previewModel, key string) previewModel {
	t.Helper()
	next, cmd := m.Update(keyMsg(key))
	m = next.(previewModel)
	if cmd == nil {
		return m
	}
	msg, ok := cmd().(frameMsg)
	if !ok {
		t.Fatalf("%s: command did not produce a frame", key)
	}
	next, _ = m.Update(msg)
	return next.(previewModel)
}

func TestPreviewInitialFrame(t *testing.T) {
	m := newTestPreview(t)

	if m.page.factsHeight != m.scene.TotalHeight() {
		t.Errorf("factsHeight = %v, want %v", m.page.factsHeight, m.scene.TotalHeight())
	}
	if got := m.scene.Last().Percent; got != 0 {
		t.Errorf("initial Percent = %v, want 0", got)
	}
	if m.page.onScroll == nil {
		t.Error("scroll handler not registered")
	}
}

func TestPreviewScrollRunsFrame(t *testing.T) {
	m := newTestPreview(t)

	m = press(t, m, "G")
	if m.page.scrollY != m.page.maxScroll() {
		t.Errorf("scrollY = %v, want %v", m.page.scrollY, m.page.maxScroll())
	}
	if got := m.scene.Last().Percent; got <= 0 {
		t.Errorf("Percent after G = %v, want > 0", got)
	}

	m = press(t, m, "g")
	if m.page.scrollY != 0 {
		t.Errorf("scrollY after g = %v, want 0", m.page.scrollY)
	}
	if got := m.scene.Last().Percent; got != 0 {
		t.Errorf("Percent after g = %v, want 0", got)
	}
}

func TestPreviewScrollClamped(t *testing.T) {
	m := newTestPreview(t)

	m = press(t, m, "up")
	if m.page.scrollY != 0 {
		t.Errorf("scrollY = %v, want 0 (clamped)", m.page.scrollY)
	}
	m = press(t, m, "down")
	if m.page.scrollY != previewStep {
		t.Errorf("scrollY = %v, want %v", m.page.scrollY, previewStep)
	}
}

func TestPreviewFramesCoalesce(t *testing.T) {
	m := newTestPreview(t)

	// Scrolls before the frame fires share one frame.
	var cmds []tea.Cmd
	for i := 0; i < 3; i++ {
		next, cmd := m.Update(keyMsg("pgdown"))
		m = next.(previewModel)
		cmds = append(cmds, cmd)
	}
	if cmds[0] == nil || cmds[1] != nil || cmds[2] != nil {
		t.Fatalf("frame commands = %v, want only the first set", cmds)
	}

	msg := cmds[0]().(frameMsg)
	if len(msg.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(msg.frames))
	}
	next, _ := m.Update(msg)
	m = next.(previewModel)

	want := m.scene.ScrollPercent(m.page.scrollY, previewHeader)
	if got := m.scene.Last().Percent; got != want || got <= 0 {
		t.Errorf("Percent = %v, want %v (latest offset)", got, want)
	}
}

func TestPreviewView(t *testing.T) {
	m := newTestPreview(t)
	view := m.View()

	for _, want := range []string{"Progress", "Zoom", "Visible"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestPreviewQuit(t *testing.T) {
	m := newTestPreview(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

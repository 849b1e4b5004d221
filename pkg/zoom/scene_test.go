package zoom

import (
	"math"
	"testing"
)

func newTestScene(t *testing.T, radii []float64, tail float64) (*Scene, map[string]*fakeElement) {
	t.Helper()
	bodies := testBodies(radii...)
	e, err := New(bodies, Config{PixelsPerDecade: 100})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	elements, fakes := fakeElements(bodies)
	s, err := e.Bind(elements, tail)
	if err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	return s, fakes
}

func TestScrollPercent(t *testing.T) {
	s, _ := newTestScene(t, []float64{1, 10, 10000}, 200)

	tests := []struct {
		name    string
		scrollY float64
		header  float64
		want    float64
	}{
		{"top of page", 0, 50, 0},
		{"inside header", 30, 50, 0},
		{"header bottom", 50, 50, 0},
		{"quarter", 150, 50, 25},
		{"end of animation", 450, 50, 100},
		{"into tail", 550, 50, 125},
		{"end of tail", 650, 50, 150},
		{"past tail is clamped", 5000, 50, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ScrollPercent(tt.scrollY, tt.header); math.Abs(got-tt.want) > eps {
				t.Errorf("ScrollPercent(%v, %v) = %v, want %v", tt.scrollY, tt.header, got, tt.want)
			}
		})
	}
}

func TestScrollPercentMonotonic(t *testing.T) {
	s, _ := newTestScene(t, []float64{0.0017, 6371, 696340}, 900)
	upper := 100 * (1 + s.TailHeight()/s.Engine().AnimatedHeight())

	prev := -1.0
	for y := -100.0; y < s.TotalHeight()+2000; y += 37 {
		p := s.ScrollPercent(y, 120)
		if p < prev {
			t.Fatalf("ScrollPercent(%v) = %v, decreased from %v", y, p, prev)
		}
		if p < 0 || p > upper+eps {
			t.Fatalf("ScrollPercent(%v) = %v, outside [0, %v]", y, p, upper)
		}
		prev = p
	}
	if math.Abs(prev-upper) > eps {
		t.Errorf("final percent = %v, want %v", prev, upper)
	}
}

func TestScrollPercentZeroRange(t *testing.T) {
	s, _ := newTestScene(t, []float64{5, 5}, 300)
	for _, y := range []float64{0, 100, 10000} {
		if got := s.ScrollPercent(y, 0); got != 0 {
			t.Errorf("ScrollPercent(%v) = %v, want 0 for zero-range axis", y, got)
		}
	}
}

func TestUpdate(t *testing.T) {
	// ZoomMin draws radius 1 at 150px, ZoomMax draws radius 10000 at 150px,
	// the midpoint draws radius 100 at 150px.
	s, fakes := newTestScene(t, []float64{1, 100, 10000}, 0)

	tests := []struct {
		percent float64
		visible string
	}{
		{0, "a"},
		{50, "b"},
		{100, "c"},
	}

	for _, tt := range tests {
		f := s.Update(tt.percent)
		if f.Visible != 1 {
			t.Errorf("Update(%v).Visible = %d, want 1", tt.percent, f.Visible)
		}
		for id, el := range fakes {
			wantVisible := id == tt.visible
			if el.hidden == wantVisible {
				t.Errorf("Update(%v): body %s hidden = %v", tt.percent, id, el.hidden)
			}
		}
		fp := fakes[tt.visible].footprint
		if math.Abs(fp.Radius-150) > 1e-6 || math.Abs(fp.Diameter-300) > 1e-6 {
			t.Errorf("Update(%v): body %s footprint = %+v, want radius 150", tt.percent, tt.visible, fp)
		}
		if s.Last() != f {
			t.Errorf("Last() = %+v, want %+v", s.Last(), f)
		}
	}
}

func TestUpdateTailOvershoot(t *testing.T) {
	s, _ := newTestScene(t, []float64{1, 10000}, 400)
	end := s.Update(100)
	tail := s.Update(150)
	if !(tail.ZoomExp < end.ZoomExp) {
		t.Errorf("tail ZoomExp = %v, want below %v", tail.ZoomExp, end.ZoomExp)
	}
	if !(tail.ZoomFactor < end.ZoomFactor) {
		t.Errorf("tail ZoomFactor = %v, want below %v", tail.ZoomFactor, end.ZoomFactor)
	}
}

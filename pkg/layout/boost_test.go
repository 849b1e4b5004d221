package layout

import (
	"testing"
)

func tops(items []Item) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Position()
	}
	return out
}

func kinds(items []Item) []Kind {
	out := make([]Kind, len(items))
	for i, it := range items {
		out[i] = it.Kind()
	}
	return out
}

func TestInsertBoosts(t *testing.T) {
	tests := []struct {
		name      string
		tops      []float64
		step      float64
		wantTops  []float64
		wantKinds []Kind
	}{
		{
			name:      "no sections",
			tops:      nil,
			step:      100,
			wantTops:  []float64{},
			wantKinds: []Kind{},
		},
		{
			name:      "single section",
			tops:      []float64{0},
			step:      100,
			wantTops:  []float64{0},
			wantKinds: []Kind{KindSection},
		},
		{
			name:      "gap below two steps",
			tops:      []float64{0, 199},
			step:      100,
			wantTops:  []float64{0, 199},
			wantKinds: []Kind{KindSection, KindSection},
		},
		{
			name:      "gap of exactly two steps",
			tops:      []float64{0, 200},
			step:      100,
			wantTops:  []float64{0, 100, 200},
			wantKinds: []Kind{KindSection, KindBoost, KindSection},
		},
		{
			name:      "three steps",
			tops:      []float64{100, 400},
			step:      100,
			wantTops:  []float64{100, 200, 300, 400},
			wantKinds: []Kind{KindSection, KindBoost, KindBoost, KindSection},
		},
		{
			name:      "partial step ignored",
			tops:      []float64{0, 350},
			step:      100,
			wantTops:  []float64{0, 100, 200, 350},
			wantKinds: []Kind{KindSection, KindBoost, KindBoost, KindSection},
		},
		{
			name:      "multiple gaps",
			tops:      []float64{0, 50, 300, 330},
			step:      100,
			wantTops:  []float64{0, 50, 150, 300, 330},
			wantKinds: []Kind{KindSection, KindSection, KindBoost, KindSection, KindSection},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := make([]Section, len(tt.tops))
			for i, top := range tt.tops {
				sections[i] = Section{Top: top}
			}

			items := InsertBoosts(sections, tt.step)

			gotTops, gotKinds := tops(items), kinds(items)
			if len(gotTops) != len(tt.wantTops) {
				t.Fatalf("tops = %v, want %v", gotTops, tt.wantTops)
			}
			for i := range gotTops {
				if gotTops[i] != tt.wantTops[i] || gotKinds[i] != tt.wantKinds[i] {
					t.Errorf("item %d = %s@%v, want %s@%v", i, gotKinds[i], gotTops[i], tt.wantKinds[i], tt.wantTops[i])
				}
			}
		})
	}
}

func TestInsertBoostsProperties(t *testing.T) {
	sections := []Section{{Top: 0}, {Top: 120}, {Top: 1234.5}, {Top: 1300}, {Top: 5000}}
	const step = 100.0
	items := InsertBoosts(sections, step)

	if items[0].Kind() != KindSection || items[len(items)-1].Kind() != KindSection {
		t.Fatal("boosts must not lead or trail the layout")
	}

	var prev Section
	boostsSince := 0
	for i, it := range items {
		if i > 0 && it.Position() <= items[i-1].Position() {
			t.Errorf("item %d at %v is not after item %d at %v", i, it.Position(), i-1, items[i-1].Position())
		}
		Visit(it,
			func(s Section) {
				if i > 0 {
					want := BoostCount(s.Top-prev.Top, step)
					if boostsSince != want {
						t.Errorf("between %v and %v: %d boosts, want %d", prev.Top, s.Top, boostsSince, want)
					}
				}
				prev = s
				boostsSince = 0
			},
			func(b Boost) {
				if b.Top <= prev.Top {
					t.Errorf("boost at %v not after section at %v", b.Top, prev.Top)
				}
				boostsSince++
			},
		)
	}
}

func TestBoostCount(t *testing.T) {
	tests := []struct {
		distance, step float64
		want           int
	}{
		{0, 100, 0},
		{99, 100, 0},
		{100, 100, 0},
		{199.9, 100, 0},
		{200, 100, 1},
		{300, 100, 2},
		{1050, 100, 9},
		{300, 0, 0},
	}

	for _, tt := range tests {
		if got := BoostCount(tt.distance, tt.step); got != tt.want {
			t.Errorf("BoostCount(%v, %v) = %d, want %d", tt.distance, tt.step, got, tt.want)
		}
	}
}

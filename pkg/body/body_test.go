package body

import (
	"slices"
	"testing"
)

func TestSort(t *testing.T) {
	bodies := []Body{
		{ID: "sun", Radius: 696340},
		{ID: "armstrong", Radius: 0.0018},
		{ID: "earth", Radius: 6371},
		{ID: "venus", Radius: 6051.8},
		{ID: "twin", Radius: 6371},
	}

	Sort(bodies)

	want := []string{"armstrong", "venus", "earth", "twin", "sun"}
	if got := IDs(bodies); !slices.Equal(got, want) {
		t.Errorf("IDs() after Sort = %v, want %v", got, want)
	}
	if !IsSorted(bodies) {
		t.Error("IsSorted() = false after Sort")
	}
}

func TestIsSorted(t *testing.T) {
	tests := []struct {
		name   string
		bodies []Body
		want   bool
	}{
		{"empty", nil, true},
		{"single", []Body{{Radius: 1}}, true},
		{"ascending", []Body{{Radius: 1}, {Radius: 10}}, true},
		{"equal", []Body{{Radius: 5}, {Radius: 5}}, true},
		{"descending", []Body{{Radius: 10}, {Radius: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSorted(tt.bodies); got != tt.want {
				t.Errorf("IsSorted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRadii(t *testing.T) {
	got := Radii([]Body{{Radius: 1}, {Radius: 10}, {Radius: 10000}})
	if !slices.Equal(got, []float64{1, 10, 10000}) {
		t.Errorf("Radii() = %v", got)
	}
}

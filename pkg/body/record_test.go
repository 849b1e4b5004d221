package body

import (
	"testing"

	"github.com/matzehuels/voyager/pkg/errors"
)

func ptr(f float64) *float64 { return &f }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		rec       record
		want      Body
		wantCode  errors.Code
		wantError bool
	}{
		{
			name: "planet with defaults",
			id:   "earth",
			rec:  record{Radius: ptr(6371)},
			want: Body{ID: "earth", Name: "earth", Radius: 6371, Color: DefaultColor},
		},
		{
			name: "explicit name and color",
			id:   "mars",
			rec:  record{Name: "Mars", Radius: ptr(3389.5), Color: "#c1440e"},
			want: Body{ID: "mars", Name: "Mars", Radius: 3389.5, Color: "#c1440e"},
		},
		{
			name: "astronaut uses height",
			id:   "armstrong",
			rec:  record{Name: "Neil Armstrong", Height: ptr(0.0018)},
			want: Body{ID: "armstrong", Name: "Neil Armstrong", Radius: 0.0018, IsAstronaut: true, Color: DefaultColor},
		},
		{
			name: "zero radius falls back to height",
			id:   "aldrin",
			rec:  record{Radius: ptr(0), Height: ptr(0.0017)},
			want: Body{ID: "aldrin", Name: "aldrin", Radius: 0.0017, IsAstronaut: true, Color: DefaultColor},
		},
		{
			name: "radius wins over height but height still marks astronaut",
			id:   "suited",
			rec:  record{Radius: ptr(0.002), Height: ptr(0.0017)},
			want: Body{ID: "suited", Name: "suited", Radius: 0.002, IsAstronaut: true, Color: DefaultColor},
		},
		{
			name:      "missing radius and height",
			id:        "ghost",
			rec:       record{Name: "Ghost"},
			wantError: true,
			wantCode:  errors.ErrCodeInvalidBody,
		},
		{
			name:      "negative radius",
			id:        "anti",
			rec:       record{Radius: ptr(-5)},
			wantError: true,
			wantCode:  errors.ErrCodeInvalidBody,
		},
		{
			name:      "bad id",
			id:        "Bad Id",
			rec:       record{Radius: ptr(1)},
			wantError: true,
			wantCode:  errors.ErrCodeInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalize(tt.id, tt.rec)
			if tt.wantError {
				if err == nil {
					t.Fatalf("normalize() = %+v, want error", got)
				}
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("normalize() code = %v, want %v", errors.GetCode(err), tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalize() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMongoDocumentRecord(t *testing.T) {
	doc := mongoDocument{ID: "moon", Name: "Moon", Radius: ptr(1737.4), Text: "Earth's moon."}
	b, err := normalize(doc.ID, doc.record())
	if err != nil {
		t.Fatalf("normalize() error: %v", err)
	}
	if b.Name != "Moon" || b.Radius != 1737.4 || b.Text != "Earth's moon." {
		t.Errorf("unexpected body: %+v", b)
	}
}

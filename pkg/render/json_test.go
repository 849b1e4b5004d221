package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/layout"
)

func TestRenderBodiesJSON(t *testing.T) {
	_, bodies := testLayout(t)
	data, err := RenderBodiesJSON(bodies)
	if err != nil {
		t.Fatalf("RenderBodiesJSON() error: %v", err)
	}

	if !strings.HasPrefix(string(data), "[\n  {\n    \"id\": \"astronaut\"") {
		t.Errorf("unexpected indentation:\n%s", data)
	}

	var out []body.Body
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out) != 3 || !out[0].IsAstronaut || out[2].Radius != 10000 {
		t.Errorf("decoded bodies = %+v", out)
	}
	if strings.Contains(string(data), "<script>") {
		t.Error("bodies JSON contains an unescaped script tag")
	}
}

func TestRenderBodiesJSONEmpty(t *testing.T) {
	data, err := RenderBodiesJSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("RenderBodiesJSON(nil) = %s, want []", data)
	}
}

func TestRenderLayoutJSON(t *testing.T) {
	l, bodies := testLayout(t)
	data, err := RenderLayoutJSON(l)
	if err != nil {
		t.Fatalf("RenderLayoutJSON() error: %v", err)
	}

	for _, want := range []string{`"type": "section"`, `"type": "boost"`, `"anchor": "moon"`, `"height": 400`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("layout JSON missing %s", want)
		}
	}

	back, err := layout.Unmarshal(data, bodies)
	if err != nil {
		t.Fatalf("layout.Unmarshal() error: %v", err)
	}
	if len(back.Items) != len(l.Items) || back.BoostCount() != 2 {
		t.Errorf("decoded %d items with %d boosts, want %d with 2", len(back.Items), back.BoostCount(), len(l.Items))
	}
}

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/layout"
)

const fragmentTemplate = `{{define "fragment"}}<header class="header">
  <div class="content">
    <h1>{{.Title}}</h1>
    <h2>{{.Subtitle}}</h2>
  </div>
</header>

<main class="main">
  <div class="content">
    <div id="bodies"></div>
    <div id="facts">
{{- range .Items}}
{{- if .Section}}
      <section style="{{.Style}}" class="section">
{{- range .Facts}}
{{- if .Astronaut}}
        <div class="fact astronaut">
          <div>
            <h2>{{.Name}}</h2>
            height: <strong>{{.Radius}}</strong>
            <div>{{.Text}}</div>
          </div>
        </div>
{{- else}}
        <div class="fact">
          <div class="image">
            <img src="{{.Image}}" alt="{{.Name}}" />
          </div>
          <div>
            <h2>{{.Name}}</h2>
            radius: <strong>{{.Radius}}</strong>
            <div>{{.Text}}</div>
          </div>
        </div>
{{- end}}
{{- end}}
      </section>
{{- else}}
      <div style="{{.Style}}" class="boost">Keep scrolling...</div>
{{- end}}
{{- end}}
    </div>
  </div>
</main>

<footer class="footer">
  <div class="content">{{.Footer}}</div>
</footer>
{{end}}`

const pageTemplate = `<!DOCTYPE html>
<html lang="da">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
{{- if .BuildID}}
  <meta name="voyager-build" content="{{.BuildID}}" />
{{- end}}
  <title>{{.Title}}</title>
  <style>{{.CSS}}</style>
</head>
<body>
{{template "fragment" .}}
<script type="application/json" id="voyager-bodies">{{.BodiesJSON}}</script>
<script type="application/json" id="voyager-config">{{.ConfigJSON}}</script>
<script src="{{.WasmExec}}"></script>
<script>
  const go = new Go();
  WebAssembly.instantiateStreaming(fetch({{.Wasm}}), go.importObject)
    .then((result) => go.run(result.instance));
</script>
</body>
</html>
`

const pageCSS = `
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; background: #05060a; color: #eeeeee; }
.content { max-width: 960px; margin: 0 auto; padding: 0 1rem; }
.header { padding: 4rem 0; }
.main { position: relative; }
#bodies { position: sticky; top: 0; height: 100vh; overflow: hidden; pointer-events: none; }
#bodies .body { position: absolute; display: none; border-radius: 50%; background: #eeeeee; font-size: 0; }
#facts { position: relative; margin-top: -100vh; }
.section, .boost { position: absolute; left: 0; right: 0; }
.fact { display: flex; gap: 1rem; margin-bottom: 2rem; }
.fact .image img { width: 96px; height: 96px; object-fit: cover; border-radius: 50%; }
.boost { text-align: center; opacity: 0.5; }
.footer { padding: 4rem 0; }
`

var templates = template.Must(template.Must(
	template.New("fragment").Parse(fragmentTemplate)).
	New("page").Parse(pageTemplate))

type pageView struct {
	Title      string
	Subtitle   string
	Footer     string
	BuildID    string
	CSS        template.CSS
	BodiesJSON template.JS
	ConfigJSON template.JS
	WasmExec   string
	Wasm       string
	Items      []itemView
}

type itemView struct {
	Section bool
	Style   template.CSS
	Facts   []factView
}

type factView struct {
	Name      string
	Radius    string
	Text      template.HTML
	Image     string
	Astronaut bool
}

// RenderFragment renders the header, the positioned facts and the footer.
func RenderFragment(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	view, err := r.view(l)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "fragment", view); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render fragment")
	}
	return buf.Bytes(), nil
}

// RenderPage renders a complete HTML document: the fragment, the embedded
// body list and the WebAssembly loader.
func RenderPage(l layout.Layout, bodies []body.Body, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	if err := errors.ValidateBasePath(r.basePath); err != nil {
		return nil, err
	}
	if err := ValidateWasm(r.wasm); err != nil {
		return nil, err
	}
	view, err := r.view(l)
	if err != nil {
		return nil, err
	}
	data, err := RenderBodiesJSON(bodies)
	if err != nil {
		return nil, err
	}
	cfg, err := json.Marshal(r.zoom)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "encode zoom config")
	}
	view.CSS = template.CSS(pageCSS)
	view.ConfigJSON = template.JS(cfg)
	view.BodiesJSON = template.JS(data)
	view.WasmExec = r.basePath + "wasm_exec.js"
	view.Wasm = r.basePath + r.wasm

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page", view); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render page")
	}
	return buf.Bytes(), nil
}

func (r renderer) view(l layout.Layout) (pageView, error) {
	v := pageView{
		Title:    r.title,
		Subtitle: r.subtitle,
		Footer:   r.footer,
		BuildID:  r.buildID,
		Items:    make([]itemView, 0, len(l.Items)),
	}
	for _, it := range l.Items {
		switch it := it.(type) {
		case layout.Section:
			iv := itemView{Section: true, Style: topStyle(it.Top)}
			for _, b := range it.Bodies {
				iv.Facts = append(iv.Facts, r.fact(b))
			}
			v.Items = append(v.Items, iv)
		case layout.Boost:
			v.Items = append(v.Items, itemView{Style: topStyle(it.Top)})
		default:
			return pageView{}, errors.New(errors.ErrCodeInternal, "unknown layout item %T", it)
		}
	}
	return v, nil
}

func (r renderer) fact(b body.Body) factView {
	f := factView{
		Name:      b.Name,
		Radius:    FormatRadius(b.Radius),
		Text:      template.HTML(r.sanitize(b.Text)),
		Astronaut: b.IsAstronaut,
	}
	if !b.IsAstronaut {
		f.Image = r.imageURL(b.ID)
	}
	return f
}

func topStyle(top float64) template.CSS {
	return template.CSS(fmt.Sprintf("top:%.2fpx;", top))
}

// FormatRadius formats a radius in km with the shortest exact decimal
// representation.
func FormatRadius(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

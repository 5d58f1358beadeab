// Package embed serves calculators as standalone widgets for iframes.
package embed

import (
	"bytes"
	"html/template"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Formulary/internal/calc"
	"Formulary/internal/formula"
)

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Color normalises a user supplied #rgb or #rrggbb colour, with or without
// the '#', and falls back to def for anything else.
func Color(raw, def string) string {
	raw = strings.TrimSpace(raw)
	if !hexColor.MatchString(raw) {
		return def
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(raw, "#"))
}

var page = template.Must(template.New("widget").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Def.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; padding: 1rem; }
h1 { color: {{.Color}}; font-size: 1.25rem; }
label { display: block; margin: .5rem 0 .25rem; }
input, select { width: 100%; padding: .4rem; box-sizing: border-box; }
button { margin-top: 1rem; background: {{.Color}}; color: #fff; border: 0; padding: .5rem 1rem; border-radius: 4px; }
#result { margin-top: 1rem; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Def.Title}}</h1>
<form id="calc" data-slug="{{.Def.Slug}}">
{{- if .Def.Modes}}
<label for="mode">Mode</label>
<select id="mode" name="mode">{{range .Def.Modes}}<option>{{.}}</option>{{end}}</select>
{{- end}}
{{- range .Def.Fields}}
<label for="{{.Name}}">{{.Label}}{{if .Symbol}} ({{.Symbol}}){{end}}</label>
<input id="{{.Name}}" name="{{.Name}}" placeholder="{{.Hint}}">
{{- if .Units}}
<select name="{{.Name}}_unit">{{$def := .DefaultUnit}}{{range .Units}}<option value="{{.Symbol}}"{{if eq .Symbol $def}} selected{{end}}>{{.Symbol}}</option>{{end}}</select>
{{- end}}
{{- end}}
<button type="submit">Calculate</button>
</form>
<div id="result"></div>
<script>
document.getElementById("calc").addEventListener("submit", async (e) => {
  e.preventDefault();
  const req = {values: {}, units: {}};
  for (const [k, v] of new FormData(e.target)) {
    if (k === "mode") req.mode = v;
    else if (k.endsWith("_unit")) req.units[k.slice(0, -5)] = v;
    else req.values[k] = v;
  }
  const resp = await fetch("/api/tools/" + e.target.dataset.slug + "/calc", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(req)});
  const body = await resp.json();
  document.getElementById("result").textContent = resp.ok
    ? body.outputs.map(o => o.label + ": " + o.formatted + (o.unit ? " " + o.unit : "")).join("\n") + "\n\n" + body.steps.join("\n")
    : body.message;
});
</script>
</body>
</html>
`))

type view struct {
	Def   formula.Definition
	Color template.CSS
}

type Handler struct {
	Registry *calc.Registry
	Log      *zap.Logger
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/embed/{slug}", h.Widget).Methods(http.MethodGet)
}

func (h *Handler) Widget(w http.ResponseWriter, r *http.Request) {
	d, ok := h.Registry.Lookup(mux.Vars(r)["slug"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	color := Color(r.URL.Query().Get("color"), d.Color)

	var buf bytes.Buffer
	if err := page.Execute(&buf, view{Def: d, Color: template.CSS(color)}); err != nil {
		h.Log.Error("render widget", zap.String("slug", d.Slug), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

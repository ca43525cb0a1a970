// Package editor serves a small local web UI for laying out card fields:
// a live preview rendered through the compositor, plus endpoints to add,
// move, and delete fields and to save the layout JSON.
package editor

import (
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"cardpress/internal/layout"
	"cardpress/internal/record"
	"cardpress/internal/units"
)

// Server owns the working copy of one layout. All mutation goes through
// its handlers under the mutex; the layout on disk changes only on save.
type Server struct {
	mu     sync.Mutex
	Layout *layout.Layout
	Path   string
	DPI    int
	Sample record.Record

	drag dragState
	tmpl *template.Template
}

// dragState is the editor's drag machine: idle, or dragging one named
// field from a remembered origin. The origin lets a cancelled drag snap
// the field back.
type dragState struct {
	Active  bool
	Field   string
	OriginX float64
	OriginY float64
}

// New opens the layout at path for editing. A missing file starts an
// empty layout (the batch commands abort instead; the editor is where a
// new layout gets created).
func New(path string, dpi int, sample record.Record) (*Server, error) {
	l, err := layout.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		slog.Info("layout file not found, starting empty", "path", path)
		l = layout.New()
	}
	if dpi <= 0 {
		dpi = units.DefaultDPI
	}
	return &Server{
		Layout: l,
		Path:   path,
		DPI:    dpi,
		Sample: sample,
		tmpl:   template.Must(template.New("editor").Parse(editorPage)),
	}, nil
}

// Routes wires the editor's handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/preview.png", s.handlePreview)
	mux.HandleFunc("/fields", s.handleAddField)
	mux.HandleFunc("/fields/move", s.handleMoveField)
	mux.HandleFunc("/fields/delete", s.handleDeleteField)
	mux.HandleFunc("/drag/start", s.handleDragStart)
	mux.HandleFunc("/drag/end", s.handleDragEnd)
	mux.HandleFunc("/save", s.handleSave)
	return mux
}

const editorPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>cardpress editor</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 4px 8px; }
img { border: 1px solid #888; max-width: 100%; }
form.inline { display: inline; }
</style>
</head>
<body>
<h1>cardpress editor</h1>
<p>{{.Path}}</p>
<img id="preview" src="/preview.png" alt="card preview">
<h2>Fields</h2>
<table>
<tr><th>name</th><th>kind</th><th>x (mm)</th><th>y (mm)</th><th></th></tr>
{{range .Fields}}
<tr>
  <td>{{.Name}}</td><td>{{.Kind}}</td><td>{{.XMM}}</td><td>{{.YMM}}</td>
  <td>
    <form class="inline" method="post" action="/fields/delete">
      <input type="hidden" name="name" value="{{.Name}}">
      <button>delete</button>
    </form>
  </td>
</tr>
{{end}}
</table>
<h2>Add field</h2>
<form method="post" action="/fields">
  name <input name="name">
  kind <select name="kind"><option>text</option><option>image</option><option>qr</option></select>
  x <input name="x_mm" size="4" value="5">
  y <input name="y_mm" size="4" value="5">
  <button>add</button>
</form>
<form method="post" action="/save"><button>save layout</button></form>
<script>
// Drag a field by name: mousedown on its table row starts a drag, the
// preview click commits the new position in card millimeters.
let dragging = null;
document.querySelectorAll("table tr").forEach(function (row) {
  const cell = row.querySelector("td");
  if (!cell) return;
  row.addEventListener("mousedown", function () {
    const name = cell.textContent;
    fetch("/drag/start", {method: "POST", body: new URLSearchParams({name: name})})
      .then(function (r) { if (r.ok) dragging = name; });
  });
});
document.getElementById("preview").addEventListener("click", function (ev) {
  if (!dragging) return;
  const r = ev.target.getBoundingClientRect();
  const xmm = (ev.clientX - r.left) / r.width * 85.60;
  const ymm = (ev.clientY - r.top) / r.height * 53.98;
  fetch("/drag/end", {method: "POST", body: new URLSearchParams({x_mm: xmm.toFixed(2), y_mm: ymm.toFixed(2)})})
    .then(function () { dragging = null; location.reload(); });
});
</script>
</body>
</html>
`

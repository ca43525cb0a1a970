package editor

import (
	"bytes"
	"image/png"
	"net/http"
	"strconv"

	"cardpress/internal/compose"
	"cardpress/internal/layout"
	"cardpress/internal/record"
)

type pageData struct {
	Path   string
	Fields []layout.Field
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	data := pageData{Path: s.Path}
	for _, name := range s.Layout.FieldNames() {
		data.Fields = append(data.Fields, s.Layout.Fields[name])
	}
	s.mu.Unlock()

	w.Header().Set("Cache-Control", "no-store")
	if err := s.tmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handlePreview renders the working layout with the sample record.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	img, err := compose.Render(s.Layout, s.sampleRecord(), s.DPI)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// sampleRecord backs the preview: configured sample values where given,
// otherwise each text field previews as its own name. Callers hold mu.
func (s *Server) sampleRecord() record.Record {
	rec := record.Record{}
	for name, f := range s.Layout.Fields {
		switch f.Kind {
		case layout.KindText:
			rec[name] = name
		case layout.KindQR:
			rec[name] = name
		case layout.KindImage:
			// No sensible placeholder path; stays empty unless sampled.
		}
	}
	for k, v := range s.Sample {
		rec[k] = v
	}
	return rec
}

func (s *Server) handleAddField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	x, errX := strconv.ParseFloat(r.FormValue("x_mm"), 64)
	y, errY := strconv.ParseFloat(r.FormValue("y_mm"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x_mm and y_mm must be numbers", http.StatusBadRequest)
		return
	}

	f := layout.Field{Name: name, XMM: x, YMM: y}
	switch layout.Kind(r.FormValue("kind")) {
	case layout.KindImage:
		f.Kind = layout.KindImage
		f.Image = &layout.ImageStyle{WidthMM: 20, HeightMM: 25}
	case layout.KindQR:
		f.Kind = layout.KindQR
		f.Image = &layout.ImageStyle{WidthMM: 15, HeightMM: 15}
	case layout.KindText, layout.Kind(""):
		f.Kind = layout.KindText
		f.Text = &layout.TextStyle{FontSize: 12, MaxWidthMM: 40}
	default:
		http.Error(w, "unknown field kind", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.Layout.Set(f)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleMoveField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	x, errX := strconv.ParseFloat(r.FormValue("x_mm"), 64)
	y, errY := strconv.ParseFloat(r.FormValue("y_mm"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x_mm and y_mm must be numbers", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	err := s.Layout.Move(r.FormValue("name"), x, y)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.Layout.Delete(r.FormValue("name"))
	s.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDragStart begins a drag of one named field. Starting a second
// drag while one is active is a conflict.
func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag.Active {
		http.Error(w, "drag already in progress", http.StatusConflict)
		return
	}
	f, ok := s.Layout.Fields[name]
	if !ok {
		http.Error(w, "no such field", http.StatusNotFound)
		return
	}
	s.drag = dragState{Active: true, Field: name, OriginX: f.XMM, OriginY: f.YMM}
	w.WriteHeader(http.StatusNoContent)
}

// handleDragEnd commits the dragged field at the released position and
// returns the machine to idle.
func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	x, errX := strconv.ParseFloat(r.FormValue("x_mm"), 64)
	y, errY := strconv.ParseFloat(r.FormValue("y_mm"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x_mm and y_mm must be numbers", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drag.Active {
		http.Error(w, "no drag in progress", http.StatusConflict)
		return
	}
	if err := s.Layout.Move(s.drag.Field, x, y); err != nil {
		// Field deleted mid-drag; drop the drag.
		s.drag = dragState{}
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.drag = dragState{}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	err := s.Layout.Save(s.Path)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

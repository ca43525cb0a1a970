// Package layout defines the card layout model: a set of named field
// placeholders plus an optional background image, persisted as a JSON
// object keyed by field name.
package layout

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Kind discriminates the field variants.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindQR    Kind = "qr"
)

// TextStyle holds the style of a text field.
type TextStyle struct {
	FontPath   string
	FontSize   float64
	Color      [3]uint8
	MaxWidthMM float64
}

// ImageStyle holds the geometry of an image or QR field.
type ImageStyle struct {
	WidthMM        float64
	HeightMM       float64
	BorderRadiusPX int
}

// Field is one placeholder on the card. Exactly one of Text or Image is
// set, matching Kind; consumers switch on Kind and must handle every case.
type Field struct {
	Name  string
	Kind  Kind
	XMM   float64
	YMM   float64
	Text  *TextStyle
	Image *ImageStyle
}

// Layout is a full card design: named fields plus an optional background
// image path and the border style applied to image fields.
type Layout struct {
	Fields          map[string]Field
	BackgroundImage string
	BorderColor     [3]uint8
	BorderWidth     int
}

// Top-level keys that are layout settings, never fields.
var reservedKeys = map[string]bool{
	"background_image": true,
	"border_color":     true,
	"border_width":     true,
}

// DefaultBorderWidth is the image border outline width in pixels.
const DefaultBorderWidth = 2

// New returns an empty layout with default border style.
func New() *Layout {
	return &Layout{
		Fields:      map[string]Field{},
		BorderColor: [3]uint8{255, 255, 255},
		BorderWidth: DefaultBorderWidth,
	}
}

// FieldNames returns the field names in sorted order, so that every
// consumer iterates fields deterministically.
func (l *Layout) FieldNames() []string {
	names := make([]string, 0, len(l.Fields))
	for name := range l.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rawField mirrors the on-disk field schema. Pointer geometry fields
// distinguish "missing" from zero so invalid entries can be dropped.
type rawField struct {
	Type           string    `json:"type,omitempty"`
	XMM            *float64  `json:"x_mm,omitempty"`
	YMM            *float64  `json:"y_mm,omitempty"`
	FontPath       string    `json:"font_path,omitempty"`
	FontSize       float64   `json:"font_size,omitempty"`
	Color          *[3]uint8 `json:"color,omitempty"`
	MaxWidthMM     float64   `json:"max_width_mm,omitempty"`
	WidthMM        float64   `json:"width_mm,omitempty"`
	HeightMM       float64   `json:"height_mm,omitempty"`
	BorderRadiusPX int       `json:"border_radius_px,omitempty"`
}

// Load reads a layout from a JSON config file. Field entries missing
// x_mm or y_mm are dropped with a warning rather than rendered at a
// default position. Unknown keys inside a field entry are ignored.
func Load(path string) (*Layout, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a layout from JSON bytes. See Load.
func Parse(b []byte) (*Layout, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return nil, fmt.Errorf("invalid layout JSON: %w", err)
	}

	l := New()
	for key, raw := range top {
		switch {
		case key == "background_image":
			if err := json.Unmarshal(raw, &l.BackgroundImage); err != nil {
				return nil, fmt.Errorf("invalid background_image: %w", err)
			}
		case key == "border_color":
			if err := json.Unmarshal(raw, &l.BorderColor); err != nil {
				return nil, fmt.Errorf("invalid border_color: %w", err)
			}
		case key == "border_width":
			if err := json.Unmarshal(raw, &l.BorderWidth); err != nil {
				return nil, fmt.Errorf("invalid border_width: %w", err)
			}
		default:
			f, ok := parseField(key, raw)
			if !ok {
				continue
			}
			l.Fields[key] = f
		}
	}
	return l, nil
}

func parseField(name string, raw json.RawMessage) (Field, bool) {
	var rf rawField
	if err := json.Unmarshal(raw, &rf); err != nil {
		slog.Warn("dropping malformed field entry", "field", name, "err", err)
		return Field{}, false
	}
	if rf.XMM == nil || rf.YMM == nil {
		slog.Warn("dropping field without position", "field", name)
		return Field{}, false
	}

	f := Field{Name: name, XMM: *rf.XMM, YMM: *rf.YMM}
	switch Kind(rf.Type) {
	case KindImage:
		f.Kind = KindImage
		f.Image = &ImageStyle{
			WidthMM:        rf.WidthMM,
			HeightMM:       rf.HeightMM,
			BorderRadiusPX: rf.BorderRadiusPX,
		}
	case KindQR:
		f.Kind = KindQR
		f.Image = &ImageStyle{
			WidthMM:        rf.WidthMM,
			HeightMM:       rf.HeightMM,
			BorderRadiusPX: rf.BorderRadiusPX,
		}
	case KindText, Kind(""):
		// Entries without a type are text fields; the original config
		// format predates image fields and never wrote one.
		f.Kind = KindText
		ts := &TextStyle{
			FontPath:   rf.FontPath,
			FontSize:   rf.FontSize,
			MaxWidthMM: rf.MaxWidthMM,
		}
		if rf.Color != nil {
			ts.Color = *rf.Color
		}
		f.Text = ts
	default:
		slog.Warn("dropping field with unknown type", "field", name, "type", rf.Type)
		return Field{}, false
	}
	return f, true
}

// Set adds or replaces a field. Reserved keys are rejected so a field can
// never shadow a layout setting.
func (l *Layout) Set(f Field) error {
	if f.Name == "" {
		return fmt.Errorf("field name must not be empty")
	}
	if reservedKeys[f.Name] {
		return fmt.Errorf("field name %q is reserved", f.Name)
	}
	l.Fields[f.Name] = f
	return nil
}

// Delete removes a field by name.
func (l *Layout) Delete(name string) {
	delete(l.Fields, name)
}

// Move repositions an existing field.
func (l *Layout) Move(name string, xMM, yMM float64) error {
	f, ok := l.Fields[name]
	if !ok {
		return fmt.Errorf("no field named %q", name)
	}
	f.XMM = xMM
	f.YMM = yMM
	l.Fields[name] = f
	return nil
}

// MarshalJSON writes the layout back in the on-disk schema.
func (l *Layout) MarshalJSON() ([]byte, error) {
	top := map[string]any{}
	if l.BackgroundImage != "" {
		top["background_image"] = l.BackgroundImage
	}
	if l.BorderColor != ([3]uint8{255, 255, 255}) {
		top["border_color"] = l.BorderColor
	}
	if l.BorderWidth != DefaultBorderWidth {
		top["border_width"] = l.BorderWidth
	}
	for name, f := range l.Fields {
		rf := rawField{
			Type: string(f.Kind),
			XMM:  &f.XMM,
			YMM:  &f.YMM,
		}
		switch f.Kind {
		case KindText:
			rf.Type = "" // text is the implicit default on disk
			rf.FontPath = f.Text.FontPath
			rf.FontSize = f.Text.FontSize
			rf.MaxWidthMM = f.Text.MaxWidthMM
			c := f.Text.Color
			rf.Color = &c
		case KindImage, KindQR:
			rf.WidthMM = f.Image.WidthMM
			rf.HeightMM = f.Image.HeightMM
			rf.BorderRadiusPX = f.Image.BorderRadiusPX
		}
		top[name] = rf
	}
	return json.MarshalIndent(top, "", "  ")
}

// Save writes the layout atomically: to a temp file in the target
// directory, then renamed over the destination.
func (l *Layout) Save(path string) error {
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".layout-*.json")
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save layout: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save layout: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

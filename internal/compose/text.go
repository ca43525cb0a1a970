package compose

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"cardpress/internal/layout"
	"cardpress/internal/units"
)

var (
	fallbackOnce sync.Once
	fallbackFont *opentype.Font

	faceMu    sync.Mutex
	faceCache = map[faceKey]font.Face{}
)

type faceKey struct {
	path string
	size float64
	dpi  int
}

// drawTextField word-wraps the record value and draws it left-anchored at
// the field position. A font that cannot be loaded falls back to the
// built-in default face; it never aborts the card.
func drawTextField(canvas *image.NRGBA, f layout.Field, value string, dpi int) {
	ts := f.Text
	face, err := loadFace(ts.FontPath, ts.FontSize, dpi)
	if err != nil {
		slog.Warn("font unavailable, using built-in default", "field", f.Name, "font", ts.FontPath, "err", err)
		face = defaultFace(ts.FontSize, dpi)
	}
	if face == nil {
		return
	}

	maxWidth := units.ToPixels(ts.MaxWidthMM, dpi)
	lines := Wrap(face, value, maxWidth)

	x := units.ToPixels(f.XMM, dpi)
	y := units.ToPixels(f.YMM, dpi)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()

	src := image.NewUniform(color.NRGBA{R: ts.Color[0], G: ts.Color[1], B: ts.Color[2], A: 255})
	for i, line := range lines {
		d := &font.Drawer{
			Dst:  canvas,
			Src:  src,
			Face: face,
			Dot:  fixed.P(x, y+ascent+i*lineHeight),
		}
		d.DrawString(line)
	}
}

// Wrap splits s into lines by greedy word wrap: words accumulate while
// the measured line width stays within maxWidth pixels. A single word
// wider than maxWidth is placed alone on its own line. A maxWidth of
// zero or less disables wrapping.
func Wrap(face font.Face, s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// loadFace opens a TrueType/OpenType font file at the given point size
// and render DPI. Faces are cached per (path, size, dpi).
func loadFace(path string, sizePt float64, dpi int) (font.Face, error) {
	if path == "" {
		return nil, fmt.Errorf("no font path configured")
	}
	if sizePt <= 0 {
		sizePt = 12
	}
	key := faceKey{path: path, size: sizePt, dpi: dpi}
	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[key]; ok {
		return face, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fnt, err := opentype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %s: %w", path, err)
	}
	faceCache[key] = face
	return face, nil
}

// defaultFace returns the built-in Go Regular face at the given size.
func defaultFace(sizePt float64, dpi int) font.Face {
	fallbackOnce.Do(func() {
		fnt, err := opentype.Parse(goregular.TTF)
		if err != nil {
			// goregular is compiled in; parse failure means a broken toolchain.
			slog.Error("parse built-in font", "err", err)
			return
		}
		fallbackFont = fnt
	})
	if fallbackFont == nil {
		return nil
	}
	if sizePt <= 0 {
		sizePt = 12
	}
	key := faceKey{path: "", size: sizePt, dpi: dpi}
	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[key]; ok {
		return face
	}
	face, err := opentype.NewFace(fallbackFont, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
	if err != nil {
		slog.Error("built-in font face", "err", err)
		return nil
	}
	faceCache[key] = face
	return face
}

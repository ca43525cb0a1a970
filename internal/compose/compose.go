// Package compose renders one card image from a layout and a data record.
// Per-field problems (missing font, missing image file) degrade to warnings
// and the card still renders; only an unexpected failure aborts the card.
package compose

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	"cardpress/internal/layout"
	"cardpress/internal/record"
	"cardpress/internal/units"
)

// Render composites every layout field onto a fresh card canvas at the
// given DPI. Fields are drawn in sorted-name order so output is
// deterministic; overlapping fields are last-drawn-wins. A panic while
// compositing is converted into an error so a batch can skip just this
// card.
func Render(l *layout.Layout, rec record.Record, dpi int) (out *image.NRGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("render card: %v", r)
		}
	}()

	canvas := Blank(dpi)
	w, h := units.CardSizePixels(dpi)

	if l.BackgroundImage != "" {
		bg, bgErr := imaging.Open(l.BackgroundImage)
		if bgErr != nil {
			slog.Warn("background image unavailable, using white canvas",
				"path", l.BackgroundImage, "err", bgErr)
		} else {
			canvas = imaging.Paste(canvas, imaging.Resize(bg, w, h, imaging.Lanczos), image.Pt(0, 0))
		}
	}

	for _, name := range l.FieldNames() {
		f := l.Fields[name]
		value := rec.Get(name)
		if value == "" {
			continue
		}
		switch f.Kind {
		case layout.KindText:
			drawTextField(canvas, f, value, dpi)
		case layout.KindImage:
			drawImageField(canvas, f, value, l, dpi)
		case layout.KindQR:
			drawQRField(canvas, f, value, l, dpi)
		}
	}
	return canvas, nil
}

// Blank returns a plain white card canvas, used both as the render base
// and as the placeholder for empty grid slots on a sheet.
func Blank(dpi int) *image.NRGBA {
	w, h := units.CardSizePixels(dpi)
	return imaging.New(w, h, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
}

// drawImageField loads the record value as an image path, resizes it to
// the field's pixel size, rounds its corners, outlines it, and pastes it.
// A missing or unreadable file skips the field.
func drawImageField(canvas *image.NRGBA, f layout.Field, path string, l *layout.Layout, dpi int) {
	if _, err := os.Stat(path); err != nil {
		slog.Warn("image file not found, skipping field", "field", f.Name, "path", path)
		return
	}
	img, err := imaging.Open(path)
	if err != nil {
		slog.Warn("cannot decode image, skipping field", "field", f.Name, "path", path, "err", err)
		return
	}
	pasteRounded(canvas, img, f, l, dpi)
}

// drawQRField renders the record value as a QR code sized like an image
// field.
func drawQRField(canvas *image.NRGBA, f layout.Field, value string, l *layout.Layout, dpi int) {
	w := units.ToPixels(f.Image.WidthMM, dpi)
	h := units.ToPixels(f.Image.HeightMM, dpi)
	side := w
	if h > side {
		side = h
	}
	if side <= 0 {
		slog.Warn("qr field has no size, skipping", "field", f.Name)
		return
	}
	q, err := qrcode.New(value, qrcode.Medium)
	if err != nil {
		slog.Warn("cannot encode qr value, skipping field", "field", f.Name, "err", err)
		return
	}
	pasteRounded(canvas, q.Image(side), f, l, dpi)
}

// pasteRounded composites img onto the canvas at the field position with
// rounded corners and a rounded border outline. Pixels outside the mask
// keep the canvas background.
func pasteRounded(canvas *image.NRGBA, img image.Image, f layout.Field, l *layout.Layout, dpi int) {
	w := units.ToPixels(f.Image.WidthMM, dpi)
	h := units.ToPixels(f.Image.HeightMM, dpi)
	if w <= 0 || h <= 0 {
		slog.Warn("image field has no size, skipping", "field", f.Name)
		return
	}
	x := units.ToPixels(f.XMM, dpi)
	y := units.ToPixels(f.YMM, dpi)
	radius := f.Image.BorderRadiusPX

	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	bc := l.BorderColor
	drawRoundedBorder(resized, radius, l.BorderWidth, color.NRGBA{R: bc[0], G: bc[1], B: bc[2], A: 255})

	mask := RoundedMask(w, h, radius)
	pasteMasked(canvas, resized, mask, x, y)
}

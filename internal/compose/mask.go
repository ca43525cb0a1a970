package compose

import (
	"image"
	"image/color"
	"image/draw"
)

// RoundedMask returns an alpha mask for a w×h rounded rectangle with the
// given corner radius in pixels. A radius of zero (or less) yields a
// fully opaque mask; the radius is clamped to half the shorter side.
func RoundedMask(w, h, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if radius < 0 {
		radius = 0
	}
	if m := min(w, h) / 2; radius > m {
		radius = m
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(0)
			if insideRounded(x, y, w, h, radius) {
				a = 255
			}
			mask.SetAlpha(x, y, color.Alpha{A: a})
		}
	}
	return mask
}

// insideRounded reports whether pixel (x, y) lies inside a w×h rounded
// rectangle anchored at the origin.
func insideRounded(x, y, w, h, radius int) bool {
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	if radius <= 0 {
		return true
	}
	// Distance test only applies inside the four corner squares.
	var dx, dy int
	switch {
	case x < radius && y < radius:
		dx, dy = x-radius, y-radius
	case x >= w-radius && y < radius:
		dx, dy = x-(w-radius-1), y-radius
	case x < radius && y >= h-radius:
		dx, dy = x-radius, y-(h-radius-1)
	case x >= w-radius && y >= h-radius:
		dx, dy = x-(w-radius-1), y-(h-radius-1)
	default:
		return true
	}
	return dx*dx+dy*dy <= radius*radius
}

// drawRoundedBorder paints a border outline of the given width directly
// onto img, following the same rounded corners the mask uses. Drawn after
// the image content so the outline stays visible over it.
func drawRoundedBorder(img *image.NRGBA, radius, width int, col color.NRGBA) {
	if width <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if m := min(w, h) / 2; radius > m {
		radius = m
	}
	innerRadius := radius - width
	if innerRadius < 0 {
		innerRadius = 0
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !insideRounded(x, y, w, h, radius) {
				continue
			}
			// Inside the outline but outside the inset interior.
			if !insideRounded(x-width, y-width, w-2*width, h-2*width, innerRadius) {
				img.SetNRGBA(b.Min.X+x, b.Min.Y+y, col)
			}
		}
	}
}

// pasteMasked draws src onto dst at (x, y) through the alpha mask, so
// masked-out pixels keep whatever the canvas already holds.
func pasteMasked(dst *image.NRGBA, src image.Image, mask *image.Alpha, x, y int) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(image.Pt(x, y))
	draw.DrawMask(dst, r, src, src.Bounds().Min, mask, image.Point{}, draw.Over)
}

// Package units holds the physical page and card dimensions and the
// millimeter-to-pixel conversion used everywhere geometry is rasterized.
package units

import "math"

const mmPerInch = 25.4

// ISO/IEC 7810 ID-1 card dimensions in millimeters.
const (
	CardWidthMM  = 85.60
	CardHeightMM = 53.98
)

// A4 page dimensions in millimeters.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

// DefaultDPI is the render resolution used when no DPI is configured.
const DefaultDPI = 300

// ToPixels converts a length in millimeters to pixels at the given DPI,
// rounding half away from zero. Positions and sizes on the same canvas
// must all be converted at the canvas DPI or they drift apart.
func ToPixels(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / mmPerInch))
}

// CardSizePixels returns the ID-1 card canvas size at the given DPI.
func CardSizePixels(dpi int) (w, h int) {
	return ToPixels(CardWidthMM, dpi), ToPixels(CardHeightMM, dpi)
}

// Package sheet tiles rendered card images onto a single A4 PDF page for
// printing: a fixed 2×5 grid, centered by equal margins, with blank
// placeholders filling unused slots.
package sheet

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf/v2"

	"cardpress/internal/compose"
	"cardpress/internal/layout"
	"cardpress/internal/record"
	"cardpress/internal/units"
)

// Grid geometry: 2 columns × 5 rows, 10 cards per sheet.
const (
	GridCols = 2
	GridRows = 5
	Capacity = GridCols * GridRows
)

// Generate renders the first Capacity records of src onto card images and
// assembles them into one A4 PDF at outPath. Rows beyond Capacity are
// ignored; missing rows become blank placeholder cards. A card that fails
// to render is reported and replaced by a blank so the rest of the sheet
// still prints. The transient per-card PNG files are removed regardless
// of whether PDF creation succeeds.
func Generate(l *layout.Layout, src *record.Source, dpi int, outPath string) error {
	tmpDir, err := os.MkdirTemp("", "cardpress-sheet-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	paths := make([]string, 0, Capacity)
	for i := 0; i < Capacity; i++ {
		var img *image.NRGBA
		if i < len(src.Rows) {
			img, err = compose.Render(l, src.Rows[i], dpi)
			if err != nil {
				slog.Error("card failed to render, leaving its slot blank", "row", i, "err", err)
				img = compose.Blank(dpi)
			}
		} else {
			img = compose.Blank(dpi)
		}
		p := filepath.Join(tmpDir, fmt.Sprintf("card_%02d.png", i))
		if err := imaging.Save(img, p); err != nil {
			return fmt.Errorf("write card %d: %w", i, err)
		}
		paths = append(paths, p)
	}

	return Assemble(outPath, paths)
}

// Assemble places up to Capacity card images on one A4 page at their
// exact physical card size. Margins are chosen so the grid is centered:
// equal gaps between cards and between the grid and each page edge.
func Assemble(outPath string, imagePaths []string) error {
	if len(imagePaths) > Capacity {
		imagePaths = imagePaths[:Capacity]
	}

	xMargin := (units.A4WidthMM - units.CardWidthMM*GridCols) / (GridCols + 1)
	yMargin := (units.A4HeightMM - units.CardHeightMM*GridRows) / (GridRows + 1)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	for i, path := range imagePaths {
		row := i / GridCols
		col := i % GridCols
		x := xMargin + float64(col)*(units.CardWidthMM+xMargin)
		y := yMargin + float64(row)*(units.CardHeightMM+yMargin)
		pdf.ImageOptions(path, x, y, units.CardWidthMM, units.CardHeightMM, false, opts, 0, "")
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

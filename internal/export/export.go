// Package export renders every data row to an individual PNG file in an
// output directory, named by row index.
package export

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"cardpress/internal/compose"
	"cardpress/internal/layout"
	"cardpress/internal/record"
)

// ErrNoCommonColumns is returned when the data header and the layout
// share no field names: nothing would render, which is a user error
// rather than an empty batch.
var ErrNoCommonColumns = errors.New("data columns and layout fields have no names in common")

// Run renders one card per data row into outDir as card_000.png,
// card_001.png, ... Only columns present in both the data header and the
// layout are rendered. A row that fails to render is reported and
// skipped; the rest of the batch proceeds. Returns the number of files
// written.
func Run(l *layout.Layout, src *record.Source, dpi int, outDir string) (int, error) {
	common := commonColumns(l, src.Columns)
	if len(common) == 0 {
		return 0, ErrNoCommonColumns
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	written := 0
	for i, row := range src.Rows {
		img, err := renderCommon(l, row, common, dpi)
		if err != nil {
			slog.Error("skipping card", "row", i, "err", err)
			continue
		}
		path := filepath.Join(outDir, fmt.Sprintf("card_%03d.png", i))
		if err := imaging.Save(img, path); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}

func renderCommon(l *layout.Layout, row record.Record, common map[string]bool, dpi int) (*image.NRGBA, error) {
	filtered := record.Record{}
	for col, v := range row {
		if common[col] {
			filtered[col] = v
		}
	}
	return compose.Render(l, filtered, dpi)
}

func commonColumns(l *layout.Layout, columns []string) map[string]bool {
	common := map[string]bool{}
	for _, col := range columns {
		if _, ok := l.Fields[col]; ok {
			common[col] = true
		}
	}
	return common
}

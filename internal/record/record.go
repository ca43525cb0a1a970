// Package record loads tabular data sources: the first row names the
// columns, each following row is one record bound to field names.
package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record is one row of input data, keyed by column name. Values are
// plain text; for image fields the value is a filesystem path.
type Record map[string]string

// Get returns the value for a column, or "" when the column is absent.
func (r Record) Get(name string) string {
	return r[name]
}

// Source is a loaded data file: the header columns and all data rows.
type Source struct {
	Columns []string
	Rows    []Record
}

// Load reads a data source, dispatching on the file extension
// (.xlsx or .csv).
func Load(path string) (*Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported data file %q (want .xlsx or .csv)", path)
	}
}

// LoadCSV reads a CSV data source. Short rows leave trailing columns empty.
func LoadCSV(path string) (*Source, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fromRows(path, rows)
}

// LoadXLSX reads the first sheet of an Excel workbook.
func LoadXLSX(path string) (*Source, error) {
	f, err := excelize.OpenFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fromRows(path, rows)
}

func fromRows(path string, rows [][]string) (*Source, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}
	header := rows[0]
	cols := make([]string, 0, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if h != "" {
			cols = append(cols, h)
		}
	}
	src := &Source{Columns: cols}
	for _, row := range rows[1:] {
		rec := Record{}
		for i, col := range header {
			col = strings.TrimSpace(col)
			if col == "" {
				continue
			}
			if i < len(row) {
				rec[col] = strings.TrimSpace(row[i])
			} else {
				rec[col] = ""
			}
		}
		src.Rows = append(src.Rows, rec)
	}
	return src, nil
}

// WriteTemplate writes an empty XLSX workbook whose header row lists the
// given columns, ready for the user to fill with card data.
func WriteTemplate(path string, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("template needs at least one column")
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("template column %d: %w", i, err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("template column %q: %w", col, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}

package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "name,title\nAlice,Engineer\nBob,Designer\n")
	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(src.Columns) != 2 || src.Columns[0] != "name" || src.Columns[1] != "title" {
		t.Errorf("Columns = %v", src.Columns)
	}
	if len(src.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(src.Rows))
	}
	if src.Rows[0].Get("name") != "Alice" || src.Rows[1].Get("title") != "Designer" {
		t.Errorf("unexpected rows: %v", src.Rows)
	}
}

func TestLoadCSV_ShortRow(t *testing.T) {
	path := writeCSV(t, "name,title\nAlice\n")
	src, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if src.Rows[0].Get("title") != "" {
		t.Errorf("short row should leave trailing columns empty, got %q", src.Rows[0].Get("title"))
	}
}

func TestLoadCSV_NoHeader(t *testing.T) {
	path := writeCSV(t, "")
	if _, err := LoadCSV(path); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := Load("data.txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := map[string]string{
		"A1": "name", "B1": "title",
		"A2": "Alice", "B2": "Engineer",
		"A3": "Bob", "B3": "Designer",
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(src.Columns) != 2 || src.Columns[0] != "name" {
		t.Errorf("Columns = %v", src.Columns)
	}
	if len(src.Rows) != 2 || src.Rows[1].Get("name") != "Bob" {
		t.Errorf("unexpected rows: %v", src.Rows)
	}
}

func TestWriteTemplate_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	if err := WriteTemplate(path, []string{"name", "title", "photo"}); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	src, err := LoadXLSX(path)
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	want := []string{"name", "title", "photo"}
	if len(src.Columns) != len(want) {
		t.Fatalf("Columns = %v, want %v", src.Columns, want)
	}
	for i := range want {
		if src.Columns[i] != want[i] {
			t.Errorf("Columns[%d] = %q, want %q", i, src.Columns[i], want[i])
		}
	}
	if len(src.Rows) != 0 {
		t.Errorf("template should have no data rows, got %d", len(src.Rows))
	}
}

func TestWriteTemplate_NoColumns(t *testing.T) {
	if err := WriteTemplate(filepath.Join(t.TempDir(), "t.xlsx"), nil); err == nil {
		t.Error("expected error for empty column list")
	}
}

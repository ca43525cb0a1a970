package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cardpress/internal/layout"
	"cardpress/internal/record"
)

const testDPI = 96

func nameLayout(t *testing.T) *layout.Layout {
	t.Helper()
	l := layout.New()
	err := l.Set(layout.Field{
		Name: "name", Kind: layout.KindText, XMM: 5, YMM: 5,
		Text: &layout.TextStyle{FontSize: 10, MaxWidthMM: 50},
	})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	return l
}

func TestRun_OneFilePerRow(t *testing.T) {
	l := nameLayout(t)
	rows := make([]record.Record, 12)
	for i := range rows {
		rows[i] = record.Record{"name": fmt.Sprintf("Person %d", i)}
	}
	src := &record.Source{Columns: []string{"name"}, Rows: rows}

	outDir := filepath.Join(t.TempDir(), "cards")
	n, err := Run(l, src, testDPI, outDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 12 {
		t.Errorf("wrote %d files, want 12", n)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 12 {
		t.Fatalf("output dir has %d entries, want 12", len(entries))
	}
	for i := 0; i < 12; i++ {
		want := fmt.Sprintf("card_%03d.png", i)
		if _, err := os.Stat(filepath.Join(outDir, want)); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}
	// Directory export produces no PDF.
	if matches, _ := filepath.Glob(filepath.Join(outDir, "*.pdf")); len(matches) != 0 {
		t.Errorf("unexpected PDF output: %v", matches)
	}
}

func TestRun_NoCommonColumns(t *testing.T) {
	l := nameLayout(t)
	src := &record.Source{
		Columns: []string{"unrelated"},
		Rows:    []record.Record{{"unrelated": "x"}},
	}
	_, err := Run(l, src, testDPI, filepath.Join(t.TempDir(), "cards"))
	if !errors.Is(err, ErrNoCommonColumns) {
		t.Errorf("err = %v, want ErrNoCommonColumns", err)
	}
}

func TestRun_SkipsFailedRow(t *testing.T) {
	l := nameLayout(t)
	// A styleless field panics during render; Run must skip that row only.
	if err := l.Set(layout.Field{Name: "broken", Kind: layout.KindText}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src := &record.Source{
		Columns: []string{"name", "broken"},
		Rows: []record.Record{
			{"name": "Alice"},
			{"name": "Bob", "broken": "boom"},
			{"name": "Carol"},
		},
	}
	outDir := filepath.Join(t.TempDir(), "cards")
	n, err := Run(l, src, testDPI, outDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 2 {
		t.Errorf("wrote %d files, want 2 (bad row skipped)", n)
	}
	if _, err := os.Stat(filepath.Join(outDir, "card_001.png")); err == nil {
		t.Error("failed row should not produce a file")
	}
	if _, err := os.Stat(filepath.Join(outDir, "card_002.png")); err != nil {
		t.Errorf("rows after a failure must still render: %v", err)
	}
}

func TestRun_OnlyCommonColumnsRendered(t *testing.T) {
	l := nameLayout(t)
	// Data has an extra column the layout does not know; it is ignored.
	src := &record.Source{
		Columns: []string{"name", "extra"},
		Rows:    []record.Record{{"name": "Alice", "extra": "ignored"}},
	}
	n, err := Run(l, src, testDPI, filepath.Join(t.TempDir(), "cards"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 {
		t.Errorf("wrote %d files, want 1", n)
	}
}

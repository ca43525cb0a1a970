package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveSettings_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "cardpress.yaml")
	content := "layout: from-file.json\ndpi: 150\n"
	if err := os.WriteFile(settingsPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	root := NewRootCmd()
	if err := root.PersistentFlags().Set("settings", settingsPath); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := root.PersistentFlags().Set("layout", "from-flag.json"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	s, err := resolveSettings(root)
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if s.LayoutPath != "from-flag.json" {
		t.Errorf("LayoutPath = %q, flag should win over file", s.LayoutPath)
	}
	if s.DPI != 150 {
		t.Errorf("DPI = %d, file value should apply when no flag given", s.DPI)
	}
}

func TestLoadInputs_MissingLayoutIsFatal(t *testing.T) {
	root := NewRootCmd()
	dir := t.TempDir()
	if err := root.PersistentFlags().Set("settings", filepath.Join(dir, "none.yaml")); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := root.PersistentFlags().Set("layout", filepath.Join(dir, "missing.json")); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	s, err := resolveSettings(root)
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if _, _, err := loadInputs(s); err == nil {
		t.Error("batch commands must fail on a missing layout file")
	}
}

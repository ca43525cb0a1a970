// Package settings loads the application settings file (cardpress.yaml):
// default paths, render DPI, and the sample record used for editor
// previews.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cardpress/internal/units"
)

// Settings are the file-level defaults; CLI flags override them.
type Settings struct {
	LayoutPath string            `yaml:"layout"`
	DataPath   string            `yaml:"data"`
	OutputPDF  string            `yaml:"output_pdf"`
	OutputDir  string            `yaml:"output_dir"`
	DPI        int               `yaml:"dpi"`
	ListenAddr string            `yaml:"listen"`
	Sample     map[string]string `yaml:"sample"`
}

// Default returns the built-in settings used when no file exists.
func Default() *Settings {
	return &Settings{
		LayoutPath: "layout.json",
		DataPath:   "data.xlsx",
		OutputPDF:  "cards.pdf",
		OutputDir:  "cards",
		DPI:        units.DefaultDPI,
		ListenAddr: "localhost:8808",
	}
}

// Load reads settings from a YAML file. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Settings, error) {
	s := Default()
	b, err := os.ReadFile(filepath.Clean(path))
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if s.DPI <= 0 {
		s.DPI = units.DefaultDPI
	}
	return s, nil
}

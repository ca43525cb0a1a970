package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cardpress/internal/layout"
	"cardpress/internal/record"
	"cardpress/internal/settings"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cardpress",
		Short: "Lay out and batch-generate printable ID cards",
		Long: `Cardpress renders ID-1 sized card images from a JSON field layout and a
spreadsheet of records, and tiles them onto an A4 PDF sheet for printing.

The layout maps field names to positions on the card; the spreadsheet's
header row names the columns bound to those fields. Use "edit" to place
fields visually, "template" to export a matching spreadsheet, then
"sheet" or "export" to generate cards.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("settings", "cardpress.yaml", "settings file")
	cmd.PersistentFlags().String("layout", "", "layout JSON file (overrides settings)")
	cmd.PersistentFlags().String("data", "", "data file, .xlsx or .csv (overrides settings)")
	cmd.PersistentFlags().Int("dpi", 0, "render resolution (overrides settings)")

	cmd.AddCommand(newSheetCmd(), newExportCmd(), newTemplateCmd(), newEditCmd())
	return cmd
}

// resolveSettings loads the settings file and applies flag overrides.
func resolveSettings(cmd *cobra.Command) (*settings.Settings, error) {
	// Persistent flags are merged into Flags() lazily; force the merge so
	// this also works when cmd has not been executed.
	_ = cmd.InheritedFlags()
	path, _ := cmd.Flags().GetString("settings")
	s, err := settings.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("layout"); v != "" {
		s.LayoutPath = v
	}
	if v, _ := cmd.Flags().GetString("data"); v != "" {
		s.DataPath = v
	}
	if v, _ := cmd.Flags().GetInt("dpi"); v > 0 {
		s.DPI = v
	}
	return s, nil
}

// loadInputs opens the layout and the data source for a batch command.
// Unlike the editor, batch commands treat a missing layout as fatal.
func loadInputs(s *settings.Settings) (*layout.Layout, *record.Source, error) {
	l, err := layout.Load(s.LayoutPath)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot load layout %s: %w", s.LayoutPath, err)
	}
	src, err := record.Load(s.DataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot load data %s: %w", s.DataPath, err)
	}
	return l, src, nil
}

package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardpress/internal/layout"
	"cardpress/internal/record"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Export an empty spreadsheet matching the layout's fields",
		Long: `Template writes an XLSX workbook whose header row lists the layout's
field names, ready to fill with one row per card.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("output")

			l, err := layout.Load(s.LayoutPath)
			if err != nil {
				return fmt.Errorf("cannot load layout %s: %w", s.LayoutPath, err)
			}
			names := l.FieldNames()
			if len(names) == 0 {
				return fmt.Errorf("layout %s has no fields to export", s.LayoutPath)
			}
			if err := record.WriteTemplate(out, names); err != nil {
				return err
			}
			color.Green("Wrote %s with %d columns", out, len(names))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "template.xlsx", "template workbook path")
	return cmd
}

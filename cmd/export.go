package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardpress/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every data row to a PNG file in a directory",
		Long: `Export renders one card image per data row, written to the output
directory as card_000.png, card_001.png, and so on. All rows render;
there is no 10-card cap and no PDF step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetString("out-dir"); v != "" {
				s.OutputDir = v
			}
			l, src, err := loadInputs(s)
			if err != nil {
				return err
			}
			n, err := export.Run(l, src, s.DPI, s.OutputDir)
			if err != nil {
				return err
			}
			color.Green("Wrote %d card images to %s", n, s.OutputDir)
			return nil
		},
	}
	cmd.Flags().StringP("out-dir", "d", "", "output directory (overrides settings)")
	return cmd
}

package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardpress/internal/sheet"
)

func newSheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Render up to 10 cards onto one printable A4 PDF",
		Long: `Sheet renders the first 10 data rows as cards and tiles them onto a
single A4 page in a centered 2x5 grid. Slots without a data row are
filled with blank cards so the grid prints at a fixed size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetString("output"); v != "" {
				s.OutputPDF = v
			}
			l, src, err := loadInputs(s)
			if err != nil {
				return err
			}
			if err := sheet.Generate(l, src, s.DPI, s.OutputPDF); err != nil {
				return err
			}
			cards := len(src.Rows)
			if cards > sheet.Capacity {
				cards = sheet.Capacity
			}
			color.Green("Wrote %s: %d cards, %d blank slots", s.OutputPDF, cards, sheet.Capacity-cards)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output PDF path (overrides settings)")
	return cmd
}

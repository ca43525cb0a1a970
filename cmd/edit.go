package cmd

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardpress/internal/editor"
	"cardpress/internal/record"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the layout editor in a local web UI",
		Long: `Edit serves a local web page for placing, moving, and deleting layout
fields with a live card preview. If the layout file does not exist yet
the editor starts with an empty layout and creates the file on save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetString("listen"); v != "" {
				s.ListenAddr = v
			}

			srv, err := editor.New(s.LayoutPath, s.DPI, record.Record(s.Sample))
			if err != nil {
				return err
			}
			color.Cyan("Editing %s on http://%s", s.LayoutPath, s.ListenAddr)
			return http.ListenAndServe(s.ListenAddr, srv.Routes())
		},
	}
	cmd.Flags().StringP("listen", "l", "", "listen address (overrides settings)")
	return cmd
}

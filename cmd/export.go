package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export static pages",
}

var exportSiteCmd = &cobra.Command{
	Use:   "site",
	Short: "Render index.html and all published posts",
	Long: `Render the result page and every published post into the site directory
(site_dir in the config). Upload the listed files to the web server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		files, err := app.ExportSite(cmd.Context())
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "UPLOAD THESE FILES FROM %s:\n\n", app.SiteDir())

		for _, f := range files {
			_, _ = fmt.Fprintf(os.Stdout, "  %s\n", f)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportSiteCmd)
}

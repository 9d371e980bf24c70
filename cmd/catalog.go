package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the stored days",
	Long: `List every stored day with the number of filled rounds. With --json the
whole catalog is written in the browser catalog format, suitable for
"roundboard import".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		catalog, err := app.Results.Catalog()
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(catalog)
		}

		if len(catalog) == 0 {
			_, _ = fmt.Fprintln(os.Stdout, "No results stored yet.")
			_, _ = fmt.Fprintln(os.Stdout, "Fetch some with: roundboard sync range --days 30")

			return nil
		}

		_, _ = fmt.Fprintf(os.Stdout, "%-12s %-7s %s\n", "DATE", "ROUNDS", "EDITED")

		for _, key := range catalog.Keys() {
			rec := catalog[key]

			edited := ""
			if rec.Edited() {
				edited = rec.LastEditedAt.Format("2006-01-02 15:04")
			}

			_, _ = fmt.Fprintf(os.Stdout, "%-12s %d/8     %s\n", key, rec.Filled(), edited)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("json", false, "Output the catalog as JSON")
}

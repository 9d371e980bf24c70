package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/results"
)

var importCmd = &cobra.Command{
	Use:   "import <catalog.json>",
	Short: "Merge a catalog exported from the browser",
	Long: `Merge a JSON catalog ({"YYYY-MM-DD": {"rounds": [...], "created": ...}})
into the store. Records follow the normal merge rules: newer manual edits
are kept. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)

		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}

		if err != nil {
			return fmt.Errorf("failed to read catalog: %w", err)
		}

		var catalog model.Catalog
		if err := json.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("failed to decode catalog: %w", err)
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		outcomes, err := app.Results.Import(catalog)
		if err != nil {
			return err
		}

		counts := make(map[results.MergeOutcome]int)
		for _, o := range outcomes {
			counts[o]++
		}

		_, _ = fmt.Fprintf(os.Stdout, "Imported %d days: %d inserted, %d replaced, %d kept local, %d unchanged\n",
			len(outcomes),
			counts[results.MergeInserted],
			counts[results.MergeReplaced],
			counts[results.MergeKeptLocal],
			counts[results.MergeUnchanged])

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/render"
)

var (
	showOld   bool
	showLimit int
)

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show the rounds of a day",
	Long: `Show the rounds of a day as a table. The date is YYYY-MM-DD, "today"
(default) or "yesterday". With --old the most recent older days are listed
instead, newest first.`,
	Example: `  roundboard show
  roundboard show 2025-10-28
  roundboard show --old --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		today := app.Today()

		if showOld {
			catalog, err := app.Results.Catalog()
			if err != nil {
				return err
			}

			limit := showLimit
			if limit <= 0 {
				limit = app.Config.OldResultsLimit
			}

			return render.TerminalCatalog(os.Stdout, catalog, catalog.Recent(today, limit))
		}

		var arg string
		if len(args) > 0 {
			arg = args[0]
		}

		key, err := resolveDateKey(app.Clock, arg)
		if err != nil {
			return err
		}

		rec, err := app.Results.Get(key)
		if err != nil {
			return err
		}

		return render.Terminal(os.Stdout, key, rec)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showOld, "old", false, "List older results instead of a single day")
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Number of older results (default old_results_limit)")
}

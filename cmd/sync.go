package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/render"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch published result files into the catalog",
	Long: `Fetch <YYYY-MM-DD>.txt result files from the configured source and merge
them into the catalog. Manual edits newer than a published file are kept.`,
}

var syncTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Fetch today's result file",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		r, err := app.Reconciler()
		if err != nil {
			return err
		}

		today := app.Today()

		if _, err := app.Results.Rollover(today); err != nil {
			return err
		}

		if !r.SyncToday(cmd.Context()) {
			_, _ = fmt.Fprintf(os.Stdout, "No result published for %s yet.\n", today)
			return nil
		}

		rec, err := app.Results.Get(today)
		if err != nil {
			return err
		}

		return render.Terminal(os.Stdout, today, rec)
	},
}

var syncRangeDays int

var syncRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Fetch the result files of previous days",
	Long: `Fetch the result files of the given number of calendar days before today.
Fetches run in parallel; a missing or broken file skips only its own day.`,
	Example: `  roundboard sync range --days 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncRangeDays <= 0 {
			return fmt.Errorf("--days must be positive")
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		r, err := app.Reconciler()
		if err != nil {
			return err
		}

		synced := r.SyncRange(cmd.Context(), syncRangeDays)
		stats := r.Stats()

		_, _ = fmt.Fprintf(os.Stdout, "Synced %d of %d days (not found: %d, failed: %d, empty: %d)\n",
			len(synced), syncRangeDays, stats.NotFound, stats.Failed, stats.Empty)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncTodayCmd)
	syncCmd.AddCommand(syncRangeCmd)

	syncRangeCmd.Flags().IntVarP(&syncRangeDays, "days", "d", 30, "Number of previous days to fetch")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/clock"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Run the new day check",
	Long: `Run the new day check once: when the local day changed since the last
check, an empty record is created for today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		today := app.Today()

		isNew, err := app.Results.Rollover(today)
		if err != nil {
			return err
		}

		if isNew {
			_, _ = fmt.Fprintf(os.Stdout, "New day: %s\n", clock.DisplayKey(today))
		} else {
			_, _ = fmt.Fprintf(os.Stdout, "Still %s\n", clock.DisplayKey(today))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolloverCmd)
}

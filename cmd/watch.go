package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/params"
	"github.com/inovacc/roundboard/internal/process"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep today's results fresh in the foreground",
	Long: `Run the watcher until interrupted: the new day check every
rollover_interval seconds, a sync of today's file every sync_interval
seconds, and one sync of the last history_days days at start. With
export_on_sync the site is re-rendered after every successful sync.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runWatcher(ctx)
	},
}

// runWatcher blocks until ctx is done. It is shared by watch and service.
func runWatcher(ctx context.Context) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	w, err := app.Watcher()
	if err != nil {
		return err
	}

	removePID, err := process.WritePIDFile(params.AppdataDir)
	if err != nil {
		return err
	}

	defer func() {
		if err := removePID(); err != nil {
			slog.Warn("failed to remove pid file", "error", err)
		}
	}()

	w.Run(ctx)

	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

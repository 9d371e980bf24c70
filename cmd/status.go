package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/application"
	"github.com/inovacc/roundboard/internal/core"
	"github.com/inovacc/roundboard/internal/params"
	"github.com/inovacc/roundboard/internal/process"
	"github.com/inovacc/roundboard/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store, source and watcher status",
	Long:  `Display where data lives, how many days are stored, and whether a watcher is running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		catalog, err := app.Results.Catalog()
		if err != nil {
			return err
		}

		lastChecked, err := app.Blobs.GetBlob(store.BlobLastChecked)
		if err != nil {
			return err
		}

		today := app.Today()

		source := app.Config.SourceURL + app.Config.SourcePrefix
		if app.Config.SourceURL == "" {
			source = core.ErrSourceNotConfigured.Error()
		}

		items := map[string]string{
			"Data directory": app.DataDir,
			"Config":         app.ConfigPath,
			"Storage":        app.Config.StorageBackend,
			"Source":         source,
			"Stored days":    fmt.Sprint(len(catalog)),
			"Today":          fmt.Sprintf("%s (%d/8 rounds)", today, catalog[today].Filled()),
			"Last day check": orNone(lastChecked),
			"Watcher":        watcherStatus(),
		}

		printInfoBox(os.Stdout, "roundboard status", items, []string{
			"Data directory", "Config", "Storage", "Source", "Stored days", "Today", "Last day check", "Watcher",
		})

		return nil
	},
}

// watcherStatus reports the watcher recorded in the pid file, checked
// against the live Go processes.
func watcherStatus() string {
	pid, err := process.ReadPIDFile(params.AppdataDir)
	if err != nil {
		return err.Error()
	}

	finder := process.NewFinder()
	if err := finder.ListProcesses(); err != nil {
		return err.Error()
	}

	if pid != 0 && finder.IsProcessRunning(pid) {
		return fmt.Sprintf("running (pid %d)", pid)
	}

	if others := finder.Matching(application.AppExeName); len(others) > 1 {
		return fmt.Sprintf("not running here (%d other %s processes)", len(others)-1, application.AppExeName)
	}

	if pid != 0 {
		return fmt.Sprintf("not running (stale pid %d)", pid)
	}

	return "not running"
}

func orNone(s string) string {
	if s == "" {
		return "never"
	}

	return s
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/application"
	"github.com/inovacc/roundboard/internal/core"
	"github.com/inovacc/roundboard/internal/logger"
	"github.com/inovacc/roundboard/internal/params"
)

var (
	configFlag  string
	dataDirFlag string
	debugFlag   bool
	logJSONFlag bool
	logFileFlag bool

	logCleanup func() error
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Daily round results catalog",
	Long: `roundboard keeps a date-keyed catalog of the eight daily rounds.

Results are pulled from per-day text files (<YYYY-MM-DD>.txt) published on a
web server or in a local directory, can be corrected by hand, and are
rendered to the terminal or exported as a static HTML site.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := params.Resolve(dataDirFlag)
		if err != nil {
			return err
		}

		cfg := logger.Config{Debug: debugFlag, JSON: logJSONFlag}
		if logFileFlag {
			cfg.File = params.LogPath()
		}

		cleanup, err := logger.Setup(cfg)
		if err != nil {
			return err
		}

		logCleanup = cleanup

		slog.Debug("data directory resolved", "dir", dir)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCleanup == nil {
			return nil
		}

		return logCleanup()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// configPath is the --config value or the default inside the data directory.
func configPath() string {
	if configFlag != "" {
		return configFlag
	}

	return params.ConfigPath()
}

// openApp opens the data directory for a command. Callers close it.
func openApp() (*core.App, error) {
	return core.Open(core.Options{
		DataDir:    params.AppdataDir,
		ConfigPath: configPath(),
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default <data-dir>/roundboard.ini)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Data directory (default $"+application.HomeEnv+" or the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false, "Log as JSON")
	rootCmd.PersistentFlags().BoolVar(&logFileFlag, "log-file", false, "Also append logs to <data-dir>/roundboard.log")
}

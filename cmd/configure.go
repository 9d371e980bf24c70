package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/inovacc/roundboard/internal/cli"
	"github.com/inovacc/roundboard/internal/core"
	"github.com/inovacc/roundboard/internal/model"
)

var (
	showConfig  bool
	resetConfig bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure roundboard settings",
	Long:  `Interactively configure the result source, storage backend, sync intervals and site export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()

		if resetConfig {
			cfg, err := core.ResetConfig(path)
			if err != nil {
				return err
			}

			core.ShowConfig(os.Stdout, path, cfg)

			return nil
		}

		cfg, err := core.LoadConfig(path)
		if err != nil {
			fmt.Printf("Invalid configuration (%v), using defaults.\n", err)

			cfg = model.DefaultConfig()
		}

		core.ShowConfig(os.Stdout, path, cfg)

		if showConfig {
			return nil
		}

		fmt.Println("\nStarting interactive configuration...")

		m := cli.NewConfigureModel(cfg, func(c model.Config) error {
			return core.SaveConfig(path, c)
		})

		finalModel, err := tea.NewProgram(m).Run()
		if err != nil {
			return err
		}

		if configModel, ok := finalModel.(*cli.ConfigureModel); ok && configModel.Err != nil {
			return configModel.Err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().BoolVarP(&showConfig, "show", "s", false, "Show current configuration")
	configureCmd.Flags().BoolVarP(&resetConfig, "reset", "r", false, "Reset configuration to defaults")
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inovacc/roundboard/internal/cli"
	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/render"
)

var editDigits string

var editCmd = &cobra.Command{
	Use:   "edit [date]",
	Short: "Enter or correct the rounds of a day",
	Long: `Enter or correct the rounds of a day by hand. Every round is empty or
exactly three digits; sums are derived. A manual edit is kept until a
result file published after the edit is synced.

Without --digits an interactive form is opened.`,
	Example: `  roundboard edit
  roundboard edit 2025-10-28 --digits 239,108,,555`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		var arg string
		if len(args) > 0 {
			arg = args[0]
		}

		key, err := resolveDateKey(app.Clock, arg)
		if err != nil {
			return err
		}

		save := func(digits [model.RoundCount]string) (model.RoundRecord, error) {
			return app.Results.Edit(key, digits)
		}

		if cmd.Flags().Changed("digits") {
			digits, err := parseDigits(editDigits)
			if err != nil {
				return err
			}

			rec, err := save(digits)
			if err != nil {
				return err
			}

			return render.Terminal(os.Stdout, key, rec)
		}

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no terminal for the edit form; pass --digits instead")
		}

		current, err := app.Results.Get(key)
		if err != nil {
			return err
		}

		m := cli.NewEditModel(clock.DisplayKey(key), current, save)

		finalModel, err := tea.NewProgram(m).Run()
		if err != nil {
			return err
		}

		editModel, ok := finalModel.(*cli.EditModel)
		if !ok || !editModel.Saved {
			_, _ = fmt.Fprintln(os.Stdout, "Edit cancelled.")
			return nil
		}

		return render.Terminal(os.Stdout, key, editModel.Record)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editDigits, "digits", "", "Comma separated digits per round, e.g. 239,108,,555")
}

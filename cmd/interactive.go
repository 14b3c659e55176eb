package cmd

import (
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to browse the calendar, manage courses and deadlines, and plan self-study interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return app.RunTUI()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show the next events",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("limit") {
			app.Config.UpcomingLimit, _ = cmd.Flags().GetInt("limit")
		}
		return app.RunUpcomingTUI()
	},
}

func init() {
	rootCmd.AddCommand(upcomingCmd)
	upcomingCmd.Flags().IntP("limit", "n", 0, "How many events to show (default from config)")
}

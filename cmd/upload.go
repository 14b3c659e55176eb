package cmd

import (
	"fmt"

	"studyctl/pkg/planner"
	"studyctl/pkg/tui"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.ics>",
	Short: "Import an iCalendar file into your calendar",
	Long:  `Upload an .ics export (for example from your university timetable) to the planner. Every VEVENT becomes a calendar event.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		ctrl := app.UploadController()
		var res *planner.UploadResult
		tui.Spin(fmt.Sprintf("Uploading %s...", args[0]), func() {
			res, err = ctrl.Upload(args[0])
		})
		if err != nil {
			return reported(err)
		}

		if res.Parsed >= 0 {
			fmt.Printf("%d events sent from %s.\n", res.Parsed, res.File)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

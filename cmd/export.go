package cmd

import (
	"fmt"
	"time"

	"studyctl/pkg/planner"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your calendar to an ICS file",
	Long:  `Export the events of the coming weeks to an ICS file that any calendar application can import. Type and course filters from the config apply.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		weeks, _ := cmd.Flags().GetInt("weeks")
		if weeks <= 0 {
			return fmt.Errorf("--weeks must be positive")
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("course") {
			app.Config.CourseFilter, _ = cmd.Flags().GetString("course")
		}

		week := planner.Week(time.Now())
		r := planner.Range{Start: week.Start, End: week.Start.AddDate(0, 0, 7*weeks)}

		count, err := app.ExportEvents(r, output)
		if err != nil {
			return err
		}

		fmt.Printf("Successfully exported %d events to %s\n", count, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "studyplan.ics", "Output file path")
	exportCmd.Flags().IntP("weeks", "w", 4, "Number of weeks to export, starting with the current one")
	exportCmd.Flags().StringP("course", "c", "", "Only export events whose course matches")
}

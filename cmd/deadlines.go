package cmd

import (
	"fmt"
	"os"

	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"
	"studyctl/pkg/tui"

	"github.com/spf13/cobra"
)

var deadlinesCmd = &cobra.Command{
	Use:   "deadlines",
	Short: "Manage the deadlines of a course",
}

// deadlineController connects to the server for the --course of cmd
func deadlineController(cmd *cobra.Command) (*tui.App, *planner.DeadlineController, error) {
	courseID, _ := cmd.Flags().GetInt64("course")
	if courseID <= 0 {
		return nil, nil, fmt.Errorf("--course must be a course id")
	}
	app, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	return app, planner.NewDeadlineController(app.Client, app.Dialog, app.Logger, courseID), nil
}

var deadlinesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the deadlines of a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := deadlineController(cmd)
		if err != nil {
			return err
		}

		tui.Spin("Loading deadlines...", func() {
			_, err = ctrl.LoadDeadlines()
		})

		planner.RenderDeadlines(os.Stdout, ctrl.Deadlines, err)
		return nil
	},
}

var deadlinesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a deadline to a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctrl, err := deadlineController(cmd)
		if err != nil {
			return err
		}

		var form planner.DeadlineForm
		if err := applyDeadlineFlags(cmd, &form); err != nil {
			return err
		}

		var saved *studyflow.Event
		tui.Spin("Saving deadline...", func() {
			saved, err = ctrl.SaveDeadline(form)
		})
		if err != nil {
			return reported(err)
		}

		msg := "Deadline saved."
		if saved != nil && saved.ID > 0 {
			msg = fmt.Sprintf("Deadline #%d saved.", saved.ID)
		}
		app.Dialog.Notify(msg)
		return nil
	},
}

var deadlinesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a deadline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "deadline")
		if err != nil {
			return err
		}
		app, ctrl, err := deadlineController(cmd)
		if err != nil {
			return err
		}

		tui.Spin("Loading deadlines...", func() {
			_, err = ctrl.LoadDeadlines()
		})
		if err != nil {
			return err
		}

		var form planner.DeadlineForm
		for _, d := range ctrl.Deadlines {
			if d.ID == id {
				form = ctrl.EditDeadline(d)
			}
		}
		if form.ID == 0 {
			return fmt.Errorf("deadline #%d not found in course #%d", id, ctrl.CourseID)
		}

		if err := applyDeadlineFlags(cmd, &form); err != nil {
			return err
		}

		tui.Spin("Saving deadline...", func() {
			_, err = ctrl.SaveDeadline(form)
		})
		if err != nil {
			return reported(err)
		}

		app.Dialog.Notify(fmt.Sprintf("Deadline #%d saved.", id))
		return nil
	},
}

var deadlinesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a deadline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "deadline")
		if err != nil {
			return err
		}
		app, ctrl, err := deadlineController(cmd)
		if err != nil {
			return err
		}

		deleted, err := ctrl.DeleteDeadline(id)
		if err != nil {
			return reported(err)
		}
		if deleted {
			app.Dialog.Notify(fmt.Sprintf("Deadline #%d deleted.", id))
		}
		return nil
	},
}

func addDeadlineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Deadline title")
	cmd.Flags().StringP("due", "d", "", "Due date, e.g. \"2025-06-30 23:59\"")
	cmd.Flags().Int("points", 0, "Points the deadline is worth")
	cmd.Flags().Int("hours", 0, "Study time needed in hours")
	cmd.Flags().String("study-start", "", "When to start studying (optional)")
}

func applyDeadlineFlags(cmd *cobra.Command, form *planner.DeadlineForm) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		form.Title, _ = flags.GetString("title")
	}
	if flags.Changed("due") {
		t, err := timeFlag(cmd, "due")
		if err != nil {
			return err
		}
		form.Due = t
	}
	if flags.Changed("points") {
		form.Points, _ = flags.GetInt("points")
	}
	if flags.Changed("hours") {
		form.StudyHours, _ = flags.GetInt("hours")
	}
	if flags.Changed("study-start") {
		t, err := timeFlag(cmd, "study-start")
		if err != nil {
			return err
		}
		form.StudyStart = t
	}
	return nil
}

func init() {
	rootCmd.AddCommand(deadlinesCmd)
	deadlinesCmd.AddCommand(deadlinesListCmd, deadlinesAddCmd, deadlinesEditCmd, deadlinesDeleteCmd)

	deadlinesCmd.PersistentFlags().Int64P("course", "c", 0, "Course id")
	deadlinesCmd.MarkPersistentFlagRequired("course")

	addDeadlineFlags(deadlinesAddCmd)
	addDeadlineFlags(deadlinesEditCmd)
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"studyctl/pkg/planner"
	"studyctl/pkg/tui"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Plan self-study sessions for the deadlines of a course",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List planned self-study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := deadlineController(cmd)
		if err != nil {
			return err
		}

		tui.Spin("Loading sessions...", func() {
			_, err = ctrl.LoadSessions()
		})
		if err != nil {
			return fmt.Errorf("could not load sessions: %s", planner.UserMessage(err))
		}

		planner.RenderSessions(os.Stdout, ctrl.Sessions)
		return nil
	},
}

var sessionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Plan a self-study session manually",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctrl, err := deadlineController(cmd)
		if err != nil {
			return err
		}

		form := planner.SessionForm{}
		form.Title, _ = cmd.Flags().GetString("title")
		form.DeadlineID, _ = cmd.Flags().GetInt64("deadline")
		if form.Start, err = timeFlag(cmd, "start"); err != nil {
			return err
		}
		if form.End, err = timeFlag(cmd, "end"); err != nil {
			return err
		}
		if hours, _ := cmd.Flags().GetInt("hours"); form.End.IsZero() && !form.Start.IsZero() && hours > 0 {
			form.End = form.Start.Add(time.Duration(hours) * time.Hour)
		}

		tui.Spin("Saving session...", func() {
			err = ctrl.CreateSession(form)
		})
		if err != nil {
			return reported(err)
		}

		app.Dialog.Notify("Session planned.")
		return nil
	},
}

var sessionsAutoplanCmd = &cobra.Command{
	Use:   "autoplan",
	Short: "Let the server schedule sessions for a deadline",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := deadlineController(cmd)
		if err != nil {
			return err
		}
		deadlineID, _ := cmd.Flags().GetInt64("deadline")

		tui.Spin("Planning self-study sessions...", func() {
			err = ctrl.AutoPlan(deadlineID)
		})
		if err != nil {
			return reported(err)
		}

		planner.RenderSessions(os.Stdout, ctrl.Sessions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsAddCmd, sessionsAutoplanCmd)

	sessionsCmd.PersistentFlags().Int64P("course", "c", 0, "Course id")
	sessionsCmd.MarkPersistentFlagRequired("course")

	sessionsAddCmd.Flags().StringP("title", "t", "", "Session title")
	sessionsAddCmd.Flags().Int64P("deadline", "d", 0, "Deadline the session prepares for")
	sessionsAddCmd.Flags().StringP("start", "s", "", "Start, e.g. \"2025-03-04 14:00\"")
	sessionsAddCmd.Flags().StringP("end", "e", "", "End")
	sessionsAddCmd.Flags().Int("hours", 2, "Duration when --end is not given")

	sessionsAutoplanCmd.Flags().Int64P("deadline", "d", 0, "Deadline to plan for")
}

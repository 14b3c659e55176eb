package cmd

import (
	"fmt"
	"os"

	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"
	"studyctl/pkg/tui"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:     "courses",
	Aliases: []string{"course"},
	Short:   "Manage your courses",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses with their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		ctrl := planner.NewCourseController(app.Client, app.Dialog, app.Logger, nil)
		var entries []planner.CourseEntry
		tui.Spin("Loading courses...", func() {
			entries, err = ctrl.LoadCourses()
		})
		if err != nil {
			return reported(err)
		}

		for _, e := range entries {
			fmt.Printf("%4d  %s\n", e.Course.ID, e.Render())
		}
		if len(entries) == 0 {
			planner.RenderCourses(os.Stdout, entries)
		}
		return nil
	},
}

var coursesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one tab of a course: overview, deadlines or lectures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "course")
		if err != nil {
			return err
		}
		tab, _ := cmd.Flags().GetString("tab")

		app, err := newApp()
		if err != nil {
			return err
		}

		ctrl := planner.NewCourseController(app.Client, app.Dialog, app.Logger, nil)
		var detail *planner.CourseDetail
		tui.Spin("Loading course...", func() {
			if detail, err = ctrl.Open(id); err == nil {
				detail, err = ctrl.ShowTab(tab)
			}
		})
		if detail == nil {
			return reported(err)
		}

		switch tab {
		case planner.TabDeadlines:
			planner.RenderDeadlines(os.Stdout, detail.Deadlines, detail.DeadlinesErr)
		case planner.TabLectures:
			if err != nil {
				return reported(err)
			}
			planner.RenderLectures(os.Stdout, detail.Lectures)
		default:
			planner.RenderOverview(os.Stdout, detail.Course, detail.Description)
		}
		return nil
	},
}

var coursesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")

		app, err := newApp()
		if err != nil {
			return err
		}

		ctrl := planner.NewCourseController(app.Client, app.Dialog, app.Logger, nil)
		var course *studyflow.Course
		tui.Spin("Creating course...", func() {
			course, err = ctrl.CreateCourse(name, description)
		})
		if err != nil {
			return reported(err)
		}

		app.Dialog.Notify(fmt.Sprintf("Created course #%d: %s", course.ID, course.Name))
		return nil
	},
}

var coursesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the settings of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "course")
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}

		ctrl := planner.NewCourseController(app.Client, app.Dialog, app.Logger, nil)
		tui.Spin("Loading course...", func() {
			_, err = ctrl.Open(id)
		})
		if err != nil {
			return reported(err)
		}

		form, err := ctrl.SettingsForm()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			form.Name, _ = flags.GetString("name")
		}
		if flags.Changed("description") {
			form.Description, _ = flags.GetString("description")
		}
		if flags.Changed("color") {
			form.Color, _ = flags.GetString("color")
		}
		if flags.Changed("difficulty") {
			form.Difficulty, _ = flags.GetInt("difficulty")
		}

		tui.Spin("Saving course...", func() {
			err = ctrl.UpdateCourse(id, form)
		})
		if err != nil {
			return reported(err)
		}

		app.Dialog.Notify(fmt.Sprintf("Course #%d updated.", id))
		return nil
	},
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "course")
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}

		ctrl := planner.NewCourseController(app.Client, app.Dialog, app.Logger, nil)
		deleted, err := ctrl.DeleteCourse(id)
		if err != nil {
			return reported(err)
		}
		if deleted {
			app.Dialog.Notify(fmt.Sprintf("Course #%d deleted.", id))
		}
		return nil
	},
}

// linkCmd builds the assign and unassign commands
func linkCmd(use, short string, add bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <course-id> <event-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := idArg(args, 0, "course")
			if err != nil {
				return err
			}
			eventID, err := idArg(args, 1, "event")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}

			ctrl := planner.NewCourseController(app.Client, app.Dialog, app.Logger, nil)
			tui.Spin("Updating course events...", func() {
				if add {
					err = ctrl.AssignEvent(courseID, eventID)
				} else {
					err = ctrl.UnassignEvent(courseID, eventID)
				}
			})
			if err != nil {
				return reported(err)
			}

			app.Dialog.Notify(fmt.Sprintf("Event #%d updated.", eventID))
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(coursesCmd)
	coursesCmd.AddCommand(
		coursesListCmd,
		coursesShowCmd,
		coursesAddCmd,
		coursesEditCmd,
		coursesDeleteCmd,
		linkCmd("assign", "Attach an event to a course", true),
		linkCmd("unassign", "Detach an event from a course", false),
	)

	coursesShowCmd.Flags().String("tab", planner.TabOverview, "Tab to show: overview, deadlines or lectures")

	coursesAddCmd.Flags().StringP("name", "n", "", "Course name")
	coursesAddCmd.Flags().StringP("description", "d", "", "Course description")

	coursesEditCmd.Flags().StringP("name", "n", "", "Course name")
	coursesEditCmd.Flags().StringP("description", "d", "", "Course description")
	coursesEditCmd.Flags().String("color", "", "Hex color, e.g. #4287f5")
	coursesEditCmd.Flags().Int("difficulty", 0, "1 easy, 2 medium, 3 hard")
}

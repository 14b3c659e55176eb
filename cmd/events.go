package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"
	"studyctl/pkg/tui"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:     "events",
	Aliases: []string{"calendar"},
	Short:   "List and edit calendar events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the events of a week grouped by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		offset, _ := cmd.Flags().GetInt("week")
		r := planner.Week(time.Now().AddDate(0, 0, 7*offset))
		from, err := timeFlag(cmd, "from")
		if err != nil {
			return err
		}
		to, err := timeFlag(cmd, "to")
		if err != nil {
			return err
		}
		if !from.IsZero() {
			r.Start = from
		}
		if !to.IsZero() {
			r.End = to
		}

		ctrl := planner.NewCalendarController(app.Client, app.Dialog, app.Logger, nil)
		ctrl.SetCourseFilter(app.Config.CourseFilter)
		if cmd.Flags().Changed("course") {
			course, _ := cmd.Flags().GetString("course")
			ctrl.SetCourseFilter(course)
		}
		if len(app.Config.TypeFilters) > 0 {
			ctrl.SetTypes(app.Config.TypeFilters)
		}
		if cmd.Flags().Changed("type") {
			types, _ := cmd.Flags().GetStringSlice("type")
			ctrl.SetTypes(types)
		}

		var events []studyflow.Event
		tui.Spin("Loading events...", func() {
			events, err = ctrl.LoadEvents(r)
		})
		if err != nil {
			return reported(err)
		}

		fmt.Printf("%s – %s\n\n", r.Start.Format("Mon 02 Jan"), r.End.AddDate(0, 0, -1).Format("Mon 02 Jan 2006"))
		planner.RenderAgenda(os.Stdout, events)
		return nil
	},
}

var eventsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a calendar event",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		form := planner.EventForm{Type: studyflow.TypeCustom}
		if err := applyEventFlags(cmd, &form); err != nil {
			return err
		}

		ctrl := planner.NewCalendarController(app.Client, app.Dialog, app.Logger, nil)
		var created *studyflow.Event
		tui.Spin("Creating event...", func() {
			created, err = ctrl.CreateEvent(form)
		})
		if err != nil {
			return reported(err)
		}

		app.Dialog.Notify(fmt.Sprintf("Created event #%d: %s", created.ID, created.Title))
		return nil
	},
}

var eventsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an existing event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "event")
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}

		ctrl := planner.NewCalendarController(app.Client, app.Dialog, app.Logger, nil)
		var event studyflow.Event
		tui.Spin("Loading event...", func() {
			event, err = ctrl.FindEvent(id)
		})
		if errors.Is(err, planner.ErrEventNotFound) {
			return err
		}
		if err != nil {
			return reported(err)
		}

		form := planner.FormFromEvent(event)
		if err := applyEventFlags(cmd, &form); err != nil {
			return err
		}

		tui.Spin("Saving event...", func() {
			_, err = ctrl.UpdateEvent(id, form)
		})
		if err != nil {
			return reported(err)
		}

		app.Dialog.Notify(fmt.Sprintf("Event #%d updated.", id))
		return nil
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "event")
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}

		ctrl := planner.NewCalendarController(app.Client, app.Dialog, app.Logger, nil)
		deleted, err := ctrl.DeleteEvent(id)
		if err != nil {
			return reported(err)
		}
		if deleted {
			app.Dialog.Notify(fmt.Sprintf("Event #%d deleted.", id))
		}
		return nil
	},
}

func addEventFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Event title")
	cmd.Flags().StringP("start", "s", "", "Start, e.g. \"2025-03-04 08:15\"")
	cmd.Flags().StringP("end", "e", "", "End (defaults to one hour after start)")
	cmd.Flags().StringP("location", "l", "", "Location")
	cmd.Flags().String("type", "", "One of lecture, assignment, exam, self-study, custom")
	cmd.Flags().String("color", "", "Hex color, e.g. #4287f5")
	cmd.Flags().Int64("course", 0, "Course id to attach the event to (0 for none)")
	cmd.Flags().String("fill", "", "Fill style of custom events: full or partial-fill")
}

// applyEventFlags overwrites the form fields whose flags were given
func applyEventFlags(cmd *cobra.Command, form *planner.EventForm) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		form.Title, _ = flags.GetString("title")
	}
	if flags.Changed("start") {
		t, err := timeFlag(cmd, "start")
		if err != nil {
			return err
		}
		form.Start = t
	}
	if flags.Changed("end") {
		t, err := timeFlag(cmd, "end")
		if err != nil {
			return err
		}
		form.End = t
	}
	if flags.Changed("location") {
		form.Location, _ = flags.GetString("location")
	}
	if flags.Changed("type") {
		form.Type, _ = flags.GetString("type")
	}
	if flags.Changed("color") {
		form.Color, _ = flags.GetString("color")
	}
	if flags.Changed("course") {
		form.CourseID, _ = flags.GetInt64("course")
	}
	if flags.Changed("fill") {
		form.FillType, _ = flags.GetString("fill")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsAddCmd, eventsEditCmd, eventsDeleteCmd)

	eventsListCmd.Flags().IntP("week", "w", 0, "Week offset from the current week")
	eventsListCmd.Flags().String("from", "", "Range start (overrides --week)")
	eventsListCmd.Flags().String("to", "", "Range end, exclusive (overrides --week)")
	eventsListCmd.Flags().StringSlice("type", nil, "Only show these event types")
	eventsListCmd.Flags().StringP("course", "c", "", "Only show events whose course matches")

	addEventFlags(eventsAddCmd)
	addEventFlags(eventsEditCmd)
}

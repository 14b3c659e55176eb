package tui

import (
	"fmt"
	"time"

	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/huh"
)

// RunCalendarTUI shows the calendar week by week and edits events
func (a *App) RunCalendarTUI() error {
	week := planner.Week(time.Now())
	var events []studyflow.Event

	var ctrl *planner.CalendarController
	reload := func() {
		events, _ = ctrl.LoadEvents(week)
	}
	load := func() {
		spin("Fetching events...", reload)
	}

	// every successful write redraws the week
	ctrl = planner.NewCalendarController(a.Client, a.Dialog, a.Logger, reload)
	if len(a.Config.TypeFilters) > 0 {
		ctrl.SetTypes(a.Config.TypeFilters)
	}
	ctrl.SetCourseFilter(a.Config.CourseFilter)

	load()
	for {
		fmt.Fprintln(outWriter, accentStyle.Render(fmt.Sprintf("\n--- Week of %s ---", week.Start.Format("02 Jan 2006"))))
		planner.RenderAgenda(outWriter, events)
		fmt.Fprintln(outWriter)

		var action string
		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Calendar").
					Options(
						huh.NewOption("← Previous week", "prev"),
						huh.NewOption("→ Next week", "next"),
						huh.NewOption("Filter event types", "types"),
						huh.NewOption("Filter by course", "course"),
						huh.NewOption("Add event", "add"),
						huh.NewOption("Edit event", "edit"),
						huh.NewOption("Delete event", "delete"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "prev":
			week = planner.Range{Start: week.Start.AddDate(0, 0, -7), End: week.Start}
			load()
		case "next":
			week = planner.Range{Start: week.End, End: week.End.AddDate(0, 0, 7)}
			load()
		case "types":
			err = runTypeFilterForm(ctrl)
			load()
		case "course":
			err = runCourseFilterForm(ctrl)
			load()
		case "add":
			form := planner.EventForm{Start: week.Start.Add(8 * time.Hour)}
			if err = a.runEventForm("New event", &form); err == nil {
				spin("Saving event...", func() {
					_, err = ctrl.CreateEvent(form)
				})
			}
		case "edit":
			var e studyflow.Event
			var ok bool
			if e, ok, err = pickEvent("Which event?", events); err == nil && ok {
				form := planner.FormFromEvent(e)
				if err = a.runEventForm("Edit event", &form); err == nil {
					spin("Saving event...", func() {
						_, err = ctrl.UpdateEvent(e.ID, form)
					})
				}
			}
		case "delete":
			var e studyflow.Event
			var ok bool
			if e, ok, err = pickEvent("Delete which event?", events); err == nil && ok {
				_, err = ctrl.DeleteEvent(e.ID)
			}
		default:
			return nil
		}

		if err != nil && !isRecoverable(err) {
			return err
		}
	}
}

func runTypeFilterForm(ctrl *planner.CalendarController) error {
	checked := make(map[string]bool)
	for _, t := range ctrl.Types {
		checked[t] = true
	}

	var opts []huh.Option[string]
	for _, t := range studyflow.EventTypes {
		opts = append(opts, huh.NewOption(planner.TypeLabel(t), t).Selected(checked[t]))
	}

	var selected []string
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Show event types").
				Description("Space = toggle, Enter = confirm.").
				Options(opts...).
				Value(&selected),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}

	ctrl.SetTypes(selected)
	return nil
}

func runCourseFilterForm(ctrl *planner.CalendarController) error {
	text := ctrl.CourseFilter
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Course filter").
				Description("Leave empty to show all courses.").
				Value(&text),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}
	ctrl.SetCourseFilter(text)
	return nil
}

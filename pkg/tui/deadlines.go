package tui

import (
	"fmt"
	"time"

	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) runDeadlinesForSelectedCourse() error {
	opts := a.courseOptions(0)[1:]
	if len(opts) == 0 {
		fmt.Fprintln(outWriter, placeholderLine("No courses yet."))
		return nil
	}

	var courseID int64
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Which course?").
				Options(opts...).
				Value(&courseID),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}
	return a.RunDeadlinesTUI(courseID)
}

func placeholderLine(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true).Render(s)
}

// RunDeadlinesTUI is the deadline and self-study panel of one course
func (a *App) RunDeadlinesTUI(courseID int64) error {
	ctrl := planner.NewDeadlineController(a.Client, a.Dialog, a.Logger, courseID)

	var deadlinesErr error
	reload := func() {
		spin("Loading deadlines and sessions...", func() {
			_, deadlinesErr = ctrl.LoadDeadlines()
			_, _ = ctrl.LoadSessions()
		})
	}

	reload()
	for {
		fmt.Fprintln(outWriter, accentStyle.Render("\n--- Deadlines ---"))
		planner.RenderDeadlines(outWriter, ctrl.Deadlines, deadlinesErr)
		fmt.Fprintln(outWriter, accentStyle.Render("\n--- Self-Study Sessions ---"))
		planner.RenderSessions(outWriter, ctrl.Sessions)
		fmt.Fprintln(outWriter)

		var action string
		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Deadlines & Self-Study").
					Options(
						huh.NewOption("Add deadline", "add"),
						huh.NewOption("Edit deadline", "edit"),
						huh.NewOption("Delete deadline", "delete"),
						huh.NewOption("Plan a self-study session", "session"),
						huh.NewOption("Auto-plan sessions for a deadline", "autoplan"),
						huh.NewOption("Refresh", "refresh"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "add":
			err = runDeadlineForm(ctrl, planner.DeadlineForm{})
		case "edit":
			var d studyflow.Deadline
			var ok bool
			if d, ok, err = pickDeadline("Edit which deadline?", ctrl.Deadlines); err == nil && ok {
				err = runDeadlineForm(ctrl, ctrl.EditDeadline(d))
			}
		case "delete":
			var d studyflow.Deadline
			var ok bool
			if d, ok, err = pickDeadline("Delete which deadline?", ctrl.Deadlines); err == nil && ok {
				_, err = ctrl.DeleteDeadline(d.ID)
			}
		case "session":
			err = runSessionForm(ctrl)
		case "autoplan":
			var d studyflow.Deadline
			var ok bool
			if d, ok, err = pickDeadline("Plan for which deadline?", ctrl.Deadlines); err == nil {
				if !ok {
					d.ID = 0
				}
				spin("Planning self-study sessions...", func() {
					err = ctrl.AutoPlan(d.ID)
				})
			}
		case "refresh":
			reload()
		default:
			return nil
		}

		if err != nil && !isRecoverable(err) {
			return err
		}
	}
}

func pickDeadline(title string, deadlines []studyflow.Deadline) (studyflow.Deadline, bool, error) {
	if len(deadlines) == 0 {
		return studyflow.Deadline{}, false, nil
	}

	var opts []huh.Option[int]
	for i, d := range deadlines {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", d.Title, d.StartTime.Format(inputLayout)), i))
	}

	var idx int
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title(title).Options(opts...).Value(&idx),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return studyflow.Deadline{}, false, err
	}
	return deadlines[idx], true, nil
}

func runDeadlineForm(ctrl *planner.DeadlineController, form planner.DeadlineForm) error {
	due := formatInput(form.Due)
	studyStart := formatInput(form.StudyStart)
	points := ""
	if form.Points > 0 {
		points = fmt.Sprint(form.Points)
	}
	hours := ""
	if form.StudyHours > 0 {
		hours = fmt.Sprint(form.StudyHours)
	}

	title := "New deadline"
	if form.ID > 0 {
		title = "Edit deadline"
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Description("Title").Value(&form.Title),
			huh.NewInput().Title("Due").Placeholder(inputLayout).Value(&due).Validate(validateOptionalTime),
			huh.NewInput().Title("Points").Value(&points).Validate(validateOptionalInt),
			huh.NewInput().Title("Study time needed (hours)").Value(&hours).Validate(validateOptionalInt),
			huh.NewInput().Title("Start studying on").Description("Optional").Placeholder(inputLayout).Value(&studyStart).Validate(validateOptionalTime),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}

	form.Due, _ = parseOptionalTime(due)
	form.StudyStart, _ = parseOptionalTime(studyStart)
	form.Points = atoi(points)
	form.StudyHours = atoi(hours)

	var err error
	spin("Saving deadline...", func() {
		_, err = ctrl.SaveDeadline(form)
	})
	return err
}

func runSessionForm(ctrl *planner.DeadlineController) error {
	if len(ctrl.Deadlines) == 0 {
		_, _ = ctrl.LoadDeadlines()
	}

	var opts []huh.Option[int64]
	for _, d := range ctrl.Deadlines {
		opts = append(opts, huh.NewOption(d.Title, d.ID))
	}
	if len(opts) == 0 {
		fmt.Fprintln(outWriter, placeholderLine("No deadlines yet."))
		return nil
	}

	form := planner.SessionForm{}
	start := formatInput(time.Now().Truncate(time.Hour).Add(time.Hour))
	hours := "2"

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Session title").Value(&form.Title),
			huh.NewSelect[int64]().Title("For deadline").Options(opts...).Value(&form.DeadlineID),
			huh.NewInput().Title("Start").Placeholder(inputLayout).Value(&start).Validate(validateOptionalTime),
			huh.NewInput().Title("Duration (hours)").Value(&hours).Validate(validateOptionalInt),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}

	form.Start, _ = parseOptionalTime(start)
	if !form.Start.IsZero() {
		form.End = form.Start.Add(time.Duration(atoi(hours)) * time.Hour)
	}

	var err error
	spin("Saving session...", func() {
		err = ctrl.CreateSession(form)
	})
	return err
}

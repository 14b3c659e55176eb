package tui

import (
	"fmt"

	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/huh"
)

// RunCoursesTUI lists the user's courses and opens the course panel
func (a *App) RunCoursesTUI() error {
	var entries []planner.CourseEntry
	var ctrl *planner.CourseController

	// writes refresh the list from inside their own spinner
	reload := func() {
		entries, _ = ctrl.LoadCourses()
	}
	ctrl = planner.NewCourseController(a.Client, a.Dialog, a.Logger, reload)

	spin("Loading courses...", reload)
	for {
		fmt.Fprintln(outWriter, accentStyle.Render("\n--- My Courses ---"))
		planner.RenderCourses(outWriter, entries)
		fmt.Fprintln(outWriter)

		opts := []huh.Option[int64]{huh.NewOption("➕ Add course", int64(-1))}
		for _, e := range entries {
			opts = append(opts, huh.NewOption(e.Render(), e.Course.ID))
		}
		opts = append(opts, huh.NewOption("Back to Main Menu", int64(0)))

		var choice int64
		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int64]().
					Title("Select a course").
					Options(opts...).
					Value(&choice).
					Height(14),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		var err error
		switch {
		case choice == 0:
			return nil
		case choice < 0:
			err = runAddCourseForm(ctrl)
		default:
			err = a.runCoursePanel(ctrl, choice)
		}

		if err != nil && !isRecoverable(err) {
			return err
		}
	}
}

func runAddCourseForm(ctrl *planner.CourseController) error {
	var name, description string
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Course name").Value(&name),
			huh.NewText().Title("Description").Value(&description),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}

	_, err := ctrl.CreateCourse(name, description)
	return err
}

func (a *App) runCoursePanel(ctrl *planner.CourseController, id int64) error {
	var detail *planner.CourseDetail
	var err error
	spin("Loading course...", func() {
		detail, err = ctrl.Open(id)
	})
	if err != nil {
		return err
	}

	tab := planner.TabOverview
	for {
		spin("Loading...", func() {
			detail, err = ctrl.ShowTab(tab)
		})
		if detail == nil {
			return err
		}
		renderTab(tab, detail)

		var action string
		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(detail.Course.Name).
					Options(
						huh.NewOption("Overview", planner.TabOverview),
						huh.NewOption("Deadlines", planner.TabDeadlines),
						huh.NewOption("Lectures", planner.TabLectures),
						huh.NewOption("Settings", planner.TabSettings),
						huh.NewOption("Manage deadlines & self-study", "manage"),
						huh.NewOption("Assign event", "assign"),
						huh.NewOption("Unassign event", "unassign"),
						huh.NewOption("Delete course", "delete"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		switch action {
		case planner.TabOverview, planner.TabDeadlines, planner.TabLectures:
			tab = action
		case planner.TabSettings:
			err = runCourseSettingsForm(ctrl, id)
			tab = planner.TabOverview
		case "manage":
			err = a.RunDeadlinesTUI(id)
		case "assign":
			err = a.runAssignForm(ctrl, id, true)
		case "unassign":
			err = a.runAssignForm(ctrl, id, false)
		case "delete":
			var deleted bool
			deleted, err = ctrl.DeleteCourse(id)
			if deleted {
				return nil
			}
		default:
			return nil
		}

		if err != nil && !isRecoverable(err) {
			return err
		}
	}
}

func renderTab(tab string, detail *planner.CourseDetail) {
	fmt.Fprintln(outWriter)
	switch tab {
	case planner.TabDeadlines:
		fmt.Fprintln(outWriter, accentStyle.Render("--- Deadlines ---"))
		planner.RenderDeadlines(outWriter, detail.Deadlines, detail.DeadlinesErr)
	case planner.TabLectures:
		fmt.Fprintln(outWriter, accentStyle.Render("--- Lectures ---"))
		planner.RenderLectures(outWriter, detail.Lectures)
	default:
		planner.RenderOverview(outWriter, detail.Course, detail.Description)
	}
	fmt.Fprintln(outWriter)
}

func runCourseSettingsForm(ctrl *planner.CourseController, id int64) error {
	form, err := ctrl.SettingsForm()
	if err != nil {
		return err
	}
	difficulty := form.Difficulty

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&form.Name),
			huh.NewText().Title("Description").Value(&form.Description),
			huh.NewInput().Title("Color").Placeholder(planner.DefaultCourseColor).Value(&form.Color),
			huh.NewSelect[int]().
				Title("Difficulty").
				Options(
					huh.NewOption("Not set", 0),
					huh.NewOption(planner.DifficultyLabel(1), 1),
					huh.NewOption(planner.DifficultyLabel(2), 2),
					huh.NewOption(planner.DifficultyLabel(3), 3),
				).
				Value(&difficulty),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}
	form.Difficulty = difficulty

	spin("Saving course...", func() {
		err = ctrl.UpdateCourse(id, form)
	})
	return err
}

func (a *App) runAssignForm(ctrl *planner.CourseController, courseID int64, add bool) error {
	var candidates []studyflow.Event
	var err error

	if add {
		cal := planner.NewCalendarController(a.Client, a.Dialog, a.Logger, nil)
		spin("Fetching events...", func() {
			candidates, err = cal.LoadEvents(planner.Range{})
		})
	} else {
		spin("Fetching course events...", func() {
			candidates, err = ctrl.CourseEvents(courseID)
		})
	}
	if err != nil {
		return err
	}

	title := "Assign which event?"
	if !add {
		title = "Unassign which event?"
	}
	e, ok, err := pickEvent(title, candidates)
	if err != nil || !ok {
		return err
	}

	if add {
		err = ctrl.AssignEvent(courseID, e.ID)
	} else {
		err = ctrl.UnassignEvent(courseID, e.ID)
	}
	if err == nil {
		a.Dialog.Notify(fmt.Sprintf("Event #%d updated.", e.ID))
	}
	return err
}

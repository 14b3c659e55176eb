package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/huh"
)

const inputLayout = "2006-01-02 15:04"

func formatInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(inputLayout)
}

// parseOptionalTime accepts an empty string as "not set"
func parseOptionalTime(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return studyflow.ParseLocal(s)
}

func validateOptionalTime(s string) error {
	_, err := parseOptionalTime(s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD HH:MM")
	}
	return nil
}

func validateOptionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// courseOptions builds select options for the user's courses, starting with "No course"
func (a *App) courseOptions(selected int64) []huh.Option[int64] {
	var courses []studyflow.Course
	var err error
	spin("Loading courses...", func() {
		courses, err = a.Client.FetchCourses()
	})
	if err != nil {
		a.Logger.Warn("could not load courses for picker")
	}

	opts := []huh.Option[int64]{huh.NewOption("No course", int64(0))}
	for _, c := range courses {
		opt := huh.NewOption(c.Name, c.ID)
		if c.ID == selected {
			opt = opt.Selected(true)
		}
		opts = append(opts, opt)
	}
	return opts
}

// runEventForm edits form in place
func (a *App) runEventForm(title string, form *planner.EventForm) error {
	start := formatInput(form.Start)
	end := formatInput(form.End)
	courseID := form.CourseID
	eventType := form.Type
	if eventType == "" {
		eventType = studyflow.TypeCustom
	}
	fillType := form.FillType

	var typeOptions []huh.Option[string]
	for _, t := range studyflow.EventTypes {
		typeOptions = append(typeOptions, huh.NewOption(planner.TypeLabel(t), t))
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Description("Title").Value(&form.Title),
			huh.NewInput().Title("Start").Placeholder(inputLayout).Value(&start).Validate(validateOptionalTime),
			huh.NewInput().Title("End").Description("Leave empty for one hour").Placeholder(inputLayout).Value(&end).Validate(validateOptionalTime),
			huh.NewInput().Title("Location").Value(&form.Location),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(&eventType),
			huh.NewInput().Title("Color").Description("Leave empty for the type color").Placeholder("#4285F4").Value(&form.Color),
			huh.NewSelect[int64]().Title("Course").Options(a.courseOptions(courseID)...).Value(&courseID),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Fill").
				Options(
					huh.NewOption("Full block", ""),
					huh.NewOption("Half filled", studyflow.FillPartial),
				).
				Value(&fillType),
		).WithHideFunc(func() bool { return eventType != studyflow.TypeCustom }),
	).WithTheme(GetTheme())

	if err := f.Run(); err != nil {
		return err
	}

	form.Start, _ = parseOptionalTime(start)
	form.End, _ = parseOptionalTime(end)
	form.Type = eventType
	form.CourseID = courseID
	form.FillType = fillType
	return nil
}

// pickEvent lets the user choose one of events
func pickEvent(title string, events []studyflow.Event) (studyflow.Event, bool, error) {
	if len(events) == 0 {
		fmt.Fprintln(outWriter, errorStyle.Render("No events to choose from."))
		return studyflow.Event{}, false, nil
	}

	var opts []huh.Option[int]
	for i, e := range events {
		label := fmt.Sprintf("%s  %s (%s)", e.Start.Format(inputLayout), e.Title, planner.TypeLabel(e.Type))
		opts = append(opts, huh.NewOption(label, i))
	}

	var idx int
	f := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title(title).Options(opts...).Value(&idx).Height(12),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return studyflow.Event{}, false, err
	}
	return events[idx], true, nil
}

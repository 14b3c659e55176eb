package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"studyctl/pkg/exporter"
	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/huh"
)

// UploadController wires the import controller with the local preflight
// and the reloads of calendar, courses and upcoming events.
func (a *App) UploadController() *planner.UploadController {
	cal := planner.NewCalendarController(a.Client, a.Dialog, a.Logger, nil)
	courses := planner.NewCourseController(a.Client, a.Dialog, a.Logger, nil)

	return planner.NewUploadController(a.Client, a.Dialog, a.Logger, exporter.CountEvents,
		func() error {
			_, err := cal.LoadEvents(planner.Week(time.Now()))
			return err
		},
		func() error {
			_, err := courses.LoadCourses()
			return err
		},
		func() error {
			_, err := cal.LoadUpcoming(a.Config.Limit())
			return err
		},
	)
}

// RunUploadTUI picks an .ics file and imports it
func (a *App) RunUploadTUI() error {
	var path string

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewFilePicker().
				Title("Choose a calendar file").
				Description("Exported .ics from your university or another calendar.").
				AllowedTypes([]string{".ics"}).
				CurrentDirectory(".").
				Value(&path).
				Height(12),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}

	ctrl := a.UploadController()

	var res *planner.UploadResult
	var err error
	spin("Uploading calendar...", func() {
		res, err = ctrl.Upload(path)
	})
	if err != nil {
		if isRecoverable(err) {
			return nil
		}
		return err
	}

	if res.Parsed >= 0 {
		fmt.Fprintln(outWriter, accentStyle.Render(fmt.Sprintf("%d events sent from %s.", res.Parsed, res.File)))
	}
	return nil
}

// RunExportTUI writes the events of the coming weeks to an .ics file
func (a *App) RunExportTUI() error {
	output := "studyplan.ics"
	weeks := "4"

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Output file").Value(&output),
			huh.NewInput().Title("Weeks to export").Value(&weeks).Validate(validateOptionalInt),
		),
	).WithTheme(GetTheme())
	if err := f.Run(); err != nil {
		return err
	}

	n := atoi(weeks)
	if n <= 0 {
		n = 4
	}
	week := planner.Week(time.Now())
	r := planner.Range{Start: week.Start, End: week.Start.AddDate(0, 0, 7*n)}

	count, err := a.ExportEvents(r, strings.TrimSpace(output))
	if err != nil {
		return err
	}

	fmt.Fprintln(outWriter, accentStyle.Render(fmt.Sprintf("\n✅ Exported %d events to %s\n", count, output)))
	return nil
}

// ExportEvents writes the filtered events in r to output and returns how many were written.
func (a *App) ExportEvents(r planner.Range, output string) (int, error) {
	ctrl := planner.NewCalendarController(a.Client, a.Dialog, a.Logger, nil)
	if len(a.Config.TypeFilters) > 0 {
		ctrl.SetTypes(a.Config.TypeFilters)
	}
	ctrl.SetCourseFilter(a.Config.CourseFilter)

	var events []studyflow.Event
	var err error
	spin(fmt.Sprintf("Exporting calendar to %s...", output), func() {
		events, err = ctrl.LoadEvents(r)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	file, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(events, file); err != nil {
		return 0, fmt.Errorf("failed to generate ICS: %w", err)
	}
	return len(events), nil
}

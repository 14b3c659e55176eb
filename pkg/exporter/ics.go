package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"studyctl/pkg/studyflow"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// uidNamespace keeps exported UIDs stable across exports of the same server events
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("studyctl/events"))

// GenerateICS writes the events as an iCalendar file to w.
// Events without a start time are skipped; a missing end defaults to one hour after start.
func GenerateICS(events []studyflow.Event, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studyctl//Study Planner Export//EN")

	now := time.Now()
	for _, e := range events {
		if e.Start.IsZero() {
			continue
		}
		end := e.End.Time
		if end.IsZero() || end.Before(e.Start.Time) {
			end = e.Start.Add(time.Hour)
		}

		uid := uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf("%d|%s", e.ID, e.Start.String())))
		event := cal.AddEvent(uid.String() + "@studyctl")
		event.SetDtStampTime(now)
		event.SetStartAt(e.Start.Time)
		event.SetEndAt(end)
		event.SetSummary(e.Title)
		if e.Location != "" {
			event.SetLocation(e.Location)
		}
		if e.Type != "" {
			event.SetProperty(ics.ComponentPropertyCategories, strings.ToUpper(e.Type))
		}
		if e.Color != "" {
			event.SetProperty(ics.ComponentProperty("COLOR"), e.Color)
		}

		var desc []string
		if e.Description != "" {
			desc = append(desc, e.Description)
		}
		if course := string(e.CourseID); course != "" {
			desc = append(desc, "Course: "+course)
		}
		if e.IsDeadline && e.Points > 0 {
			desc = append(desc, fmt.Sprintf("Points: %d", e.Points))
		}
		if len(desc) > 0 {
			event.SetDescription(strings.Join(desc, "\n"))
		}
	}

	return cal.SerializeTo(w)
}

// CountEvents parses an iCalendar file and returns the number of VEVENTs in it.
// Exports that repeat the VALUE=DATE parameter or carry trailing garbage after
// END:VCALENDAR are cleaned up first, the same way the server does on import.
func CountEvents(r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read calendar: %w", err)
	}

	cleaned := cleanCalendar(string(raw))
	cal, err := ics.ParseCalendar(strings.NewReader(cleaned))
	if err != nil {
		return 0, fmt.Errorf("failed to parse calendar: %w", err)
	}
	return len(cal.Events()), nil
}

func cleanCalendar(s string) string {
	for strings.Contains(s, ";VALUE=DATE;VALUE=DATE") {
		s = strings.ReplaceAll(s, ";VALUE=DATE;VALUE=DATE", ";VALUE=DATE")
	}
	if i := strings.Index(s, "END:VCALENDAR"); i >= 0 {
		s = s[:i+len("END:VCALENDAR")] + "\r\n"
	}
	return s
}

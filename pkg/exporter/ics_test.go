package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"studyctl/pkg/studyflow"
)

func TestGenerateICS(t *testing.T) {
	start := time.Date(2026, time.March, 4, 8, 15, 0, 0, time.UTC)
	events := []studyflow.Event{
		{
			ID:       1,
			Title:    "Lineare Algebra",
			Start:    studyflow.NewLocalTime(start),
			End:      studyflow.NewLocalTime(start.Add(90 * time.Minute)),
			Location: "WF-EX-7/3",
			Type:     "lecture",
			Color:    "#4285F4",
			CourseID: "12",
		},
		{ID: 2, Title: "Unscheduled"},
	}

	var buf bytes.Buffer
	err := GenerateICS(events, &buf)
	if err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "SUMMARY:Lineare Algebra") {
		t.Errorf("Expected ICS to contain event summary, got: \n%s", output)
	}

	if !strings.Contains(output, "LOCATION:WF-EX-7/3") {
		t.Errorf("Expected ICS to contain location")
	}

	if !strings.Contains(output, "DTSTART:20260304T081500Z") {
		t.Errorf("Expected start time string in ICS (should be UTC), got: \n%s", output)
	}

	if !strings.Contains(output, "CATEGORIES:LECTURE") {
		t.Errorf("Expected event type as category")
	}

	if strings.Contains(output, "Unscheduled") {
		t.Errorf("Events without start time must be skipped")
	}
}

func TestGenerateICSStableUIDs(t *testing.T) {
	events := []studyflow.Event{{
		ID:    7,
		Title: "Exam",
		Start: studyflow.NewLocalTime(time.Date(2026, time.July, 1, 10, 0, 0, 0, time.UTC)),
	}}

	var a, b bytes.Buffer
	if err := GenerateICS(events, &a); err != nil {
		t.Fatal(err)
	}
	if err := GenerateICS(events, &b); err != nil {
		t.Fatal(err)
	}

	uidLine := func(s string) string {
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(line, "UID:") {
				return strings.TrimSpace(line)
			}
		}
		return ""
	}
	if uidLine(a.String()) == "" || uidLine(a.String()) != uidLine(b.String()) {
		t.Errorf("expected identical UIDs, got %q and %q", uidLine(a.String()), uidLine(b.String()))
	}
}

func TestCountEvents(t *testing.T) {
	start := time.Date(2026, time.March, 4, 8, 15, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := GenerateICS([]studyflow.Event{
		{ID: 1, Title: "A", Start: studyflow.NewLocalTime(start)},
		{ID: 2, Title: "B", Start: studyflow.NewLocalTime(start.Add(time.Hour))},
	}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	n, err := CountEvents(&buf)
	if err != nil {
		t.Fatalf("CountEvents failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}
}

func TestCleanCalendar(t *testing.T) {
	in := "BEGIN:VCALENDAR\r\nDTSTART;VALUE=DATE;VALUE=DATE:20260304\r\nEND:VCALENDAR\r\ngarbage"
	out := cleanCalendar(in)

	if strings.Contains(out, ";VALUE=DATE;VALUE=DATE") {
		t.Errorf("duplicate parameter not removed: %q", out)
	}
	if strings.Contains(out, "garbage") {
		t.Errorf("trailing content not removed: %q", out)
	}
}

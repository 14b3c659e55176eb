package planner

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"studyctl/pkg/studyflow"
)

func TestSessionLine(t *testing.T) {
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.Local)
	s := studyflow.Session{
		Title:     "Review",
		StartTime: studyflow.NewLocalTime(start),
		EndTime:   studyflow.NewLocalTime(start.Add(2 * time.Hour)),
	}

	if got := SessionLine(s); got != "Review (2025-06-02 09:00 - 2025-06-02 11:00)" {
		t.Errorf("unexpected line %q", got)
	}

	s.RelatedDeadlineTitle = "Final exam"
	if got := SessionLine(s); !strings.HasSuffix(got, " → Final exam") {
		t.Errorf("expected deadline annotation, got %q", got)
	}
}

func TestRenderPlaceholders(t *testing.T) {
	var buf bytes.Buffer

	RenderDeadlines(&buf, nil, nil)
	RenderDeadlines(&buf, nil, errors.New("Failed to fetch deadlines"))
	RenderSessions(&buf, nil)
	RenderCourses(&buf, nil)
	RenderUpcoming(&buf, nil)

	out := buf.String()
	for _, want := range []string{
		"No deadlines yet.",
		"Error loading deadlines: Failed to fetch deadlines",
		"No planned self-study sessions.",
		"No courses yet.",
		"No upcoming events.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderEventShapes(t *testing.T) {
	start := studyflow.NewLocalTime(time.Date(2025, time.June, 2, 9, 5, 0, 0, time.Local))

	lecture := RenderEvent(studyflow.Event{Title: "Algebra", Type: "lecture", Start: start})
	if !strings.Contains(lecture, "●") || !strings.Contains(lecture, "09:05") || !strings.Contains(lecture, "Algebra") {
		t.Errorf("unexpected lecture rendering %q", lecture)
	}

	exam := RenderEvent(studyflow.Event{Title: "Exam", Type: "exam", Start: start})
	if strings.Contains(exam, "●") || !strings.Contains(exam, "Exam") {
		t.Errorf("unexpected exam rendering %q", exam)
	}

	partial := RenderEvent(studyflow.Event{Title: "Project", Type: "custom", FillType: studyflow.FillPartial, Start: start})
	if !strings.Contains(partial, "ject") {
		t.Errorf("expected the second half of the title to be rendered, got %q", partial)
	}
}

func TestLabels(t *testing.T) {
	if got := TypeLabel("self-study"); got != "Self-Study" {
		t.Errorf("TypeLabel = %q", got)
	}
	if DifficultyLabel(1) != "Easy" || DifficultyLabel(3) != "Hard" || DifficultyLabel(0) != "-" {
		t.Errorf("unexpected difficulty labels")
	}
}

func TestNewCourseEntryImportedColor(t *testing.T) {
	e := NewCourseEntry(studyflow.Course{Name: "Imported", Color: "#FFFFFF70", ProgressPercent: 10})
	if e.Foreground != "#000000" {
		t.Errorf("expected black text on a light imported color, got %s", e.Foreground)
	}
	if e.Background != "#ffffff" {
		t.Errorf("expected alpha to be dropped from the background, got %s", e.Background)
	}

	e = NewCourseEntry(studyflow.Course{Name: "Dark", Color: "#1a237e70"})
	if e.Foreground != "#ffffff" || e.Background != "#1a237e" {
		t.Errorf("unexpected dark entry %+v", e)
	}
}

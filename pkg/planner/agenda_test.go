package planner

import (
	"testing"
	"time"

	"studyctl/pkg/studyflow"
)

func at(day, hour int) studyflow.LocalTime {
	return studyflow.NewLocalTime(time.Date(2025, time.March, day, hour, 0, 0, 0, time.Local))
}

func TestGroupByDay(t *testing.T) {
	events := []studyflow.Event{
		{ID: 1, Title: "Exam", Start: at(5, 14)},
		{ID: 2, Title: "Lecture", Start: at(4, 10)},
		{ID: 3, Title: "Tutorial", Start: at(5, 8)},
		{ID: 4, Title: "No start"},
		{ID: 5, Title: "Lab", Start: at(5, 16)},
	}

	days := GroupByDay(events, 2)

	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}

	if days[0].Day.Day() != 4 || len(days[0].Events) != 1 {
		t.Errorf("expected first day to be the 4th with one event, got %v with %d", days[0].Day, len(days[0].Events))
	}

	if len(days[1].Events) != 2 {
		t.Fatalf("expected the 5th to be clipped to 2 events, got %d", len(days[1].Events))
	}

	if days[1].Events[0].ID != 3 || days[1].Events[1].ID != 1 {
		t.Errorf("events within a day are not sorted chronologically: %v", ids(days[1].Events))
	}
}

func TestGroupByDay_NoLimit(t *testing.T) {
	events := []studyflow.Event{
		{ID: 1, Start: at(5, 8)},
		{ID: 2, Start: at(5, 9)},
		{ID: 3, Start: at(5, 10)},
	}
	days := GroupByDay(events, 0)
	if len(days) != 1 || len(days[0].Events) != 3 {
		t.Errorf("expected all 3 events on one day, got %+v", days)
	}
}

func TestGroupByDay_Empty(t *testing.T) {
	if days := GroupByDay(nil, 5); len(days) != 0 {
		t.Errorf("expected empty output for empty input, got %d", len(days))
	}
}

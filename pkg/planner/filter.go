package planner

import (
	"strings"

	"studyctl/pkg/studyflow"
)

// FilterByTypes keeps the events whose type matches one of the checked types,
// ignoring case. Events without a type never match, and an empty selection
// matches nothing.
func FilterByTypes(events []studyflow.Event, checked []string) []studyflow.Event {
	selected := make(map[string]bool, len(checked))
	for _, t := range checked {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			selected[t] = true
		}
	}

	filtered := []studyflow.Event{}
	for _, e := range events {
		if e.Type != "" && selected[strings.ToLower(e.Type)] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterLectures keeps only lecture events, as shown in the course lectures tab
func FilterLectures(events []studyflow.Event) []studyflow.Event {
	return FilterByTypes(events, []string{studyflow.TypeLecture})
}

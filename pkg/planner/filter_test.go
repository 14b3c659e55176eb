package planner

import (
	"reflect"
	"testing"

	"studyctl/pkg/studyflow"
)

func ids(events []studyflow.Event) []int64 {
	out := []int64{}
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterByTypes(t *testing.T) {
	events := []studyflow.Event{
		{ID: 1, Type: "lecture"},
		{ID: 2, Type: "Exam"},
		{ID: 3, Type: "self-study"},
		{ID: 4, Type: ""},
		{ID: 5, Type: "deadline"},
		{ID: 6, Type: "LECTURE"},
	}

	tests := []struct {
		name    string
		checked []string
		want    []int64
	}{
		{"all types", studyflow.EventTypes, []int64{1, 2, 3, 6}},
		{"case insensitive", []string{"Lecture", "EXAM"}, []int64{1, 2, 6}},
		{"single type", []string{"self-study"}, []int64{3}},
		{"nothing checked", nil, []int64{}},
		{"blank entries ignored", []string{"", " "}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterByTypes(events, tt.checked))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterLectures(t *testing.T) {
	events := []studyflow.Event{
		{ID: 1, Type: "lecture"},
		{ID: 2, Type: "exam"},
	}
	got := ids(FilterLectures(events))
	if !reflect.DeepEqual(got, []int64{1}) {
		t.Errorf("expected only the lecture, got %v", got)
	}
}

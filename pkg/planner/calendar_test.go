package planner

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"studyctl/pkg/studyflow"
)

func newCalendar(api *fakeAPI, dialog *fakeDialog) (*CalendarController, *int) {
	refreshes := 0
	c := NewCalendarController(api, dialog, nil, func() { refreshes++ })
	return c, &refreshes
}

func validEventForm() EventForm {
	return EventForm{
		Title: "Linear Algebra",
		Start: time.Date(2025, time.March, 4, 8, 15, 0, 0, time.Local),
		End:   time.Date(2025, time.March, 4, 9, 45, 0, 0, time.Local),
		Type:  "lecture",
	}
}

func TestLoadEventsFiltersAndQueries(t *testing.T) {
	api := newFakeAPI()
	api.events = []studyflow.Event{
		{ID: 1, Type: "lecture"},
		{ID: 2, Type: "exam"},
		{ID: 3, Type: ""},
	}
	c, _ := newCalendar(api, &fakeDialog{})
	c.SetCourseFilter("algebra")
	c.SetTypes([]string{"EXAM"})

	week := Week(time.Date(2025, time.March, 5, 12, 0, 0, 0, time.Local))
	events, err := c.LoadEvents(week)
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}

	if got := ids(events); !reflect.DeepEqual(got, []int64{2}) {
		t.Errorf("expected only the exam, got %v", got)
	}
	if api.lastQuery.Course != "algebra" {
		t.Errorf("expected course filter to be sent, got %q", api.lastQuery.Course)
	}
	if api.lastQuery.Start.Weekday() != time.Monday || !api.lastQuery.End.Equal(api.lastQuery.Start.AddDate(0, 0, 7)) {
		t.Errorf("unexpected range %v - %v", api.lastQuery.Start, api.lastQuery.End)
	}
}

func TestLoadEventsFailureAlerts(t *testing.T) {
	api := newFakeAPI()
	api.err = errServer
	dialog := &fakeDialog{}
	c, _ := newCalendar(api, dialog)

	events, err := c.LoadEvents(Range{})
	if err == nil {
		t.Fatal("expected error")
	}
	if events == nil || len(events) != 0 {
		t.Errorf("expected empty non-nil result, got %v", events)
	}
	if dialog.lastAlert() != loadEventsFailed {
		t.Errorf("expected alert %q, got %q", loadEventsFailed, dialog.lastAlert())
	}
}

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name string
		edit func(*EventForm)
	}{
		{"missing title", func(f *EventForm) { f.Title = "   " }},
		{"missing start", func(f *EventForm) { f.Start = time.Time{} }},
		{"missing type", func(f *EventForm) { f.Type = "" }},
		{"unknown type", func(f *EventForm) { f.Type = "party" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			dialog := &fakeDialog{}
			c, refreshes := newCalendar(api, dialog)

			form := validEventForm()
			tt.edit(&form)

			_, err := c.CreateEvent(form)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if api.writes() != 0 {
				t.Errorf("expected no request, got %v", api.calls)
			}
			if dialog.lastAlert() != missingEventFields {
				t.Errorf("unexpected alert %q", dialog.lastAlert())
			}
			if *refreshes != 0 {
				t.Errorf("expected no refresh")
			}
		})
	}
}

func TestCreateEventPayload(t *testing.T) {
	api := newFakeAPI()
	c, refreshes := newCalendar(api, &fakeDialog{})

	form := validEventForm()
	form.End = time.Time{}
	form.Type = "Lecture"
	form.FillType = studyflow.FillPartial
	form.CourseID = 12

	if _, err := c.CreateEvent(form); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	p := api.lastEvent
	if p.Type != "lecture" || p.Color != "#4285F4" {
		t.Errorf("expected normalized type with default color, got %q %q", p.Type, p.Color)
	}
	if p.FillType != "" {
		t.Errorf("fill type must only be sent for custom events, got %q", p.FillType)
	}
	if !p.EndTime.Equal(form.Start.Add(time.Hour)) {
		t.Errorf("expected end to default to one hour after start, got %v", p.EndTime)
	}
	if p.CourseID == nil || *p.CourseID != "12" {
		t.Errorf("expected course id \"12\", got %v", p.CourseID)
	}
	if *refreshes != 1 {
		t.Errorf("expected 1 refresh, got %d", *refreshes)
	}
}

func TestCreateEventCustomKeepsFillType(t *testing.T) {
	api := newFakeAPI()
	c, _ := newCalendar(api, &fakeDialog{})

	form := validEventForm()
	form.Type = "custom"
	form.FillType = studyflow.FillPartial
	form.Color = "#123456"

	if _, err := c.CreateEvent(form); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if api.lastEvent.FillType != studyflow.FillPartial || api.lastEvent.Color != "#123456" {
		t.Errorf("unexpected payload %+v", api.lastEvent)
	}
	if api.lastEvent.CourseID != nil {
		t.Errorf("expected no course id, got %v", *api.lastEvent.CourseID)
	}
}

func TestCreateEventRejectsReversedRange(t *testing.T) {
	api := newFakeAPI()
	dialog := &fakeDialog{}
	c, _ := newCalendar(api, dialog)

	form := validEventForm()
	form.End = form.Start.Add(-time.Hour)

	if _, err := c.CreateEvent(form); err == nil {
		t.Fatal("expected validation error")
	}
	if api.writes() != 0 {
		t.Errorf("expected no request")
	}
	if dialog.lastAlert() != orderMessage {
		t.Errorf("expected %q, got %q", orderMessage, dialog.lastAlert())
	}
}

func TestUpdateEventRefreshesOnFailure(t *testing.T) {
	api := newFakeAPI()
	api.err = errServer
	dialog := &fakeDialog{}
	c, refreshes := newCalendar(api, dialog)

	if _, err := c.UpdateEvent(5, validEventForm()); err == nil {
		t.Fatal("expected error")
	}
	if *refreshes != 1 {
		t.Errorf("expected refresh regardless of outcome, got %d", *refreshes)
	}
	if dialog.lastAlert() != saveEventFailedPref+"boom" {
		t.Errorf("unexpected alert %q", dialog.lastAlert())
	}
}

func TestDeleteEventRequiresConfirmation(t *testing.T) {
	api := newFakeAPI()
	dialog := &fakeDialog{answer: false}
	c, refreshes := newCalendar(api, dialog)

	deleted, err := c.DeleteEvent(9)
	if err != nil || deleted {
		t.Fatalf("expected declined delete, got %v %v", deleted, err)
	}
	if api.calls["DeleteEvent"] != 0 {
		t.Errorf("request issued without confirmation")
	}
	if len(dialog.prompts) != 1 || dialog.prompts[0] != deleteEventPrompt {
		t.Errorf("unexpected prompts %v", dialog.prompts)
	}

	dialog.answer = true
	deleted, err = c.DeleteEvent(9)
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v %v", deleted, err)
	}
	if api.calls["DeleteEvent"] != 1 || *refreshes != 1 {
		t.Errorf("expected one delete and one refresh, got %v / %d", api.calls, *refreshes)
	}
}

func TestWritesRejectedWhileInFlight(t *testing.T) {
	api := newFakeAPI()
	dialog := &fakeDialog{answer: true}
	c, _ := newCalendar(api, dialog)

	var nested error
	dialog.onConfirm = func() {
		_, nested = c.CreateEvent(validEventForm())
	}

	if _, err := c.DeleteEvent(1); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if !errors.Is(nested, ErrBusy) {
		t.Errorf("expected ErrBusy for overlapping write, got %v", nested)
	}
	if api.calls["CreateEvent"] != 0 {
		t.Errorf("overlapping write reached the server")
	}

	dialog.onConfirm = nil
	if _, err := c.CreateEvent(validEventForm()); err != nil {
		t.Errorf("expected lock to be released, got %v", err)
	}
}

func TestLoadUpcoming(t *testing.T) {
	api := newFakeAPI()
	api.upcoming = []studyflow.UpcomingEvent{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	c, _ := newCalendar(api, &fakeDialog{})

	events, err := c.LoadUpcoming(2)
	if err != nil || len(events) != 2 {
		t.Errorf("expected 2 upcoming events, got %d (%v)", len(events), err)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(errServer); got != "boom" {
		t.Errorf("expected server message, got %q", got)
	}
	if got := UserMessage(errors.New("dial tcp: refused")); got != "dial tcp: refused" {
		t.Errorf("expected error text, got %q", got)
	}
}

func TestFindEventIgnoresViewFilters(t *testing.T) {
	api := newFakeAPI()
	api.events = []studyflow.Event{
		{ID: 7, Title: "Thesis draft", Type: "deadline"},
		{ID: 8, Title: "Analysis", Type: "lecture"},
		{ID: 9, Title: "Midterm", Type: "exam"},
	}
	c, _ := newCalendar(api, &fakeDialog{})
	c.SetTypes([]string{"lecture"})
	c.SetCourseFilter("analysis")

	for _, id := range []int64{7, 9} {
		e, err := c.FindEvent(id)
		if err != nil {
			t.Fatalf("FindEvent(%d) failed: %v", id, err)
		}
		if e.ID != id {
			t.Errorf("FindEvent(%d) returned #%d", id, e.ID)
		}
	}
	if !reflect.DeepEqual(api.lastQuery, studyflow.EventQuery{}) {
		t.Errorf("expected an unscoped query, got %+v", api.lastQuery)
	}

	if _, err := c.FindEvent(42); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestUpdateDeadlineTypedEvent(t *testing.T) {
	api := newFakeAPI()
	dialog := &fakeDialog{}
	c, _ := newCalendar(api, dialog)

	start := time.Date(2025, time.June, 30, 23, 0, 0, 0, time.Local)
	form := FormFromEvent(studyflow.Event{
		ID:    7,
		Title: "Thesis draft",
		Start: studyflow.NewLocalTime(start),
		End:   studyflow.NewLocalTime(start.Add(time.Hour)),
		Type:  "deadline",
	})
	form.Title = "Thesis final"

	if _, err := c.UpdateEvent(7, form); err != nil {
		t.Fatalf("UpdateEvent failed: %v (alerts %v)", err, dialog.alerts)
	}
	if api.calls["UpdateEvent"] != 1 {
		t.Fatalf("expected one update request, got %d", api.calls["UpdateEvent"])
	}
	if api.lastEvent.Type != "deadline" || api.lastEvent.Title != "Thesis final" {
		t.Errorf("unexpected payload %+v", api.lastEvent)
	}
	if api.lastEvent.Color != DeadlineColor {
		t.Errorf("expected deadline color, got %s", api.lastEvent.Color)
	}
}

func TestUpdateEventUnknownType(t *testing.T) {
	api := newFakeAPI()
	dialog := &fakeDialog{}
	c, _ := newCalendar(api, dialog)

	form := validEventForm()
	form.Type = "holiday"

	_, err := c.UpdateEvent(3, form)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if dialog.lastAlert() != unknownTypePref+"holiday" {
		t.Errorf("unexpected alert %q", dialog.lastAlert())
	}
	if api.writes() != 0 {
		t.Errorf("expected no request, got %d writes", api.writes())
	}
}

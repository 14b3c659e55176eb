package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"studyctl/pkg/studyflow"

	"go.uber.org/zap"
)

const (
	missingEventFields  = "Please fill in all required fields: Title, Start Time, and Type."
	deleteEventPrompt   = "Delete this event? This action cannot be undone."
	defaultEventLength  = time.Hour
	loadEventsFailed    = "Could not load events."
	loadUpcomingFailed  = "Could not load upcoming events."
	saveEventFailedPref = "Could not save event: "
	unknownTypePref     = "Unsupported event type: "
)

// ErrEventNotFound is returned by FindEvent when the server has no event with the id.
var ErrEventNotFound = errors.New("event not found")

// Range limits the events loaded by the calendar. Zero bounds are left open.
type Range struct {
	Start time.Time
	End   time.Time
}

// Week returns the Monday-to-Monday range containing t.
func Week(t time.Time) Range {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
	return Range{Start: start, End: start.AddDate(0, 0, 7)}
}

// CalendarController loads, filters and edits calendar events.
type CalendarController struct {
	api     CalendarAPI
	dialog  Dialog
	logger  *zap.Logger
	refresh func()
	writes  inflight

	// CourseFilter is the free-text course filter sent with every load.
	CourseFilter string
	// Types are the checked event types.
	Types []string
}

// NewCalendarController creates a calendar controller with all event types checked.
// refresh is called after every write that should redraw the view.
func NewCalendarController(api CalendarAPI, dialog Dialog, logger *zap.Logger, refresh func()) *CalendarController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarController{
		api:     api,
		dialog:  dialog,
		logger:  logger,
		refresh: refresh,
		Types:   append([]string(nil), studyflow.EventTypes...),
	}
}

// SetCourseFilter replaces the course filter text
func (c *CalendarController) SetCourseFilter(text string) {
	c.CourseFilter = text
}

// SetTypes replaces the checked event types
func (c *CalendarController) SetTypes(types []string) {
	c.Types = append([]string(nil), types...)
}

// LoadEvents fetches the events in r and keeps those of a checked type.
// A failed read is alerted and yields an empty list together with the error.
func (c *CalendarController) LoadEvents(r Range) ([]studyflow.Event, error) {
	events, err := c.api.FetchEvents(studyflow.EventQuery{
		Start:  r.Start,
		End:    r.End,
		Course: c.CourseFilter,
	})
	if err != nil {
		c.logger.Error("loading events failed", zap.Error(err))
		c.dialog.Alert(loadEventsFailed)
		return []studyflow.Event{}, err
	}

	filtered := FilterByTypes(events, c.Types)
	c.logger.Debug("events loaded",
		zap.Int("received", len(events)),
		zap.Int("shown", len(filtered)),
		zap.Strings("types", c.Types))
	return filtered, nil
}

// LoadUpcoming fetches the next limit events.
func (c *CalendarController) LoadUpcoming(limit int) ([]studyflow.UpcomingEvent, error) {
	events, err := c.api.FetchUpcoming(limit)
	if err != nil {
		c.logger.Error("loading upcoming events failed", zap.Error(err))
		c.dialog.Alert(loadUpcomingFailed)
		return []studyflow.UpcomingEvent{}, err
	}
	return events, nil
}

// FindEvent looks up event id among all of the user's events, ignoring the
// type and course filters of the view.
func (c *CalendarController) FindEvent(id int64) (studyflow.Event, error) {
	events, err := c.api.FetchEvents(studyflow.EventQuery{})
	if err != nil {
		c.logger.Error("loading events failed", zap.Int64("id", id), zap.Error(err))
		c.dialog.Alert(loadEventsFailed)
		return studyflow.Event{}, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return studyflow.Event{}, fmt.Errorf("event #%d: %w", id, ErrEventNotFound)
}

// CreateEvent validates the form and posts a new event. The view is
// refreshed only when the server accepted it.
func (c *CalendarController) CreateEvent(form EventForm) (*studyflow.Event, error) {
	release, err := c.writes.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	payload, err := c.eventPayload(form)
	if err != nil {
		return nil, err
	}

	created, err := c.api.CreateEvent(payload)
	if err != nil {
		c.logger.Error("creating event failed", zap.String("title", payload.Title), zap.Error(err))
		c.dialog.Alert(saveEventFailedPref + UserMessage(err))
		return nil, err
	}

	c.logger.Info("event created", zap.String("title", payload.Title))
	refreshIfSet(c.refresh)
	return created, nil
}

// UpdateEvent validates the form and posts it as the new state of event id.
// The view is refreshed once the request completed, whether it succeeded or not.
func (c *CalendarController) UpdateEvent(id int64, form EventForm) (*studyflow.Event, error) {
	release, err := c.writes.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	// deadline rows are edited like exams but keep their server type
	keepDeadline := strings.EqualFold(strings.TrimSpace(form.Type), studyflow.TypeDeadline)
	if keepDeadline {
		form.Type = studyflow.TypeExam
	} else if t := strings.TrimSpace(form.Type); t != "" && !isEventType(t) {
		msg := unknownTypePref + t
		c.dialog.Alert(msg)
		return nil, &ValidationError{Message: msg, Fields: []string{"Type"}}
	}

	payload, err := c.eventPayload(form)
	if err != nil {
		return nil, err
	}
	if keepDeadline {
		payload.Type = studyflow.TypeDeadline
	}

	updated, err := c.api.UpdateEvent(id, payload)
	refreshIfSet(c.refresh)
	if err != nil {
		c.logger.Error("updating event failed", zap.Int64("id", id), zap.Error(err))
		c.dialog.Alert(saveEventFailedPref + UserMessage(err))
		return nil, err
	}
	return updated, nil
}

// DeleteEvent asks for confirmation and removes event id. It reports whether
// the event was deleted; a declined confirmation is not an error.
func (c *CalendarController) DeleteEvent(id int64) (bool, error) {
	release, err := c.writes.acquire()
	if err != nil {
		return false, err
	}
	defer release()

	ok, err := c.dialog.Confirm(deleteEventPrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := c.api.DeleteEvent(id); err != nil {
		c.logger.Error("deleting event failed", zap.Int64("id", id), zap.Error(err))
		c.dialog.Alert("Could not delete event: " + UserMessage(err))
		return false, err
	}

	refreshIfSet(c.refresh)
	return true, nil
}

func (c *CalendarController) eventPayload(form EventForm) (studyflow.EventPayload, error) {
	form = normalizeEvent(form)
	if err := check(form, missingEventFields); err != nil {
		c.dialog.Alert(err.Error())
		return studyflow.EventPayload{}, err
	}

	end := form.End
	if end.IsZero() {
		end = form.Start.Add(defaultEventLength)
	}
	color := form.Color
	if color == "" {
		color = DefaultTypeColor(form.Type)
	}

	p := studyflow.EventPayload{
		Title:     form.Title,
		StartTime: studyflow.NewLocalTime(form.Start),
		EndTime:   studyflow.NewLocalTime(end),
		Location:  form.Location,
		Type:      form.Type,
		Color:     color,
		FillType:  form.FillType,
	}
	if form.CourseID > 0 {
		id := strconv.FormatInt(form.CourseID, 10)
		p.CourseID = &id
	}
	return p, nil
}

func isEventType(t string) bool {
	for _, known := range studyflow.EventTypes {
		if strings.EqualFold(t, known) {
			return true
		}
	}
	return false
}

// FormFromEvent pre-fills an edit form with the current state of e.
func FormFromEvent(e studyflow.Event) EventForm {
	return EventForm{
		Title:    e.Title,
		Start:    e.Start.Time,
		End:      e.End.Time,
		Location: e.Location,
		Type:     e.Type,
		Color:    e.Color,
		CourseID: e.CourseID.ID(),
		FillType: e.FillType,
	}
}

// UserMessage is the text shown to the user for err: the server's message
// for API errors and the error text otherwise.
func UserMessage(err error) string {
	var apiErr *studyflow.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

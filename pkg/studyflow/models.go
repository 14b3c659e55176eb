package studyflow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Event types known to the server. The server may also report "deadline" for
// events created through the deadline endpoints.
const (
	TypeLecture    = "lecture"
	TypeAssignment = "assignment"
	TypeExam       = "exam"
	TypeSelfStudy  = "self-study"
	TypeCustom     = "custom"
	TypeDeadline   = "deadline"
)

// EventTypes lists the types a user can pick when creating an event
var EventTypes = []string{TypeLecture, TypeAssignment, TypeExam, TypeSelfStudy, TypeCustom}

// FillPartial marks a custom event that renders half filled
const FillPartial = "partial-fill"

// wireLayout is the zone-less local date-time format the server speaks
const wireLayout = "2006-01-02T15:04:05"

var inputLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// LocalTime is a timestamp without zone information, interpreted in the local zone.
type LocalTime struct {
	time.Time
}

// NewLocalTime wraps t.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t}
}

// ParseLocal parses the date-time formats used by the server and by user input.
func ParseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date-time %q", s)
}

// String formats the time the way the server expects it, or "" when unset.
func (t LocalTime) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(wireLayout)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(wireLayout))
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = LocalTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	if s == "" {
		*t = LocalTime{}
		return nil
	}
	parsed, err := ParseLocal(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// CourseRef is a course id as carried on events. The server stores it as a
// string but older payloads send a number.
type CourseRef string

func (r *CourseRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = CourseRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("course reference must be a string or number: %w", err)
	}
	*r = CourseRef(n.String())
	return nil
}

// ID returns the reference as a numeric course id, or 0 when unset or malformed.
func (r CourseRef) ID() int64 {
	id, err := strconv.ParseInt(string(r), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Event is a calendar entry as returned by /calendar/events and /courses/events/{id}
type Event struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Start             LocalTime `json:"start"`
	End               LocalTime `json:"end"`
	Location          string    `json:"location,omitempty"`
	Type              string    `json:"type"`
	Color             string    `json:"color"`
	Description       string    `json:"description,omitempty"`
	CourseID          CourseRef `json:"courseId,omitempty"`
	FillType          string    `json:"fillType,omitempty"`
	Completed         bool      `json:"completed"`
	IsDeadline        bool      `json:"isDeadline"`
	Points            int       `json:"points"`
	GeneratedByEngine bool      `json:"generatedByEngine"`
	Duration          int       `json:"duration"`
}

// UnmarshalJSON accepts both the calendar feed shape (start/end) and the
// entity shape (startTime/endTime) returned by the create and course endpoints.
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	aux := struct {
		*alias
		StartTime LocalTime `json:"startTime"`
		EndTime   LocalTime `json:"endTime"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.Start.IsZero() {
		e.Start = aux.StartTime
	}
	if e.End.IsZero() {
		e.End = aux.EndTime
	}
	return nil
}

// EventPayload is the body of /calendar/create and /calendar/update/{id}
type EventPayload struct {
	Title     string    `json:"title"`
	StartTime LocalTime `json:"startTime"`
	EndTime   LocalTime `json:"endTime"`
	Location  string    `json:"location,omitempty"`
	Type      string    `json:"type"`
	Color     string    `json:"color,omitempty"`
	CourseID  *string   `json:"courseId"`
	FillType  string    `json:"fillType,omitempty"`
}

// EventQuery scopes /calendar/events
type EventQuery struct {
	Start  time.Time
	End    time.Time
	Course string
}

// UpcomingEvent is an entry of /calendar/upcoming
type UpcomingEvent struct {
	Title     string    `json:"title"`
	StartTime LocalTime `json:"startTime"`
}

// Course is a user-owned grouping of events with progress tracking
type Course struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Color            string  `json:"color,omitempty"`
	Difficulty       int     `json:"difficulty,omitempty"`
	ProgressPercent  float64 `json:"progressPercent"`
	WorkloadTarget   int     `json:"workloadTarget"`
	SelfStudyHours   int     `json:"selfStudyHours"`
	ProgressFraction float64 `json:"progressFraction"`
}

// CoursePayload is the body of /courses/create and /courses/update/{id}
type CoursePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color,omitempty"`
	Difficulty  int    `json:"difficulty,omitempty"`
}

// CourseEventLink is the body of /courses/events/add and /courses/events/remove
type CourseEventLink struct {
	CourseID int64 `json:"courseId"`
	EventID  int64 `json:"eventId"`
}

// Deadline is a row of /api/courses/{id}/deadlines
type Deadline struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	StartTime       LocalTime `json:"startTime"`
	Points          int       `json:"points"`
	StudyTimeNeeded int       `json:"studyTimeNeeded"`
	StudyStart      LocalTime `json:"studyStart"`
}

// DeadlinePayload is the body of /deadlines/create and /deadlines/update/{id}
type DeadlinePayload struct {
	Title           string    `json:"title"`
	StartTime       LocalTime `json:"startTime"`
	EndTime         LocalTime `json:"endTime"`
	Type            string    `json:"type"`
	Color           string    `json:"color"`
	IsDeadline      bool      `json:"isDeadline"`
	Points          int       `json:"points"`
	StudyTimeNeeded int       `json:"studyTimeNeeded"`
	StudyStart      LocalTime `json:"studyStart"`
	Description     string    `json:"description,omitempty"`
}

// Session is a planned self-study block from /api/courses/{id}/selfstudy
type Session struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	StartTime            LocalTime `json:"startTime"`
	EndTime              LocalTime `json:"endTime"`
	RelatedDeadlineID    *int64    `json:"relatedDeadlineId"`
	RelatedDeadlineTitle string    `json:"relatedDeadlineTitle,omitempty"`
}

// SessionPayload is the body of /courses/{id}/add-selfstudy
type SessionPayload struct {
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Color             string    `json:"color"`
	StartTime         LocalTime `json:"startTime"`
	EndTime           LocalTime `json:"endTime"`
	RelatedDeadlineID int64     `json:"relatedDeadlineId"`
}

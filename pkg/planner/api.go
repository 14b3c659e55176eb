package planner

import (
	"io"

	"studyctl/pkg/studyflow"
)

// CalendarAPI is the part of the server API used by the calendar view.
// *studyflow.Client satisfies it.
type CalendarAPI interface {
	FetchEvents(q studyflow.EventQuery) ([]studyflow.Event, error)
	FetchUpcoming(limit int) ([]studyflow.UpcomingEvent, error)
	CreateEvent(p studyflow.EventPayload) (*studyflow.Event, error)
	UpdateEvent(id int64, p studyflow.EventPayload) (*studyflow.Event, error)
	DeleteEvent(id int64) error
}

// CourseAPI is used by the course panel
type CourseAPI interface {
	FetchCourses() ([]studyflow.Course, error)
	FetchCourse(id int64) (*studyflow.Course, error)
	FetchCourseDescription(id int64) (string, error)
	CreateCourse(p studyflow.CoursePayload) (*studyflow.Course, error)
	UpdateCourse(id int64, p studyflow.CoursePayload) error
	DeleteCourse(id int64) error
	FetchCourseEvents(id int64) ([]studyflow.Event, error)
	AddEventToCourse(courseID, eventID int64) error
	RemoveEventFromCourse(courseID, eventID int64) error
	FetchDeadlines(courseID int64) ([]studyflow.Deadline, error)
}

// DeadlineAPI is used by the deadline and self-study panel
type DeadlineAPI interface {
	FetchDeadlines(courseID int64) ([]studyflow.Deadline, error)
	CreateDeadline(courseID int64, p studyflow.DeadlinePayload) (*studyflow.Event, error)
	UpdateDeadline(id int64, p studyflow.DeadlinePayload) (*studyflow.Event, error)
	DeleteDeadline(id int64) error
	FetchSessions(courseID int64) ([]studyflow.Session, error)
	CreateSession(courseID int64, p studyflow.SessionPayload) error
	AutoPlan(courseID, deadlineID int64) (string, error)
}

// UploadAPI is used by the calendar import
type UploadAPI interface {
	UploadCalendar(filename string, r io.Reader) (string, error)
}

var (
	_ CalendarAPI = (*studyflow.Client)(nil)
	_ CourseAPI   = (*studyflow.Client)(nil)
	_ DeadlineAPI = (*studyflow.Client)(nil)
	_ UploadAPI   = (*studyflow.Client)(nil)
)

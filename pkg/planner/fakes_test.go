package planner

import (
	"errors"
	"io"

	"studyctl/pkg/studyflow"
)

// fakeDialog records prompts and answers every confirmation with answer
type fakeDialog struct {
	answer    bool
	prompts   []string
	alerts    []string
	notices   []string
	onConfirm func()
}

func (d *fakeDialog) Confirm(prompt string) (bool, error) {
	d.prompts = append(d.prompts, prompt)
	if d.onConfirm != nil {
		d.onConfirm()
	}
	return d.answer, nil
}

func (d *fakeDialog) Alert(message string)  { d.alerts = append(d.alerts, message) }
func (d *fakeDialog) Notify(message string) { d.notices = append(d.notices, message) }

func (d *fakeDialog) lastAlert() string {
	if len(d.alerts) == 0 {
		return ""
	}
	return d.alerts[len(d.alerts)-1]
}

// fakeAPI implements every planner API interface and counts calls per method
type fakeAPI struct {
	calls map[string]int
	err   error

	events    []studyflow.Event
	upcoming  []studyflow.UpcomingEvent
	courses   []studyflow.Course
	course    *studyflow.Course
	deadlines []studyflow.Deadline
	sessions  []studyflow.Session

	lastQuery         studyflow.EventQuery
	lastEvent         studyflow.EventPayload
	lastCourse        studyflow.CoursePayload
	lastDeadline      studyflow.DeadlinePayload
	lastDeadlineID    int64
	lastSession       studyflow.SessionPayload
	lastUploadName    string
	lastUploadBody    string
	description       string
	descriptionErr    error
	deadlinesFetchErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

var errServer = &studyflow.APIError{Status: 500, Path: "/x", Message: "boom"}

func (f *fakeAPI) hit(name string) error {
	f.calls[name]++
	return f.err
}

func (f *fakeAPI) writes() int {
	n := 0
	for _, name := range []string{
		"CreateEvent", "UpdateEvent", "DeleteEvent",
		"CreateCourse", "UpdateCourse", "DeleteCourse", "AddEventToCourse", "RemoveEventFromCourse",
		"CreateDeadline", "UpdateDeadline", "DeleteDeadline", "CreateSession", "AutoPlan", "UploadCalendar",
	} {
		n += f.calls[name]
	}
	return n
}

func (f *fakeAPI) FetchEvents(q studyflow.EventQuery) ([]studyflow.Event, error) {
	f.lastQuery = q
	if err := f.hit("FetchEvents"); err != nil {
		return nil, err
	}
	return f.events, nil
}

func (f *fakeAPI) FetchUpcoming(limit int) ([]studyflow.UpcomingEvent, error) {
	if err := f.hit("FetchUpcoming"); err != nil {
		return nil, err
	}
	if limit < len(f.upcoming) {
		return f.upcoming[:limit], nil
	}
	return f.upcoming, nil
}

func (f *fakeAPI) CreateEvent(p studyflow.EventPayload) (*studyflow.Event, error) {
	f.lastEvent = p
	if err := f.hit("CreateEvent"); err != nil {
		return nil, err
	}
	return &studyflow.Event{ID: 1, Title: p.Title, Type: p.Type}, nil
}

func (f *fakeAPI) UpdateEvent(id int64, p studyflow.EventPayload) (*studyflow.Event, error) {
	f.lastEvent = p
	if err := f.hit("UpdateEvent"); err != nil {
		return nil, err
	}
	return &studyflow.Event{ID: id, Title: p.Title, Type: p.Type}, nil
}

func (f *fakeAPI) DeleteEvent(id int64) error { return f.hit("DeleteEvent") }

func (f *fakeAPI) FetchCourses() ([]studyflow.Course, error) {
	if err := f.hit("FetchCourses"); err != nil {
		return nil, err
	}
	return f.courses, nil
}

func (f *fakeAPI) FetchCourse(id int64) (*studyflow.Course, error) {
	if err := f.hit("FetchCourse"); err != nil {
		return nil, err
	}
	if f.course == nil {
		return nil, errors.New("not found")
	}
	c := *f.course
	return &c, nil
}

func (f *fakeAPI) FetchCourseDescription(id int64) (string, error) {
	f.calls["FetchCourseDescription"]++
	return f.description, f.descriptionErr
}

func (f *fakeAPI) CreateCourse(p studyflow.CoursePayload) (*studyflow.Course, error) {
	f.lastCourse = p
	if err := f.hit("CreateCourse"); err != nil {
		return nil, err
	}
	return &studyflow.Course{ID: 7, Name: p.Name, Color: p.Color}, nil
}

func (f *fakeAPI) UpdateCourse(id int64, p studyflow.CoursePayload) error {
	f.lastCourse = p
	return f.hit("UpdateCourse")
}

func (f *fakeAPI) DeleteCourse(id int64) error { return f.hit("DeleteCourse") }

func (f *fakeAPI) FetchCourseEvents(id int64) ([]studyflow.Event, error) {
	if err := f.hit("FetchCourseEvents"); err != nil {
		return nil, err
	}
	return f.events, nil
}

func (f *fakeAPI) AddEventToCourse(courseID, eventID int64) error {
	return f.hit("AddEventToCourse")
}

func (f *fakeAPI) RemoveEventFromCourse(courseID, eventID int64) error {
	return f.hit("RemoveEventFromCourse")
}

func (f *fakeAPI) FetchDeadlines(courseID int64) ([]studyflow.Deadline, error) {
	f.calls["FetchDeadlines"]++
	if f.deadlinesFetchErr != nil {
		return nil, f.deadlinesFetchErr
	}
	return f.deadlines, nil
}

func (f *fakeAPI) CreateDeadline(courseID int64, p studyflow.DeadlinePayload) (*studyflow.Event, error) {
	f.lastDeadline = p
	if err := f.hit("CreateDeadline"); err != nil {
		return nil, err
	}
	return &studyflow.Event{ID: 3, Title: p.Title}, nil
}

func (f *fakeAPI) UpdateDeadline(id int64, p studyflow.DeadlinePayload) (*studyflow.Event, error) {
	f.lastDeadline = p
	f.lastDeadlineID = id
	if err := f.hit("UpdateDeadline"); err != nil {
		return nil, err
	}
	return &studyflow.Event{ID: id, Title: p.Title}, nil
}

func (f *fakeAPI) DeleteDeadline(id int64) error { return f.hit("DeleteDeadline") }

func (f *fakeAPI) FetchSessions(courseID int64) ([]studyflow.Session, error) {
	f.calls["FetchSessions"]++
	return f.sessions, nil
}

func (f *fakeAPI) CreateSession(courseID int64, p studyflow.SessionPayload) error {
	f.lastSession = p
	return f.hit("CreateSession")
}

func (f *fakeAPI) AutoPlan(courseID, deadlineID int64) (string, error) {
	if err := f.hit("AutoPlan"); err != nil {
		return "", err
	}
	return "planned", nil
}

func (f *fakeAPI) UploadCalendar(filename string, r io.Reader) (string, error) {
	f.lastUploadName = filename
	body, _ := io.ReadAll(r)
	f.lastUploadBody = string(body)
	if err := f.hit("UploadCalendar"); err != nil {
		return "", err
	}
	return "success", nil
}

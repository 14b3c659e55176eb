package planner

import (
	"fmt"
	"strings"

	"studyctl/pkg/studyflow"

	"go.uber.org/zap"
)

const (
	loadCoursesFailed   = "Could not load courses."
	createCourseFailed  = "Could not create course."
	deleteCourseFailed  = "Could not delete course."
	missingCourseName   = "Please enter a course name."
	emptyCourseName     = "Course name cannot be empty."
	deleteCoursePrompt  = "Are you sure you want to delete this course? This cannot be undone."
	updateCourseFailPre = "Could not update course: "
)

// Tab names of the course detail panel
const (
	TabOverview  = "overview"
	TabDeadlines = "deadlines"
	TabLectures  = "lectures"
	TabSettings  = "settings"
)

// Tabs lists the course detail tabs in display order
var Tabs = []string{TabOverview, TabDeadlines, TabLectures, TabSettings}

// CourseDetail is what the detail panel shows. Deadlines and Lectures are
// only filled once their tab was opened.
type CourseDetail struct {
	Course      *studyflow.Course
	Description string
	Deadlines   []studyflow.Deadline
	Lectures    []studyflow.Event
	// DeadlinesErr is shown inline instead of the deadline rows
	DeadlinesErr error

	deadlinesLoaded bool
	lecturesLoaded  bool
}

// CourseController manages the course list and the detail panel of the open course.
type CourseController struct {
	api     CourseAPI
	dialog  Dialog
	logger  *zap.Logger
	refresh func()
	writes  inflight

	// CurrentID is the course opened last, 0 when none is open.
	CurrentID int64
	detail    *CourseDetail
}

// NewCourseController creates a course controller. refresh is called after
// every write that changes the course list.
func NewCourseController(api CourseAPI, dialog Dialog, logger *zap.Logger, refresh func()) *CourseController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseController{api: api, dialog: dialog, logger: logger, refresh: refresh}
}

// LoadCourses fetches the user's courses and prepares their list entries.
func (c *CourseController) LoadCourses() ([]CourseEntry, error) {
	courses, err := c.api.FetchCourses()
	if err != nil {
		c.logger.Error("loading courses failed", zap.Error(err))
		c.dialog.Alert(loadCoursesFailed)
		return []CourseEntry{}, err
	}

	entries := make([]CourseEntry, 0, len(courses))
	for _, course := range courses {
		entries = append(entries, NewCourseEntry(course))
	}
	return entries, nil
}

// CreateCourse creates a course with the default color.
func (c *CourseController) CreateCourse(name, description string) (*studyflow.Course, error) {
	release, err := c.writes.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	form := CourseForm{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Color:       DefaultCourseColor,
	}
	if err := check(form, missingCourseName); err != nil {
		c.dialog.Alert(err.Error())
		return nil, err
	}

	created, err := c.api.CreateCourse(studyflow.CoursePayload{
		Name:        form.Name,
		Description: form.Description,
		Color:       form.Color,
	})
	if err != nil {
		c.logger.Error("creating course failed", zap.String("name", form.Name), zap.Error(err))
		c.dialog.Alert(createCourseFailed)
		return nil, err
	}

	c.logger.Info("course created", zap.String("name", form.Name))
	refreshIfSet(c.refresh)
	return created, nil
}

// UpdateCourse saves the settings tab of course id. The list is refreshed
// once the request completed, whether it succeeded or not.
func (c *CourseController) UpdateCourse(id int64, form CourseForm) error {
	release, err := c.writes.acquire()
	if err != nil {
		return err
	}
	defer release()

	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	if err := check(form, emptyCourseName); err != nil {
		c.dialog.Alert(err.Error())
		return err
	}

	err = c.api.UpdateCourse(id, studyflow.CoursePayload{
		Name:        form.Name,
		Description: form.Description,
		Color:       form.Color,
		Difficulty:  form.Difficulty,
	})
	refreshIfSet(c.refresh)
	if err != nil {
		c.logger.Error("updating course failed", zap.Int64("id", id), zap.Error(err))
		c.dialog.Alert(updateCourseFailPre + UserMessage(err))
		return err
	}

	if c.CurrentID == id {
		// settings changed, overview must be fetched again
		c.detail = nil
	}
	return nil
}

// DeleteCourse asks for confirmation and removes course id together with its
// events. It reports whether the course was deleted.
func (c *CourseController) DeleteCourse(id int64) (bool, error) {
	release, err := c.writes.acquire()
	if err != nil {
		return false, err
	}
	defer release()

	ok, err := c.dialog.Confirm(deleteCoursePrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := c.api.DeleteCourse(id); err != nil {
		c.logger.Error("deleting course failed", zap.Int64("id", id), zap.Error(err))
		c.dialog.Alert(deleteCourseFailed)
		return false, err
	}

	if c.CurrentID == id {
		c.CurrentID = 0
		c.detail = nil
	}
	refreshIfSet(c.refresh)
	return true, nil
}

// Open makes id the current course and loads its overview.
func (c *CourseController) Open(id int64) (*CourseDetail, error) {
	course, err := c.api.FetchCourse(id)
	if err != nil {
		c.logger.Error("loading course failed", zap.Int64("id", id), zap.Error(err))
		c.dialog.Alert("Could not load course: " + UserMessage(err))
		return nil, err
	}

	c.CurrentID = id
	c.detail = &CourseDetail{Course: course, Description: course.Description}

	if desc, err := c.api.FetchCourseDescription(id); err != nil {
		c.logger.Warn("loading course description failed", zap.Int64("id", id), zap.Error(err))
	} else if desc != "" {
		c.detail.Description = desc
	}
	return c.detail, nil
}

// ShowTab returns the detail of the current course with the data of tab
// loaded. Each tab fetches at most once per opened course.
func (c *CourseController) ShowTab(tab string) (*CourseDetail, error) {
	if c.CurrentID == 0 {
		return nil, ErrNoCourse
	}
	if c.detail == nil {
		if _, err := c.Open(c.CurrentID); err != nil {
			return nil, err
		}
	}

	switch tab {
	case TabOverview, TabSettings:
	case TabDeadlines:
		if !c.detail.deadlinesLoaded {
			deadlines, err := c.api.FetchDeadlines(c.CurrentID)
			if err != nil {
				c.logger.Error("loading deadlines failed", zap.Int64("course", c.CurrentID), zap.Error(err))
				c.detail.DeadlinesErr = err
			} else {
				c.detail.Deadlines = deadlines
				c.detail.DeadlinesErr = nil
				c.detail.deadlinesLoaded = true
			}
		}
	case TabLectures:
		if !c.detail.lecturesLoaded {
			events, err := c.api.FetchCourseEvents(c.CurrentID)
			if err != nil {
				c.logger.Error("loading lectures failed", zap.Int64("course", c.CurrentID), zap.Error(err))
				c.dialog.Alert("Could not load lectures: " + UserMessage(err))
				return c.detail, err
			}
			c.detail.Lectures = FilterLectures(events)
			c.detail.lecturesLoaded = true
		}
	default:
		return nil, fmt.Errorf("unknown tab %q", tab)
	}
	return c.detail, nil
}

// SettingsForm pre-fills the settings tab from the current course.
func (c *CourseController) SettingsForm() (CourseForm, error) {
	if c.detail == nil || c.detail.Course == nil {
		return CourseForm{}, ErrNoCourse
	}
	course := c.detail.Course
	return CourseForm{
		Name:        course.Name,
		Description: c.detail.Description,
		Color:       course.Color,
		Difficulty:  course.Difficulty,
	}, nil
}

// CourseEvents lists all events assigned to course id.
func (c *CourseController) CourseEvents(id int64) ([]studyflow.Event, error) {
	events, err := c.api.FetchCourseEvents(id)
	if err != nil {
		c.logger.Error("loading course events failed", zap.Int64("course", id), zap.Error(err))
		c.dialog.Alert("Could not load course events: " + UserMessage(err))
		return []studyflow.Event{}, err
	}
	return events, nil
}

// AssignEvent attaches event eventID to course courseID.
func (c *CourseController) AssignEvent(courseID, eventID int64) error {
	return c.link(courseID, eventID, true)
}

// UnassignEvent detaches event eventID from course courseID.
func (c *CourseController) UnassignEvent(courseID, eventID int64) error {
	return c.link(courseID, eventID, false)
}

func (c *CourseController) link(courseID, eventID int64, add bool) error {
	release, err := c.writes.acquire()
	if err != nil {
		return err
	}
	defer release()

	if add {
		err = c.api.AddEventToCourse(courseID, eventID)
	} else {
		err = c.api.RemoveEventFromCourse(courseID, eventID)
	}
	if err != nil {
		c.logger.Error("changing course events failed",
			zap.Int64("course", courseID), zap.Int64("event", eventID), zap.Bool("add", add), zap.Error(err))
		c.dialog.Alert("Could not update course events: " + UserMessage(err))
		return err
	}

	if c.detail != nil && c.CurrentID == courseID {
		c.detail.lecturesLoaded = false
	}
	refreshIfSet(c.refresh)
	return nil
}

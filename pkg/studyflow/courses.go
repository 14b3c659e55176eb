package studyflow

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const coursesCacheKey = "courses"

// FetchCourses retrieves all courses of the current user. The list is reused
// for a short while unless a write happened in between.
func (c *Client) FetchCourses() ([]Course, error) {
	if cached, ok := c.cache.Get(coursesCacheKey); ok {
		courses := cached.([]Course)
		return append([]Course(nil), courses...), nil
	}

	var courses []Course
	if err := c.getJSON("/courses/user", nil, &courses); err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}

	c.cache.SetDefault(coursesCacheKey, append([]Course(nil), courses...))
	return courses, nil
}

// FetchCourse retrieves a single course with its progress figures
func (c *Client) FetchCourse(id int64) (*Course, error) {
	var course Course
	if err := c.getJSON(fmt.Sprintf("/courses/details/%d", id), nil, &course); err != nil {
		return nil, fmt.Errorf("failed to fetch course %d: %w", id, err)
	}
	return &course, nil
}

// FetchCourseDescription retrieves the free-text description of a course
func (c *Client) FetchCourseDescription(id int64) (string, error) {
	text, err := c.getText(fmt.Sprintf("/courses/description/%d", id))
	if err != nil {
		return "", fmt.Errorf("failed to fetch description of course %d: %w", id, err)
	}

	// Some server versions wrap the text as a JSON string or object
	var s string
	if json.Unmarshal([]byte(text), &s) == nil {
		return s, nil
	}
	var obj struct {
		Description string `json:"description"`
	}
	if json.Unmarshal([]byte(text), &obj) == nil {
		return obj.Description, nil
	}
	return text, nil
}

// CreateCourse stores a new course
func (c *Client) CreateCourse(p CoursePayload) (*Course, error) {
	var created Course
	if err := c.send(http.MethodPost, "/courses/create", nil, p, &created); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return &created, nil
}

// UpdateCourse replaces name, description, color and difficulty of course id
func (c *Client) UpdateCourse(id int64, p CoursePayload) error {
	if err := c.send(http.MethodPost, fmt.Sprintf("/courses/update/%d", id), nil, p, nil); err != nil {
		return fmt.Errorf("failed to update course %d: %w", id, err)
	}
	return nil
}

// DeleteCourse removes course id; the server removes its events as well
func (c *Client) DeleteCourse(id int64) error {
	if err := c.send(http.MethodDelete, fmt.Sprintf("/courses/delete/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}
	return nil
}

// FetchCourseEvents retrieves the events assigned to course id
func (c *Client) FetchCourseEvents(id int64) ([]Event, error) {
	var events []Event
	if err := c.getJSON(fmt.Sprintf("/courses/events/%d", id), nil, &events); err != nil {
		return nil, fmt.Errorf("failed to fetch events of course %d: %w", id, err)
	}
	return events, nil
}

// AddEventToCourse assigns an existing event to a course
func (c *Client) AddEventToCourse(courseID, eventID int64) error {
	link := CourseEventLink{CourseID: courseID, EventID: eventID}
	if err := c.send(http.MethodPost, "/courses/events/add", nil, link, nil); err != nil {
		return fmt.Errorf("failed to add event %d to course %d: %w", eventID, courseID, err)
	}
	return nil
}

// RemoveEventFromCourse unassigns an event from a course
func (c *Client) RemoveEventFromCourse(courseID, eventID int64) error {
	link := CourseEventLink{CourseID: courseID, EventID: eventID}
	if err := c.send(http.MethodPost, "/courses/events/remove", nil, link, nil); err != nil {
		return fmt.Errorf("failed to remove event %d from course %d: %w", eventID, courseID, err)
	}
	return nil
}

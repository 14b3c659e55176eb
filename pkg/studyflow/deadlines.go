package studyflow

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// FetchDeadlines retrieves the deadlines of a course
func (c *Client) FetchDeadlines(courseID int64) ([]Deadline, error) {
	var deadlines []Deadline
	if err := c.getJSON(fmt.Sprintf("/api/courses/%d/deadlines", courseID), nil, &deadlines); err != nil {
		return nil, fmt.Errorf("failed to fetch deadlines: %w", err)
	}
	return deadlines, nil
}

// CreateDeadline stores a deadline event and links it to the course
func (c *Client) CreateDeadline(courseID int64, p DeadlinePayload) (*Event, error) {
	query := url.Values{"courseId": {strconv.FormatInt(courseID, 10)}}

	var created Event
	if err := c.send(http.MethodPost, "/deadlines/create", query, p, &created); err != nil {
		return nil, fmt.Errorf("failed to create deadline: %w", err)
	}
	return &created, nil
}

// UpdateDeadline replaces the editable fields of deadline id
func (c *Client) UpdateDeadline(id int64, p DeadlinePayload) (*Event, error) {
	var updated Event
	if err := c.send(http.MethodPost, fmt.Sprintf("/deadlines/update/%d", id), nil, p, &updated); err != nil {
		return nil, fmt.Errorf("failed to update deadline %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteDeadline removes a deadline together with its self-study sessions
func (c *Client) DeleteDeadline(id int64) error {
	if err := c.send(http.MethodDelete, fmt.Sprintf("/deadlines/delete/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete deadline %d: %w", id, err)
	}
	return nil
}

// FetchSessions retrieves the self-study sessions of a course
func (c *Client) FetchSessions(courseID int64) ([]Session, error) {
	var sessions []Session
	if err := c.getJSON(fmt.Sprintf("/api/courses/%d/selfstudy", courseID), nil, &sessions); err != nil {
		return nil, fmt.Errorf("failed to fetch self-study sessions: %w", err)
	}
	return sessions, nil
}

// CreateSession adds a manual self-study session to a course
func (c *Client) CreateSession(courseID int64, p SessionPayload) error {
	if err := c.send(http.MethodPost, fmt.Sprintf("/courses/%d/add-selfstudy", courseID), nil, p, nil); err != nil {
		return fmt.Errorf("failed to add self-study session: %w", err)
	}
	return nil
}

// AutoPlan asks the server to generate self-study sessions for a deadline
func (c *Client) AutoPlan(courseID, deadlineID int64) (string, error) {
	query := url.Values{"deadlineId": {strconv.FormatInt(deadlineID, 10)}}
	text, err := c.sendText(http.MethodPost, fmt.Sprintf("/courses/%d/autoplan", courseID), query)
	if err != nil {
		return "", fmt.Errorf("auto planning failed: %w", err)
	}
	return text, nil
}

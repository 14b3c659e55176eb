package studyflow

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// FetchEvents retrieves the user's events, scoped by range and course text when set
func (c *Client) FetchEvents(q EventQuery) ([]Event, error) {
	query := url.Values{}
	if !q.Start.IsZero() {
		query.Set("start", q.Start.Format(wireLayout))
	}
	if !q.End.IsZero() {
		query.Set("end", q.End.Format(wireLayout))
	}
	if q.Course != "" {
		query.Set("course", q.Course)
	}

	var events []Event
	if err := c.getJSON("/calendar/events", query, &events); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// FetchUpcoming retrieves the next limit events starting after now
func (c *Client) FetchUpcoming(limit int) ([]UpcomingEvent, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var events []UpcomingEvent
	if err := c.getJSON("/calendar/upcoming", query, &events); err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming events: %w", err)
	}
	return events, nil
}

// CreateEvent stores a new event
func (c *Client) CreateEvent(p EventPayload) (*Event, error) {
	var created Event
	if err := c.send(http.MethodPost, "/calendar/create", nil, p, &created); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &created, nil
}

// UpdateEvent replaces the editable fields of event id
func (c *Client) UpdateEvent(id int64, p EventPayload) (*Event, error) {
	var updated Event
	path := fmt.Sprintf("/calendar/update/%d", id)
	if err := c.send(http.MethodPost, path, nil, p, &updated); err != nil {
		return nil, fmt.Errorf("failed to update event %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteEvent removes event id
func (c *Client) DeleteEvent(id int64) error {
	path := fmt.Sprintf("/calendar/delete/%d", id)
	if err := c.send(http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return nil
}

// UploadCalendar sends a calendar file as the multipart field "file" and
// returns the server's text response
func (c *Client) UploadCalendar(filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(http.MethodPost, "/calendar/upload", nil, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	return string(bytes.TrimSpace(body)), nil
}

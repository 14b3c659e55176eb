package studyflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Path    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status code %d from %s", e.Status, e.Path)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Transient reports whether repeating the request may succeed.
func (e *APIError) Transient() bool {
	return e.Status == http.StatusBadGateway ||
		e.Status == http.StatusServiceUnavailable ||
		e.Status == http.StatusGatewayTimeout
}

func readAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &APIError{
		Status:  resp.StatusCode,
		Path:    resp.Request.URL.Path,
		Message: extractMessage(resp.Header.Get("Content-Type"), body),
	}
}

// extractMessage pulls a human readable message out of an error body. The
// server answers with plain text ("error: ..."), Spring JSON error objects, or
// full HTML error pages depending on where the failure happened.
func extractMessage(contentType string, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	if strings.Contains(contentType, "html") || strings.HasPrefix(text, "<") {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err == nil {
			for _, sel := range []string{"title", "h1", "h2"} {
				if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
					return t
				}
			}
			return strings.Join(strings.Fields(doc.Text()), " ")
		}
	}

	if strings.Contains(contentType, "json") || strings.HasPrefix(text, "{") {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			if payload.Message != "" {
				return payload.Message
			}
			if payload.Error != "" {
				return payload.Error
			}
		}
	}

	return strings.TrimPrefix(text, "error: ")
}

package studyflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const userAgent = "studyctl/1.0"

// retryBackoff is the base delay between GET attempts; tests shorten it
var retryBackoff = time.Second

// courseCacheTTL bounds how long the course list is reused between writes
const courseCacheTTL = 30 * time.Second

// Client talks to the Studyflow server
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookieName string
	session    string
	logger     *zap.Logger
	cache      *cache.Cache
}

// Option configures a Client
type Option func(*Client)

// WithSession attaches a session cookie to every request.
func WithSession(name, value string) Option {
	return func(c *Client) {
		c.cookieName = name
		c.session = value
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     zap.NewNop(),
		cache:      cache.New(courseCacheTTL, 2*courseCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server the client points at.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, reqURL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.session})
	}
	return req, nil
}

// do sends a request once. Any write invalidates the cached course list, since
// progress and names are derived from events server-side.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		c.cache.Flush()
	}

	c.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("requestID", req.Header.Get("X-Request-ID")))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := readAPIError(resp)
		c.logger.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}
	return resp, nil
}

// getWithRetries attempts a GET up to 3 times for 502/503/504 and transport errors.
// Writes go through do directly and are never repeated.
func (c *Client) getWithRetries(path string, query url.Values) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		req, err := c.newRequest(http.MethodGet, path, query, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Transient() {
			return nil, err
		}

		if attempt < 2 {
			c.logger.Warn("server busy, retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			time.Sleep(time.Duration(attempt+1) * retryBackoff)
		}
	}

	return nil, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

// getJSON fetches path and decodes the JSON body into out
func (c *Client) getJSON(path string, query url.Values, out interface{}) error {
	resp, err := c.getWithRetries(path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// getText fetches path and returns the trimmed body
func (c *Client) getText(path string) (string, error) {
	resp, err := c.getWithRetries(path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s response: %w", path, err)
	}
	return strings.TrimSpace(string(body)), nil
}

// send issues a write with an optional JSON body and decodes the JSON response
// into out when both are present. Empty response bodies are not an error.
func (c *Client) send(method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// sendText issues a bodiless write and returns the trimmed text response
func (c *Client) sendText(method, path string, query url.Values) (string, error) {
	req, err := c.newRequest(method, path, query, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s response: %w", path, err)
	}
	return strings.TrimSpace(string(body)), nil
}

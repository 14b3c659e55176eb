package planner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	noFileSelected   = "Please choose a calendar file."
	importSucceeded  = "Calendar imported successfully!"
	importFailedText = "Upload failed"
)

// UploadResult describes a finished import
type UploadResult struct {
	File string
	// Parsed is the number of events found locally, -1 when the file could not be parsed.
	Parsed   int
	Response string
}

// UploadController imports calendar files into the server.
type UploadController struct {
	api        UploadAPI
	dialog     Dialog
	logger     *zap.Logger
	inspect    func(io.Reader) (int, error)
	refreshers []func() error
	writes     inflight
}

// NewUploadController creates an upload controller. inspect counts the events
// of a file before it is sent and may be nil. refreshers run after a
// successful import, typically reloading calendar, courses and upcoming events.
func NewUploadController(api UploadAPI, dialog Dialog, logger *zap.Logger, inspect func(io.Reader) (int, error), refreshers ...func() error) *UploadController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadController{
		api:        api,
		dialog:     dialog,
		logger:     logger,
		inspect:    inspect,
		refreshers: refreshers,
	}
}

// Upload sends the calendar file at path to the server.
func (c *UploadController) Upload(path string) (*UploadResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		c.logger.Warn("no file selected")
		c.dialog.Alert(noFileSelected)
		return nil, &ValidationError{Message: noFileSelected, Fields: []string{"File"}}
	}

	release, err := c.writes.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	data, err := os.ReadFile(path)
	if err != nil {
		c.dialog.Alert(fmt.Sprintf("Could not read %s.", path))
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}

	result := &UploadResult{File: filepath.Base(path), Parsed: -1}
	if c.inspect != nil {
		n, err := c.inspect(bytes.NewReader(data))
		if err != nil {
			// the server has the final say on the format
			c.logger.Warn("calendar file did not parse locally", zap.String("file", result.File), zap.Error(err))
		} else {
			result.Parsed = n
			c.logger.Debug("calendar file inspected", zap.String("file", result.File), zap.Int("events", n))
		}
	}

	resp, err := c.api.UploadCalendar(result.File, bytes.NewReader(data))
	if err != nil {
		c.logger.Error("calendar upload failed", zap.String("file", result.File), zap.Error(err))
		msg := UserMessage(err)
		if msg == "" {
			msg = importFailedText
		}
		c.dialog.Alert(msg)
		return nil, err
	}
	result.Response = resp

	for _, refresh := range c.refreshers {
		if err := refresh(); err != nil {
			c.logger.Warn("refresh after import failed", zap.Error(err))
		}
	}

	c.dialog.Notify(importSucceeded)
	return result, nil
}

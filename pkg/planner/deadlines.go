package planner

import (
	"strings"
	"time"

	"studyctl/pkg/studyflow"

	"go.uber.org/zap"
)

const (
	missingDeadlineFields = "Please enter a title, a due date and points or study time."
	missingSessionFields  = "Please fill in title, deadline, start and end."
	deleteDeadlinePrompt  = "Delete this deadline?"
	noDeadlineSelected    = "Please select a deadline."
	sessionsPlanned       = "Self-study sessions planned!"
	sessionDescription    = "Manual self-study session"
	deadlineLength        = time.Hour
)

// DeadlineController drives the deadline and self-study panel of one course.
type DeadlineController struct {
	api    DeadlineAPI
	dialog Dialog
	logger *zap.Logger
	writes inflight

	// CourseID is the course the panel was opened for
	CourseID int64
	// Deadlines and Sessions hold the last loaded lists
	Deadlines []studyflow.Deadline
	Sessions  []studyflow.Session
}

// NewDeadlineController creates the panel controller of course courseID.
func NewDeadlineController(api DeadlineAPI, dialog Dialog, logger *zap.Logger, courseID int64) *DeadlineController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeadlineController{
		api:      api,
		dialog:   dialog,
		logger:   logger.With(zap.Int64("course", courseID)),
		CourseID: courseID,
	}
}

// LoadDeadlines fetches the deadlines of the course. On failure the error is
// returned for inline display and the previous rows are cleared.
func (c *DeadlineController) LoadDeadlines() ([]studyflow.Deadline, error) {
	if c.CourseID == 0 {
		return nil, ErrNoCourse
	}
	deadlines, err := c.api.FetchDeadlines(c.CourseID)
	if err != nil {
		c.logger.Error("loading deadlines failed", zap.Error(err))
		c.Deadlines = nil
		return nil, err
	}
	c.Deadlines = deadlines
	return deadlines, nil
}

// EditDeadline pre-fills the form with a deadline row; saving it updates that row.
func (c *DeadlineController) EditDeadline(d studyflow.Deadline) DeadlineForm {
	return DeadlineForm{
		ID:         d.ID,
		Title:      d.Title,
		Due:        d.StartTime.Time,
		Points:     d.Points,
		StudyHours: d.StudyTimeNeeded,
		StudyStart: d.StudyStart.Time,
	}
}

// SaveDeadline creates a deadline, or updates it when the form came from
// EditDeadline, then reloads the table. Incomplete forms never reach the server.
func (c *DeadlineController) SaveDeadline(form DeadlineForm) (*studyflow.Event, error) {
	if c.CourseID == 0 {
		return nil, ErrNoCourse
	}
	release, err := c.writes.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	form.Title = strings.TrimSpace(form.Title)
	if err := check(form, missingDeadlineFields); err != nil {
		c.dialog.Alert(err.Error())
		return nil, err
	}

	payload := studyflow.DeadlinePayload{
		Title:           form.Title,
		StartTime:       studyflow.NewLocalTime(form.Due),
		EndTime:         studyflow.NewLocalTime(form.Due.Add(deadlineLength)),
		Type:            studyflow.TypeExam,
		Color:           DeadlineColor,
		IsDeadline:      true,
		Points:          form.Points,
		StudyTimeNeeded: form.StudyHours,
		StudyStart:      studyflow.NewLocalTime(form.StudyStart),
	}

	var saved *studyflow.Event
	if form.ID > 0 {
		saved, err = c.api.UpdateDeadline(form.ID, payload)
	} else {
		saved, err = c.api.CreateDeadline(c.CourseID, payload)
	}
	if err != nil {
		c.logger.Error("saving deadline failed", zap.String("title", form.Title), zap.Int64("id", form.ID), zap.Error(err))
		c.dialog.Alert("Could not save deadline: " + UserMessage(err))
		return nil, err
	}

	c.logger.Info("deadline saved", zap.String("title", form.Title))
	c.reloadDeadlines()
	return saved, nil
}

// DeleteDeadline asks for confirmation, removes deadline id and reloads the table.
func (c *DeadlineController) DeleteDeadline(id int64) (bool, error) {
	release, err := c.writes.acquire()
	if err != nil {
		return false, err
	}
	defer release()

	ok, err := c.dialog.Confirm(deleteDeadlinePrompt)
	if err != nil || !ok {
		return false, err
	}

	if err := c.api.DeleteDeadline(id); err != nil {
		c.logger.Error("deleting deadline failed", zap.Int64("id", id), zap.Error(err))
		c.dialog.Alert("Could not delete deadline: " + UserMessage(err))
		return false, err
	}

	c.reloadDeadlines()
	return true, nil
}

// LoadSessions fetches the planned self-study sessions of the course.
func (c *DeadlineController) LoadSessions() ([]studyflow.Session, error) {
	if c.CourseID == 0 {
		return nil, ErrNoCourse
	}
	sessions, err := c.api.FetchSessions(c.CourseID)
	if err != nil {
		c.logger.Error("loading self-study sessions failed", zap.Error(err))
		c.Sessions = nil
		return nil, err
	}
	c.Sessions = sessions
	return sessions, nil
}

// CreateSession plans a manual self-study session for a deadline.
func (c *DeadlineController) CreateSession(form SessionForm) error {
	if c.CourseID == 0 {
		return ErrNoCourse
	}
	release, err := c.writes.acquire()
	if err != nil {
		return err
	}
	defer release()

	form.Title = strings.TrimSpace(form.Title)
	if err := check(form, missingSessionFields); err != nil {
		c.dialog.Alert(err.Error())
		return err
	}

	err = c.api.CreateSession(c.CourseID, studyflow.SessionPayload{
		Title:             form.Title,
		Description:       sessionDescription,
		Color:             SessionColor,
		StartTime:         studyflow.NewLocalTime(form.Start),
		EndTime:           studyflow.NewLocalTime(form.End),
		RelatedDeadlineID: form.DeadlineID,
	})
	if err != nil {
		c.logger.Error("creating self-study session failed", zap.Error(err))
		c.dialog.Alert("Could not create session: " + UserMessage(err))
		return err
	}

	c.reloadSessions()
	return nil
}

// AutoPlan lets the server schedule self-study sessions for deadlineID.
func (c *DeadlineController) AutoPlan(deadlineID int64) error {
	if deadlineID <= 0 {
		c.dialog.Alert(noDeadlineSelected)
		return &ValidationError{Message: noDeadlineSelected, Fields: []string{"DeadlineID"}}
	}
	if c.CourseID == 0 {
		return ErrNoCourse
	}
	release, err := c.writes.acquire()
	if err != nil {
		return err
	}
	defer release()

	msg, err := c.api.AutoPlan(c.CourseID, deadlineID)
	if err != nil {
		c.logger.Error("auto planning failed", zap.Int64("deadline", deadlineID), zap.Error(err))
		c.dialog.Alert(UserMessage(err))
		return err
	}

	c.logger.Debug("auto plan finished", zap.String("response", msg))
	c.dialog.Notify(sessionsPlanned)
	c.reloadSessions()
	return nil
}

func (c *DeadlineController) reloadDeadlines() {
	if _, err := c.LoadDeadlines(); err != nil {
		c.logger.Warn("reloading deadlines failed", zap.Error(err))
	}
}

func (c *DeadlineController) reloadSessions() {
	if _, err := c.LoadSessions(); err != nil {
		c.logger.Warn("reloading self-study sessions failed", zap.Error(err))
	}
}

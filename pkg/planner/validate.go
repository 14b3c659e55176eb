package planner

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a form that must not be submitted
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// orderMessage is shown when a time range is reversed
const orderMessage = "End time must be after start time."

// EventForm is the calendar event create/edit form
type EventForm struct {
	Title    string    `validate:"required"`
	Start    time.Time `validate:"required"`
	End      time.Time `validate:"omitempty,gtefield=Start"`
	Location string
	Type     string `validate:"required,oneof=lecture assignment exam self-study custom"`
	Color    string `validate:"omitempty,hexcolor"`
	CourseID int64  `validate:"gte=0"`
	FillType string `validate:"omitempty,oneof=partial-fill full"`
}

// CourseForm is the course creation and settings form
type CourseForm struct {
	Name        string `validate:"required"`
	Description string
	Color       string `validate:"omitempty,hexcolor"`
	Difficulty  int    `validate:"omitempty,min=1,max=3"`
}

// DeadlineForm is the deadline form of the course panel. ID is set when an
// existing row was loaded for editing.
type DeadlineForm struct {
	ID         int64
	Title      string    `validate:"required"`
	Due        time.Time `validate:"required"`
	Points     int       `validate:"required_without=StudyHours,gte=0"`
	StudyHours int       `validate:"required_without=Points,gte=0"`
	StudyStart time.Time `validate:"omitempty,ltefield=Due"`
}

// SessionForm is the manual self-study session form
type SessionForm struct {
	Title      string    `validate:"required"`
	DeadlineID int64     `validate:"required"`
	Start      time.Time `validate:"required"`
	End        time.Time `validate:"required,gtfield=Start"`
}

// check validates form and turns failures into a ValidationError carrying
// missingMessage, or orderMessage when only a time range is reversed.
func check(form interface{}, missingMessage string) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: missingMessage}
	}

	verr := &ValidationError{Message: missingMessage}
	ordering := true
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
		switch fe.Tag() {
		case "gtfield", "gtefield":
		default:
			ordering = false
		}
	}
	if ordering {
		verr.Message = orderMessage
	}
	return verr
}

func normalizeEvent(f EventForm) EventForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	f.Location = strings.TrimSpace(f.Location)
	if f.Type != "custom" {
		f.FillType = ""
	}
	return f
}

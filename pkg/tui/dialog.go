package tui

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"sync/atomic"

	"studyctl/pkg/planner"
	"studyctl/pkg/studyflow"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

var outWriter io.Writer = os.Stdout

// Dialog asks for confirmations with a huh prompt and prints alerts and
// notices in the theme colors.
type Dialog struct {
	// AssumeYes answers every confirmation with yes without prompting
	AssumeYes bool
}

// NewDialog creates a terminal dialog
func NewDialog(assumeYes bool) *Dialog {
	return &Dialog{AssumeYes: assumeYes}
}

// Confirm shows a yes/no prompt; aborting the prompt counts as no.
func (d *Dialog) Confirm(prompt string) (bool, error) {
	if d.AssumeYes {
		return true, nil
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// Alert prints an error line
func (d *Dialog) Alert(message string) {
	fmt.Fprintln(outWriter, errorStyle.Render("❌ "+message))
}

// Notify prints a success line
func (d *Dialog) Notify(message string) {
	fmt.Fprintln(outWriter, accentStyle.Render("✅ "+message))
}

// Spin runs action behind a spinner titled title.
func Spin(title string, action func()) {
	spin(title, action)
}

// runSpinner draws the spinner while action runs
var runSpinner = func(title string, action func()) {
	_ = spinner.New().
		Title(title).
		Action(action).
		Run()
}

var spinning atomic.Bool

// spin runs action behind a spinner. A spin started while another one is
// showing runs its action directly under the outer spinner.
func spin(title string, action func()) {
	if !spinning.CompareAndSwap(false, true) {
		action()
		return
	}
	defer spinning.Store(false)
	runSpinner(title, action)
}

// isRecoverable reports whether a screen can keep running after err. These
// errors were already shown to the user by the controllers.
func isRecoverable(err error) bool {
	var verr *planner.ValidationError
	var apiErr *studyflow.APIError
	var urlErr *url.Error
	var pathErr *fs.PathError

	return errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, planner.ErrBusy) ||
		errors.Is(err, planner.ErrNoCourse) ||
		errors.As(err, &verr) ||
		errors.As(err, &apiErr) ||
		errors.As(err, &urlErr) ||
		errors.As(err, &pathErr)
}

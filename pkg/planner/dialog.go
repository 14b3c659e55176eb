package planner

import (
	"errors"
	"sync"
)

// Dialog is how controllers talk to the user: blocking confirmations,
// error alerts and informational notices.
type Dialog interface {
	Confirm(prompt string) (bool, error)
	Alert(message string)
	Notify(message string)
}

var (
	// ErrBusy is returned when a write is submitted while another one is still in flight.
	ErrBusy = errors.New("another request is still in progress")
	// ErrNoCourse is returned by course panel operations before a course was opened.
	ErrNoCourse = errors.New("no course selected")
)

// inflight rejects overlapping writes instead of queueing them
type inflight struct {
	mu sync.Mutex
}

func (f *inflight) acquire() (func(), error) {
	if !f.mu.TryLock() {
		return nil, ErrBusy
	}
	return f.mu.Unlock, nil
}

func refreshIfSet(fn func()) {
	if fn != nil {
		fn()
	}
}

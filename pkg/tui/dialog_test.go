package tui

import (
	"testing"
)

func TestNestedSpinRunsOneSpinner(t *testing.T) {
	orig := runSpinner
	defer func() { runSpinner = orig }()

	var titles []string
	runSpinner = func(title string, action func()) {
		titles = append(titles, title)
		action()
	}

	refreshed := false
	spin("Saving course...", func() {
		spin("Loading courses...", func() {
			refreshed = true
		})
	})

	if !refreshed {
		t.Fatal("expected the inner action to run")
	}
	if len(titles) != 1 || titles[0] != "Saving course..." {
		t.Errorf("expected a single outer spinner, got %v", titles)
	}

	// the guard is released once the outer spinner finished
	spin("Loading courses...", func() {})
	if len(titles) != 2 {
		t.Errorf("expected a new spinner after the first one ended, got %v", titles)
	}
}

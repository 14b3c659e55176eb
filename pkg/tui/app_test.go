package tui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"studyctl/pkg/config"
)

func TestReloadConfigReconnects(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STUDYCTL_SERVER", "")
	t.Setenv("STUDYCTL_SESSION", "")

	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("JSESSIONID"); err == nil {
			gotCookie = c.Value
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	app := NewApp(Connect(&config.AppConfig{}, nil), &config.AppConfig{}, nil)
	if app.Client.BaseURL() != config.DefaultServerURL {
		t.Fatalf("unexpected initial server %s", app.Client.BaseURL())
	}

	// what the settings screen writes
	if err := config.Save(&config.AppConfig{ServerURL: server.URL, SessionCookie: "abc123"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := app.ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}

	if app.Client.BaseURL() != server.URL {
		t.Errorf("expected client to point at %s, got %s", server.URL, app.Client.BaseURL())
	}
	if _, err := app.Client.FetchCourses(); err != nil {
		t.Fatalf("FetchCourses failed: %v", err)
	}
	if gotCookie != "abc123" {
		t.Errorf("expected new session cookie, got %q", gotCookie)
	}
}

func TestReloadConfigKeepsServerOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STUDYCTL_SERVER", "")
	t.Setenv("STUDYCTL_SESSION", "")

	if err := config.Save(&config.AppConfig{ServerURL: "http://saved.example"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	app := NewApp(Connect(&config.AppConfig{}, nil), &config.AppConfig{}, nil)
	app.ServerOverride = "http://flag.example/"
	if err := app.ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}

	if app.Client.BaseURL() != "http://flag.example" {
		t.Errorf("expected flag override to survive reload, got %s", app.Client.BaseURL())
	}
	if app.Config.Server() != "http://flag.example" {
		t.Errorf("expected config to carry the override, got %s", app.Config.Server())
	}
}

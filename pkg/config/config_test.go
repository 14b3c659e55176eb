package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigLoadSave(t *testing.T) {
	tempDir := t.TempDir()

	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	// 2. Modify and Save the config
	cfg.ServerURL = "https://planner.example.org"
	cfg.SessionCookie = "abc123"
	cfg.TypeFilters = []string{"lecture", "exam"}
	cfg.CourseFilter = "Algebra"
	cfg.UpcomingLimit = 6

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	configPath := filepath.Join(tempDir, ".studyctl.json")
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("expected config file to be created at %s: %v", configPath, err)
	}
	if info.Mode().Perm()&0077 != 0 {
		t.Errorf("expected config file to be private, got mode %v", info.Mode().Perm())
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".studyctl.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	if err := Save(&AppConfig{ServerURL: "http://from-file:8080"}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	t.Setenv("STUDYCTL_SERVER", "http://from-env:9090")
	t.Setenv("STUDYCTL_SESSION", "cookie-from-env")

	cfg, err := LoadWithEnv()
	if err != nil {
		t.Fatalf("LoadWithEnv failed: %v", err)
	}
	if cfg.ServerURL != "http://from-env:9090" {
		t.Errorf("expected env server to win, got %s", cfg.ServerURL)
	}
	if cfg.SessionCookie != "cookie-from-env" {
		t.Errorf("expected env session cookie, got %s", cfg.SessionCookie)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &AppConfig{}
	if cfg.Server() != DefaultServerURL {
		t.Errorf("expected default server, got %s", cfg.Server())
	}
	if cfg.Cookie() != "JSESSIONID" {
		t.Errorf("expected JSESSIONID, got %s", cfg.Cookie())
	}
	if cfg.Limit() != 4 {
		t.Errorf("expected default upcoming limit 4, got %d", cfg.Limit())
	}
}

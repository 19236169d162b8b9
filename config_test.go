package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	// No explicit path: defaults (embedded or bootstrapped) apply.
	settings, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if settings.OutputDirectory == "" || settings.DefaultCategory == "" {
		t.Errorf("defaults not applied: %+v", settings)
	}
}

func TestLoadSettingsExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "export_file: data.json\nposts_directory: old\noutput_directory: out\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if settings.ExportFile != "data.json" || settings.OutputDirectory != "out" {
		t.Errorf("settings not loaded: %+v", settings)
	}
	if settings.DefaultCategory != "uncategorized" {
		t.Errorf("default category = %q, want uncategorized", settings.DefaultCategory)
	}
}

func TestLoadSettingsExplicitMissing(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for explicitly named missing settings file")
	}
}

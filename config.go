package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".blog-cleaner"

//go:embed .blog-cleaner/settings.yaml
var defaultSettings string

// Settings is the YAML configuration for a run. CLI flags override any
// value loaded from the settings file.
type Settings struct {
	ExportFile      string `yaml:"export_file"`
	PostsDirectory  string `yaml:"posts_directory"`
	OutputDirectory string `yaml:"output_directory"`
	DefaultCategory string `yaml:"default_category"`
}

// LoadSettings reads the settings file, falling back to the embedded
// defaults when no path is given and no file exists yet.
func LoadSettings(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		path = getConfigPath("settings.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("reading settings file %s: %w", path, err)
		}
		data = []byte(defaultSettings)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	if settings.DefaultCategory == "" {
		settings.DefaultCategory = "uncategorized"
	}

	return &settings, nil
}

func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// ensureConfigExists writes the default settings file on first run so
// users have something to edit.
func ensureConfigExists() error {
	if _, err := os.Stat(defaultConfigDir); os.IsNotExist(err) {
		if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	settingsPath := getConfigPath("settings.yaml")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := os.WriteFile(settingsPath, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing default settings: %w", err)
		}
	}

	return nil
}

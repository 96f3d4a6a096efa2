package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quietmisdreavus/qmwc/state"
)

const settingsFile = "config.yaml"

// Settings is the content of config.yaml.
type Settings struct {
	Dir     string `yaml:"wallpaper_dir"`
	Desktop string `yaml:"desktop,omitempty"`
}

// WallpaperDir returns the configured directory or ErrNotConfigured.
func (s Settings) WallpaperDir() (string, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return "", ErrNotConfigured
	}
	return s.Dir, nil
}

// SettingsPath returns the location of config.yaml in configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, settingsFile)
}

// LoadSettings reads config.yaml from configDir. A missing file gives
// empty settings.
func LoadSettings(configDir string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(SettingsPath(configDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, err
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("settings decode %s: %w", SettingsPath(configDir), err)
	}
	return s, nil
}

// SaveSettings writes config.yaml into configDir, creating it if needed.
func SaveSettings(configDir string, s Settings) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return state.ReplaceFile(SettingsPath(configDir), data)
}

// SetWallpaperDir stores dir as the wallpaper directory and returns the
// absolute path that was saved. dir must be an existing directory.
func SetWallpaperDir(configDir, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("wallpaper directory can't be empty")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}

	s, err := LoadSettings(configDir)
	if err != nil {
		return "", err
	}
	s.Dir = abs

	if err := SaveSettings(configDir, s); err != nil {
		return "", fmt.Errorf("could not save settings: %w", err)
	}
	return abs, nil
}

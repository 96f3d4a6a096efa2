// Package config holds the runtime configuration of qmwc and the
// persisted settings file with the wallpaper directory.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	appName = "qmwc"

	// EnvConfigDir overrides the directory holding config.yaml.
	EnvConfigDir = "QMWC_CONFIG_DIR"
	// EnvCacheDir overrides the directory holding the current selection.
	EnvCacheDir = "QMWC_CACHE_DIR"
)

// ErrNotConfigured is returned when no wallpaper directory has been set.
var ErrNotConfigured = errors.New("wallpaper directory is not configured")

// Config is built once at startup and passed to the components that
// need it.
type Config struct {
	ConfigDir string
	CacheDir  string

	// Desktop names the desktop integration; "auto" or empty detects it.
	Desktop string

	LogLevel     slog.Level
	DryRun       bool
	SkipIfLocked bool

	// MetricsFile is an optional node_exporter textfile to write after a run.
	MetricsFile string
}

// ResolveConfigDir picks the config directory: explicit value, then
// $QMWC_CONFIG_DIR, then the user config directory.
func ResolveConfigDir(explicit string) (string, error) {
	return resolveDir(explicit, EnvConfigDir, os.UserConfigDir)
}

// ResolveCacheDir picks the cache directory: explicit value, then
// $QMWC_CACHE_DIR, then the user cache directory.
func ResolveCacheDir(explicit string) (string, error) {
	return resolveDir(explicit, EnvCacheDir, os.UserCacheDir)
}

func resolveDir(explicit, env string, fallback func() (string, error)) (string, error) {
	if dir := strings.TrimSpace(explicit); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv(env); dir != "" {
		return dir, nil
	}
	base, err := fallback()
	if err != nil {
		return "", fmt.Errorf("could not determine directory (set %s): %w", env, err)
	}
	return filepath.Join(base, appName), nil
}

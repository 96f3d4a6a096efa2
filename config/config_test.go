package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDirPriority(t *testing.T) {
	t.Run("explicit value takes priority", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")

		dir, err := ResolveConfigDir("/explicit/config")
		require.NoError(t, err)
		assert.Equal(t, "/explicit/config", dir)
	})

	t.Run("environment used when no explicit value", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")

		dir, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/env/config", dir)
	})

	t.Run("fallback to user config dir", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		t.Setenv("HOME", "/home/test")

		dir, err := ResolveConfigDir("  ")
		require.NoError(t, err)

		expected, err := os.UserConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(expected, "qmwc"), dir)
	})
}

func TestCacheDirPriority(t *testing.T) {
	t.Setenv(EnvCacheDir, "/env/cache")

	dir, err := ResolveCacheDir("")
	require.NoError(t, err)
	assert.Equal(t, "/env/cache", dir)

	dir, err = ResolveCacheDir("/explicit/cache")
	require.NoError(t, err)
	assert.Equal(t, "/explicit/cache", dir)

	t.Setenv(EnvCacheDir, "")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	t.Setenv("HOME", "/home/test")

	dir, err = ResolveCacheDir("")
	require.NoError(t, err)
	expected, err := os.UserCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(expected, "qmwc"), dir)
}

func TestSettingsNotConfigured(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	require.NoError(t, err)

	_, err = s.WallpaperDir()
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = Settings{Dir: "   "}.WallpaperDir()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSetWallpaperDir(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	walls := t.TempDir()

	saved, err := SetWallpaperDir(configDir, walls)
	require.NoError(t, err)
	assert.Equal(t, walls, saved)

	s, err := LoadSettings(configDir)
	require.NoError(t, err)
	dir, err := s.WallpaperDir()
	require.NoError(t, err)
	assert.Equal(t, walls, dir)

	data, err := os.ReadFile(SettingsPath(configDir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "wallpaper_dir: "+walls)
}

func TestSetWallpaperDirRelative(t *testing.T) {
	configDir := t.TempDir()
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "walls"), 0o755))
	t.Chdir(base)

	saved, err := SetWallpaperDir(configDir, "walls")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(saved))
	assert.Equal(t, "walls", filepath.Base(saved))
}

func TestSetWallpaperDirKeepsDesktop(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, SaveSettings(configDir, Settings{Dir: "/old", Desktop: "mate"}))

	walls := t.TempDir()
	_, err := SetWallpaperDir(configDir, walls)
	require.NoError(t, err)

	s, err := LoadSettings(configDir)
	require.NoError(t, err)
	assert.Equal(t, Settings{Dir: walls, Desktop: "mate"}, s)
}

func TestSetWallpaperDirRejectsInvalid(t *testing.T) {
	configDir := t.TempDir()
	file := filepath.Join(t.TempDir(), "file.png")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := SetWallpaperDir(configDir, "")
	assert.Error(t, err)

	_, err = SetWallpaperDir(configDir, file)
	assert.Error(t, err)

	_, err = SetWallpaperDir(configDir, filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(SettingsPath(configDir))
	assert.True(t, os.IsNotExist(err), "nothing should be saved")
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(SettingsPath(configDir), []byte("wallpaper_dir: [unterminated"), 0o644))

	_, err := LoadSettings(configDir)
	assert.Error(t, err)
}

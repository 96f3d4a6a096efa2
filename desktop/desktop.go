// Package desktop applies a wallpaper through the desktop environment and
// queries whether the screen is locked.
//
// Every integration shells out to the tool the desktop ships with
// (gsettings, osascript, feh, dbus-send) through a Runner, so tests can
// substitute a fake.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

const (
	Auto     = "auto"
	GNOME    = "gnome"
	Cinnamon = "cinnamon"
	MATE     = "mate"
	MacOS    = "macos"
	Feh      = "feh"
)

// Names lists the supported desktop integrations.
var Names = []string{GNOME, Cinnamon, MATE, MacOS, Feh}

// ErrUnknownDesktop is returned for a desktop name not in Names.
var ErrUnknownDesktop = errors.New("unknown desktop environment")

// Applier sets the wallpaper.
type Applier interface {
	Name() string
	Apply(ctx context.Context, path string) error
}

// ApplyError is returned when the external command setting the wallpaper
// fails. ExitCode is -1 if the command did not exit normally.
type ApplyError struct {
	Desktop  string
	Command  []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ApplyError) Error() string {
	msg := fmt.Sprintf("%s: could not apply wallpaper: %s", e.Desktop, strings.Join(e.Command, " "))
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" exited with status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ApplyError) Unwrap() error { return e.Err }

// FileURI converts path to an absolute file:// URI.
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String(), nil
}

// Detect guesses the desktop integration from the operating system and
// the session environment.
func Detect(goos string, getenv func(string) string) string {
	if goos == "darwin" {
		return MacOS
	}

	session := strings.ToLower(getenv("XDG_CURRENT_DESKTOP") + ":" + getenv("DESKTOP_SESSION"))
	for _, part := range strings.FieldsFunc(session, func(r rune) bool { return r == ':' || r == ';' }) {
		switch {
		case strings.Contains(part, "cinnamon"):
			return Cinnamon
		case strings.Contains(part, "mate"):
			return MATE
		case strings.Contains(part, "gnome"), strings.Contains(part, "unity"), strings.Contains(part, "ubuntu"):
			return GNOME
		}
	}

	if getenv("WAYLAND_DISPLAY") == "" && getenv("DISPLAY") != "" {
		return Feh
	}
	return GNOME
}

// Resolve turns a configured name ("auto", empty or one of Names) into a
// concrete desktop name.
func Resolve(name, goos string, getenv func(string) string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == Auto {
		return Detect(goos, getenv), nil
	}
	if !slices.Contains(Names, name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownDesktop, name)
	}
	return name, nil
}

// ExitStatus is the status qmwc exits with after this error: the status
// of the failed command, or 1 when it has none.
func (e *ApplyError) ExitStatus() int {
	if e.ExitCode > 0 {
		return e.ExitCode
	}
	return 1
}

package desktop

import (
	"context"
	"fmt"
	"strings"
)

// LockChecker reports whether the screen is currently locked.
type LockChecker interface {
	Locked(ctx context.Context) (bool, error)
}

// NeverLocked is used where no lock query is available.
type NeverLocked struct{}

func (NeverLocked) Locked(context.Context) (bool, error) { return false, nil }

// ScreenSaver asks a screensaver service over the session bus whether it
// is active.
type ScreenSaver struct {
	Service string // e.g. org.gnome.ScreenSaver
	Path    string // e.g. /org/gnome/ScreenSaver
	Runner  Runner
}

// NewLockChecker returns the lock query for the named desktop.
func NewLockChecker(name string, runner Runner) LockChecker {
	if runner == nil {
		runner = ExecRunner{}
	}
	switch name {
	case GNOME:
		return &ScreenSaver{Service: "org.gnome.ScreenSaver", Path: "/org/gnome/ScreenSaver", Runner: runner}
	case Cinnamon:
		return &ScreenSaver{Service: "org.cinnamon.ScreenSaver", Path: "/org/cinnamon/ScreenSaver", Runner: runner}
	case MATE:
		return &ScreenSaver{Service: "org.mate.ScreenSaver", Path: "/org/mate/ScreenSaver", Runner: runner}
	case Feh:
		return &ScreenSaver{Service: "org.freedesktop.ScreenSaver", Path: "/org/freedesktop/ScreenSaver", Runner: runner}
	default:
		return NeverLocked{}
	}
}

func (s *ScreenSaver) Locked(ctx context.Context) (bool, error) {
	out, err := s.Runner.Run(ctx, "dbus-send",
		"--session",
		"--print-reply=literal",
		"--dest="+s.Service,
		s.Path,
		s.Service+".GetActive",
	)
	if err != nil {
		return false, fmt.Errorf("query %s: %w", s.Service, err)
	}
	return parseGetActive(out)
}

// parseGetActive reads the reply of dbus-send --print-reply=literal,
// which looks like "   boolean true".
func parseGetActive(out []byte) (bool, error) {
	fields := strings.Fields(string(out))
	for i, f := range fields {
		if f != "boolean" || i+1 >= len(fields) {
			continue
		}
		switch fields[i+1] {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("unexpected screensaver reply: %q", strings.TrimSpace(string(out)))
}

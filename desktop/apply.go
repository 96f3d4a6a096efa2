package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quietmisdreavus/qmwc/logger"
)

// AppleScript string literals only treat backslash and double quote
// specially; everything else is taken as is.
var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

type commandApplier struct {
	name     string
	runner   Runner
	commands func(path, uri string) [][]string
}

// New returns the Applier for the named desktop.
func New(name string, runner Runner) (Applier, error) {
	if runner == nil {
		runner = ExecRunner{}
	}

	var commands func(path, uri string) [][]string

	switch name {
	case GNOME:
		commands = func(_, uri string) [][]string {
			return [][]string{
				{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri},
				{"gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri},
			}
		}
	case Cinnamon:
		commands = func(_, uri string) [][]string {
			return [][]string{
				{"gsettings", "set", "org.cinnamon.desktop.background", "picture-uri", uri},
			}
		}
	case MATE:
		commands = func(path, _ string) [][]string {
			return [][]string{
				{"gsettings", "set", "org.mate.background", "picture-filename", path},
			}
		}
	case MacOS:
		commands = func(path, _ string) [][]string {
			script := `tell application "System Events" to tell every desktop to set picture to POSIX file "` +
				appleScriptEscaper.Replace(path) + `"`
			return [][]string{
				{"osascript", "-e", script},
			}
		}
	case Feh:
		commands = func(path, _ string) [][]string {
			return [][]string{
				{"feh", "--no-fehbg", "--bg-fill", path},
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDesktop, name)
	}

	return &commandApplier{name: name, runner: runner, commands: commands}, nil
}

func (a *commandApplier) Name() string { return a.name }

func (a *commandApplier) Apply(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	uri, err := FileURI(abs)
	if err != nil {
		return err
	}

	for _, argv := range a.commands(abs, uri) {
		log.DebugContext(ctx, "running", "desktop", a.name, "cmd", argv)

		_, err := a.runner.Run(ctx, argv[0], argv[1:]...)
		if err != nil {
			return newApplyError(a.name, argv, err)
		}
	}

	return nil
}

type exitCoder interface {
	ExitCode() int
}

func newApplyError(desktop string, argv []string, err error) *ApplyError {
	ae := &ApplyError{
		Desktop:  desktop,
		Command:  argv,
		ExitCode: -1,
		Err:      err,
	}

	var ec exitCoder
	if errors.As(err, &ec) {
		ae.ExitCode = ec.ExitCode()
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		ae.Stderr = strings.TrimSpace(string(ee.Stderr))
	}

	return ae
}

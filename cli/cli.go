// Package cli is the command line interface of qmwc.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/alecthomas/kong"

	"github.com/quietmisdreavus/qmwc/config"
	"github.com/quietmisdreavus/qmwc/cycle"
	"github.com/quietmisdreavus/qmwc/desktop"
	"github.com/quietmisdreavus/qmwc/logger"
	"github.com/quietmisdreavus/qmwc/metrics"
	"github.com/quietmisdreavus/qmwc/state"
	"github.com/quietmisdreavus/qmwc/ulid"
)

type CycleCmd struct {
	SetDir       string `name:"set-dir" placeholder:"DIR" help:"Set the directory used to source wallpaper and exit"`
	SkipIfLocked bool   `name:"skip-if-locked" help:"Don't change the wallpaper while the screen is locked"`

	Verbose int `short:"v" type:"counter" help:"Log more (repeatable)"`
	Quiet   int `short:"q" type:"counter" help:"Log less (repeatable)"`

	Desktop   string `default:"auto" enum:"auto,gnome,cinnamon,mate,macos,feh" env:"QMWC_DESKTOP" help:"Desktop integration (${enum})"`
	ConfigDir string `name:"config-dir" placeholder:"DIR" help:"Directory for config.yaml (default: $QMWC_CONFIG_DIR or the user config dir)"`
	CacheDir  string `name:"cache-dir" placeholder:"DIR" help:"Directory for the current selection (default: $QMWC_CACHE_DIR or the user cache dir)"`

	DryRun      bool   `name:"dry-run" help:"Print the next wallpaper without applying or remembering it"`
	Status      bool   `help:"Print the configured directory and current wallpaper"`
	MetricsFile string `name:"metrics-file" placeholder:"PATH" help:"Write run metrics for the node_exporter textfile collector"`

	Version kong.VersionFlag `help:"Print version and exit"`

	cfg config.Config
	log *slog.Logger

	// replaced in tests
	runner desktop.Runner
	out    io.Writer
	goos   string
	getenv func(string) string
}

// AfterApply builds the configuration once the flags are parsed.
func (cmd *CycleCmd) AfterApply() error {
	configDir, err := config.ResolveConfigDir(cmd.ConfigDir)
	if err != nil {
		return err
	}
	cacheDir, err := config.ResolveCacheDir(cmd.CacheDir)
	if err != nil {
		return err
	}

	cmd.cfg = config.Config{
		ConfigDir:    configDir,
		CacheDir:     cacheDir,
		Desktop:      cmd.Desktop,
		LogLevel:     logger.LevelFromVerbosity(cmd.Verbose, cmd.Quiet),
		DryRun:       cmd.DryRun,
		SkipIfLocked: cmd.SkipIfLocked,
		MetricsFile:  cmd.MetricsFile,
	}

	logger.SetLevel(cmd.cfg.LogLevel)
	log := logger.Setup()

	if id, err := ulid.MakeULID(time.Now()); err == nil {
		log = log.With("run", id.String())
	}
	cmd.log = log

	return nil
}

// Config returns the configuration built by AfterApply.
func (cmd *CycleCmd) Config() config.Config {
	return cmd.cfg
}

func (cmd *CycleCmd) stdout() io.Writer {
	if cmd.out != nil {
		return cmd.out
	}
	return os.Stdout
}

func (cmd *CycleCmd) Run(ctx context.Context) error {
	if cmd.log == nil {
		cmd.log = logger.Setup()
	}
	ctx = logger.NewContext(ctx, cmd.log)
	log := cmd.log

	log.DebugContext(ctx, "configuration",
		"config_dir", cmd.cfg.ConfigDir,
		"cache_dir", cmd.cfg.CacheDir,
		"desktop", cmd.cfg.Desktop,
	)

	if cmd.SetDir != "" {
		dir, err := config.SetWallpaperDir(cmd.cfg.ConfigDir, cmd.SetDir)
		if err != nil {
			return fmt.Errorf("could not set wallpaper directory: %w", err)
		}
		fmt.Fprintf(cmd.stdout(), "Setting wallpaper directory to %s\n", dir)
		return nil
	}

	settings, err := config.LoadSettings(cmd.cfg.ConfigDir)
	if err != nil {
		return err
	}

	cache := state.NewFileStore(cmd.cfg.CacheDir)

	if cmd.Status {
		return cmd.printStatus(ctx, settings, cache)
	}

	desktopName := cmd.cfg.Desktop
	if (desktopName == "" || desktopName == desktop.Auto) && settings.Desktop != "" {
		desktopName = settings.Desktop
	}
	desktopName, err = desktop.Resolve(desktopName, cmd.goOS(), cmd.env())
	if err != nil {
		return err
	}

	applier, err := desktop.New(desktopName, cmd.runner)
	if err != nil {
		return err
	}

	c := &cycle.Cycler{
		Settings: settings,
		Cache:    cache,
		Applier:  applier,
		Locker:   desktop.NewLockChecker(desktopName, cmd.runner),
	}
	if cmd.cfg.MetricsFile != "" {
		c.Metrics = metrics.New()
	}

	res, err := c.Run(ctx, cmd.cfg)

	if c.Metrics != nil {
		if werr := c.Metrics.WriteTextfile(cmd.cfg.MetricsFile); werr != nil {
			log.WarnContext(ctx, "could not write metrics", "path", cmd.cfg.MetricsFile, "err", werr)
		}
	}

	if err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			return fmt.Errorf("%w\n\n%s", err, notConfiguredHint())
		}
		return err
	}

	if cmd.cfg.DryRun {
		fmt.Fprintln(cmd.stdout(), res.Selected)
	}

	return nil
}

func (cmd *CycleCmd) printStatus(ctx context.Context, settings config.Settings, cache state.Store) error {
	w := cmd.stdout()

	dir, err := settings.WallpaperDir()
	if err != nil {
		dir = "(not set)"
	}
	fmt.Fprintf(w, "directory: %s\n", dir)

	cur, ok, err := cycle.Current(ctx, cache)
	if err != nil {
		return err
	}
	if !ok {
		cur = "(none)"
	}
	fmt.Fprintf(w, "current:   %s\n", cur)

	return nil
}

func (cmd *CycleCmd) goOS() string {
	if cmd.goos != "" {
		return cmd.goos
	}
	return runtime.GOOS
}

func (cmd *CycleCmd) env() func(string) string {
	if cmd.getenv != nil {
		return cmd.getenv
	}
	return os.Getenv
}

func notConfiguredHint() string {
	return heredoc.Doc(`
		Set the directory to take wallpapers from first:

			qmwc --set-dir ~/Pictures/wallpapers
	`)
}

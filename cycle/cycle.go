// Package cycle runs one wallpaper change: read the configured
// directory, scan it, pick the next image, apply it and remember it.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/quietmisdreavus/qmwc/config"
	"github.com/quietmisdreavus/qmwc/desktop"
	"github.com/quietmisdreavus/qmwc/logger"
	"github.com/quietmisdreavus/qmwc/metrics"
	"github.com/quietmisdreavus/qmwc/scan"
	"github.com/quietmisdreavus/qmwc/selector"
	"github.com/quietmisdreavus/qmwc/state"
)

const (
	// CurrentKey is the cache key holding the current selection.
	CurrentKey = "current"
	// LastChangeKey holds the unix time of the last applied change.
	LastChangeKey = "last-change"
)

// Cycler holds the collaborators of a run. Metrics and Locker are
// optional.
type Cycler struct {
	Settings config.Settings
	Cache    state.Store
	Applier  desktop.Applier
	Locker   desktop.LockChecker
	Metrics  *metrics.Metrics

	Now func() time.Time
}

// Result describes what a run did.
type Result struct {
	Dir         string
	Previous    string
	HasPrevious bool
	Selected    string
	Candidates  int

	// Skipped is set when the screen was locked and nothing was changed.
	Skipped bool
	// Applied is false for dry runs.
	Applied bool
}

// Current reads the remembered selection from the cache store.
func Current(ctx context.Context, cache state.Store) (string, bool, error) {
	b, ok, err := cache.Get(ctx, CurrentKey)
	if err != nil {
		return "", false, fmt.Errorf("could not read current selection: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return string(b), true, nil
}

// Run performs one invocation according to cfg.
func (c *Cycler) Run(ctx context.Context, cfg config.Config) (Result, error) {
	res, err := c.run(ctx, cfg)
	c.record(ctx, res, err)
	return res, err
}

// LastChange reads the time of the last applied change from the cache
// store.
func LastChange(ctx context.Context, cache state.Store) (time.Time, bool, error) {
	b, ok, err := cache.Get(ctx, LastChangeKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid %s value %q: %w", LastChangeKey, b, err)
	}
	return time.Unix(n, 0), true, nil
}

func (c *Cycler) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Cycler) run(ctx context.Context, cfg config.Config) (Result, error) {
	log := logger.FromContext(ctx)
	var res Result

	if cfg.SkipIfLocked && c.Locker != nil {
		locked, err := c.Locker.Locked(ctx)
		if err != nil {
			return res, fmt.Errorf("could not check screen lock: %w", err)
		}
		if locked {
			log.InfoContext(ctx, "screen is locked, not changing wallpaper")
			res.Skipped = true
			return res, nil
		}
	}

	dir, err := c.Settings.WallpaperDir()
	if err != nil {
		return res, err
	}
	res.Dir = dir

	candidates, err := scan.Images(ctx, dir)
	if err != nil {
		return res, err
	}
	res.Candidates = len(candidates)
	log.DebugContext(ctx, "scanned wallpaper directory", "dir", dir, "candidates", len(candidates))

	res.Previous, res.HasPrevious, err = Current(ctx, c.Cache)
	if err != nil {
		return res, err
	}

	next, err := selector.Next(candidates, res.Previous, res.HasPrevious)
	if err != nil {
		if errors.Is(err, selector.ErrNoCandidates) {
			return res, fmt.Errorf("%w in %s", err, dir)
		}
		return res, err
	}
	res.Selected = next

	log.InfoContext(ctx, "selected wallpaper",
		"previous", res.Previous,
		"next", next,
		"candidates", len(candidates),
	)

	if cfg.DryRun {
		return res, nil
	}

	if err := c.Applier.Apply(ctx, next); err != nil {
		return res, err
	}
	res.Applied = true

	// only remembered once the desktop accepted it, so a failed apply
	// is retried with the same file on the next run
	if err := c.Cache.Set(ctx, CurrentKey, []byte(next)); err != nil {
		return res, fmt.Errorf("could not save current selection: %w", err)
	}
	ts := strconv.FormatInt(c.now().Unix(), 10)
	if err := c.Cache.Set(ctx, LastChangeKey, []byte(ts)); err != nil {
		return res, fmt.Errorf("could not save last change time: %w", err)
	}

	return res, nil
}

func (c *Cycler) record(ctx context.Context, res Result, err error) {
	if c.Metrics == nil {
		return
	}
	now := c.now()

	if res.Dir != "" {
		c.Metrics.Candidates.WithLabelValues(res.Dir).Set(float64(res.Candidates))
	}

	switch {
	case err != nil:
		c.Metrics.SetResult("error", now)
	case res.Skipped:
		c.Metrics.SetResult("skipped_locked", now)
	case !res.Applied:
		c.Metrics.SetResult("dry_run", now)
	default:
		c.Metrics.SetResult("changed", now)
	}

	// read back on every run so skipped and failed runs still report
	// the last change made by an earlier process
	t, ok, lerr := LastChange(ctx, c.Cache)
	if lerr != nil {
		logger.FromContext(ctx).WarnContext(ctx, "could not read last change time", "err", lerr)
		return
	}
	if ok {
		c.Metrics.SetLastChange(t)
	}
}

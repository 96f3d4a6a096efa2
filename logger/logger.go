package logger

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
)

var (
	rootLogger   *slog.Logger
	programLevel = new(slog.LevelVar) // Info by default
	setup        sync.Once
)

// Setup returns the process logger, creating it on first use. Output
// goes to stderr so stdout stays usable for command output.
func Setup() *slog.Logger {
	setup.Do(func() {
		rootLogger = New(os.Stderr, programLevel)
		slog.SetDefault(rootLogger)
	})

	return rootLogger
}

// New builds a text logger writing to w at the given level. Timestamps
// are left out when running under systemd, which adds its own.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	logOptions := &slog.HandlerOptions{Level: level}

	if len(os.Getenv("INVOCATION_ID")) > 0 {
		// don't add timestamps when running under systemd
		log.Default().SetFlags(0)

		logOptions.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = ""
				a.Value = slog.AnyValue(nil)
			}
			return a
		}
	}

	return slog.New(slog.NewTextHandler(w, logOptions))
}

// SetLevel changes the level of the process logger.
func SetLevel(l slog.Level) {
	programLevel.Set(l)
}

// LevelFromVerbosity maps -v / -q counters to a level. Each -v lowers
// the threshold by one step from Info, each -q raises it.
func LevelFromVerbosity(verbose, quiet int) slog.Level {
	steps := quiet - verbose
	l := slog.LevelInfo + slog.Level(4*steps)
	if l < slog.LevelDebug {
		l = slog.LevelDebug
	}
	if l > slog.LevelError {
		l = slog.LevelError
	}
	return l
}

type loggerKey struct{}

// NewContext adds the logger to the context.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext retrieves a logger from the context. If there is none,
// it returns the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return Setup()
}

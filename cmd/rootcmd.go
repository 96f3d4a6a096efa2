package rootcmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/quietmisdreavus/qmwc/version"
)

// exitStatuser is implemented by errors that carry the exit status the
// process should end with.
type exitStatuser interface {
	ExitStatus() int
}

func Run(cmd any, name, description string) {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	parser, err := kong.New(cmd,
		kong.Name(name),
		kong.Description(description),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Vars{"version": name + " " + version.Version()},
		kong.UsageOnError(),
	)
	if err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	err = kctx.Run()

	var es exitStatuser
	if err != nil && errors.As(err, &es) {
		parser.Errorf("%s", err)
		cancel()
		parser.Exit(es.ExitStatus())
		return
	}

	parser.FatalIfErrorf(err)
}

package main

import (
	"github.com/MakeNowJust/heredoc"

	basecmd "github.com/quietmisdreavus/qmwc/cmd"
	"github.com/quietmisdreavus/qmwc/cli"
)

func main() {
	basecmd.Run(&cli.CycleCmd{}, "qmwc", heredoc.Doc(`
		Wallpaper cycler.

		Each run sets the desktop wallpaper to the next image (jpg, jpeg, png
		or bmp) in the configured directory, in sorted order, and remembers it
		for the next run. Run it periodically from cron or a systemd timer.
	`))
}

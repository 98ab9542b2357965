package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/curriculumgen/cmd/curriculumgen/commands"
	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/version"
)

func main() {
	var cli commands.CLI
	kctx := kong.Parse(&cli,
		kong.Name("curriculumgen"),
		kong.Description("Build a validated Module → Section → Topic navigation model from lesson content."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global := &commands.Global{
		Context: ctx,
		Logger:  slog.Default(),
		Fs:      afero.NewOsFs(),
		Stdout:  os.Stdout,
	}
	if err := kctx.Run(global, &cli); err != nil {
		stop()
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}

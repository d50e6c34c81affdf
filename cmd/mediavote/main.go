package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/mediavote/internal/api"
	"github.com/Makepad-fr/mediavote/internal/cli"
	"github.com/Makepad-fr/mediavote/internal/config"
	"github.com/Makepad-fr/mediavote/internal/logging"
	"github.com/Makepad-fr/mediavote/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	// os.Exit skips deferred calls
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		cli.PrintHelp(stdout)
		return 0
	}
	if err != nil {
		ui.Fail(stderr, "config: "+err.Error())
		return 2
	}

	logFile, err := logging.SetupFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		ui.Fail(stderr, err.Error())
		return 1
	}
	defer logFile.Close()

	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(cfg.Color == "always", cfg.Color == "never")

	return cli.Run(ctx, cfg.Args, cli.Options{
		Client:      api.NewClient(cfg.APIBaseURL),
		Out:         stdout,
		Err:         stderr,
		AssetHost:   cfg.AssetHost,
		Placeholder: cfg.Placeholder,
		ShowStats:   cfg.ShowStats,
		Group:       cfg.Group,
	})
}

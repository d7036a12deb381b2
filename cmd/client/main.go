package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/MKhiriev/go-pass-guard/internal/adapter"
	"github.com/MKhiriev/go-pass-guard/internal/client"
	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/session"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/tui"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/atotto/clipboard"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("go-pass-guard-client", "")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.RenderError(err))
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if len(cfg.Args) > 0 && cfg.Args[0] == "version" {
		fmt.Print(models.AppBuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit})
		return
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	identityClient := adapter.NewIdentityClient(
		serverAdapter,
		store.NewFileSessionStore(cfg.Session.File),
		client.NewBrowserOpener(os.Stdout, clipboard.WriteAll),
		cfg.Adapter.PollInterval,
		log,
	)
	machine := session.New(
		identityClient,
		adapter.NewOwnerReconciler(serverAdapter),
		session.WithTimeout(cfg.OperationTimeout),
		session.WithLogger(log),
	)

	app, err := client.NewApp(machine, serverAdapter, tui.NewFormPrompter(), clipboard.WriteAll, cfg, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = app.Run(ctx, cfg.Args); err != nil {
		if !errors.Is(err, tui.ErrUserQuit) {
			fmt.Fprintln(os.Stderr, tui.RenderError(err))
		}
		log.Error().Err(err).Strs("args", cfg.Args).Msg("client command failed")
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/handler"
	"github.com/MKhiriev/go-pass-guard/internal/identity"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/server"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/workers"
	"github.com/MKhiriev/go-pass-guard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.AppBuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit})

	log := logger.NewLogger("go-pass-guard-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	authenticator := identity.NewAuthenticator(
		identity.NewProviders(cfg, services.IdentityService, log),
		services.AuthService,
		identity.NewPendingStore(cfg.App.PendingTTL),
		cfg.App.TokenSignKey,
		cfg.App.OperationTimeout,
		log,
	)

	handlers, err := handler.NewHandlers(services, authenticator, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers := workers.NewWorkers(
		workers.NewTickerWorker("pending-auth-evictor", cfg.Workers.EvictInterval, authenticator.Evict, log),
	)

	srv, err := server.NewServer(handlers, bgWorkers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	log.Info().Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Str("driver", cfg.Storage.DB.Driver).Msg("server starting")
	if err = srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

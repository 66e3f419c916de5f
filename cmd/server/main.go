package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/handler"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/server"
	"github.com/MKhiriev/zonesync/internal/service"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/internal/utils"
	"github.com/MKhiriev/zonesync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("zonesync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	// The hashing middleware verifies commit bodies with this key.
	utils.InitHasherPool(cfg.App.HashKey)

	repos, err := store.NewRepositories(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}

	services, err := service.NewServices(repos, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewWorkers(
		workers.NewPruneWorker(services.ChangeService, cfg.Workers.PruneInterval, log),
	)
	background.Run()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/zonesync/internal/adapter"
	"github.com/MKhiriev/zonesync/internal/config"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/service"
	"github.com/MKhiriev/zonesync/internal/store"
	"github.com/MKhiriev/zonesync/internal/tui"
	"github.com/MKhiriev/zonesync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("zonesync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(storages, serverAdapter, cfg, log)

	ui, err := tui.New(services, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	if err = run(context.Background(), services, ui, cfg.Workers); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return
		}
		log.Fatal().Err(err).Msg("client run error")
	}
}

// run drives one authenticated session: restore or ask for credentials,
// start the background sync job, and hand the terminal to the main loop.
// A logout restarts the whole cycle with a fresh login flow.
func run(ctx context.Context, services *service.ClientServices, ui *tui.TUI, workersCfg config.ClientWorkers) error {
	session, err := services.AuthService.RestoreSession(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNoSession) {
			return fmt.Errorf("restore session: %w", err)
		}

		session, err = ui.LoginFlow(ctx)
		if err != nil {
			return err
		}
	}

	services.SyncJob.Start(ctx, workersCfg.SyncInterval)
	defer services.SyncJob.Stop()

	logout, err := ui.MainLoop(ctx, session)
	if err != nil {
		return err
	}
	if logout {
		if err := services.AuthService.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		services.SyncJob.Stop()
		return run(ctx, services, ui, workersCfg)
	}

	return nil
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

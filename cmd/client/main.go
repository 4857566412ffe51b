package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/ai-interviewer/internal/adapter"
	"github.com/MKhiriev/ai-interviewer/internal/cache"
	"github.com/MKhiriev/ai-interviewer/internal/client"
	"github.com/MKhiriev/ai-interviewer/internal/config"
	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/internal/service"
	"github.com/MKhiriev/ai-interviewer/internal/store"
	"github.com/MKhiriev/ai-interviewer/internal/tui"
	"github.com/MKhiriev/ai-interviewer/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("ai-interviewer-client")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.Close()

	router := navigation.NewRouter(navigation.Login())

	requests, err := adapter.NewRequestClient(cfg.Adapter, localStorage.CredentialStore, router, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create request client")
	}
	serverAdapter := adapter.NewHTTPServerAdapter(requests, log)

	services := service.NewClientServices(localStorage, serverAdapter, cache.New(log), router, log)

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().Stringer("build", buildInfo).Msg("starting client")

	ui, err := tui.New(services, router, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, router, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintln(os.Stderr, err)
		localStorage.Close()
		os.Exit(1)
	}
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

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-visit-sync/internal/adapter"
	"github.com/MKhiriev/go-visit-sync/internal/client"
	"github.com/MKhiriev/go-visit-sync/internal/config"
	"github.com/MKhiriev/go-visit-sync/internal/connectivity"
	myHTTP "github.com/MKhiriev/go-visit-sync/internal/handler/http"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/server"
	"github.com/MKhiriev/go-visit-sync/internal/service"
	"github.com/MKhiriev/go-visit-sync/internal/store"
	"github.com/MKhiriev/go-visit-sync/internal/tui"
	"github.com/MKhiriev/go-visit-sync/internal/workers"
	"github.com/MKhiriev/go-visit-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	log := logger.NewClientLogger("visit-sync-client", "")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log.WithComponent("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("close local storage")
		}
	}()

	submissionClient, err := adapter.NewHTTPSubmissionClient(cfg.Adapter, cfg.App, log.WithComponent("adapter"))
	if err != nil {
		log.Fatal().Err(err).Msg("create submission client")
	}
	prober, err := adapter.NewHTTPProber(cfg.Adapter)
	if err != nil {
		log.Fatal().Err(err).Msg("create reachability prober")
	}
	monitor := connectivity.NewMonitor(prober, cfg.Connectivity, log.WithComponent("connectivity"))

	services, err := service.NewClientServices(storages, submissionClient, monitor, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	handler := myHTTP.NewHandler(services, cfg.App.HashKey, log.WithComponent("http"))
	statusServer, err := server.NewServer(handler, cfg.Server, log.WithComponent("server"))
	if err != nil {
		log.Fatal().Err(err).Msg("create status API server")
	}

	backgroundWorkers := workers.NewWorkers(log.WithComponent("workers"),
		workers.WorkerFunc(monitor.Run),
		workers.NewSyncJobWorker(services.SyncJob, cfg.Workers.SyncInterval),
	)

	ui := tui.New(services, buildInfo, log.WithComponent("tui"))

	app, err := client.NewApp(services, ui, statusServer, backgroundWorkers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-visit-sync/internal/logger"
	"github.com/MKhiriev/go-visit-sync/internal/service"
)

var errNoServices = errors.New("client services are not created")

type App struct {
	services *service.ClientServices
	ui       UI
	server   BackgroundServer
	workers  BackgroundWorkers

	logger *logger.Logger
}

// NewApp assembles the client runtime. ui and server may be nil, in which
// case the client runs headless until ctx is cancelled.
func NewApp(services *service.ClientServices, ui UI, server BackgroundServer, workers BackgroundWorkers, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errNoServices
	}
	return &App{
		services: services,
		ui:       ui,
		server:   server,
		workers:  workers,
		logger:   logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	recovered, err := a.services.CaptureService.RecoverInterrupted(ctx)
	if err != nil {
		return fmt.Errorf("recover interrupted visits: %w", err)
	}
	if recovered > 0 {
		a.logger.Warn().Str("func", "*App.Run").Int64("count", recovered).Msg("visits interrupted by a previous run were moved to error")
	}

	if err = a.services.SyncService.Refresh(ctx); err != nil {
		return err
	}

	a.services.SyncService.Start(ctx)
	if a.workers != nil {
		a.workers.Run(ctx)
	}

	var (
		wg        sync.WaitGroup
		serverErr error
	)
	if a.server != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if serverErr = a.server.RunServer(ctx); serverErr != nil {
				a.logger.Err(serverErr).Str("func", "*App.Run").Msg("status API stopped")
				cancel()
			}
		}()
	}

	if a.ui != nil {
		err = a.ui.Run(ctx)
	} else {
		<-ctx.Done()
	}
	cancel()

	wg.Wait()
	if a.workers != nil {
		a.workers.Wait()
	}
	a.services.SyncService.Wait()
	a.logger.Info().Str("func", "*App.Run").Msg("client stopped")

	return errors.Join(err, serverErr)
}

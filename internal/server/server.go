// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-visit-sync/internal/config"
	myHTTP "github.com/MKhiriev/go-visit-sync/internal/handler/http"
	"github.com/MKhiriev/go-visit-sync/internal/logger"
)

type server struct {
	httpServer   *httpServer
	shutdownOnce sync.Once
	logger       *logger.Logger
}

// NewServer binds the status API listener. The address must be a loopback
// address.
func NewServer(handler *myHTTP.Handler, cfg config.ClientServer, logger *logger.Logger) (Server, error) {
	logger.Info().Str("address", cfg.HTTPAddress).Msg("creating status API server...")

	if handler == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	httpSrv, err := newHTTPServer(handler.Init(), cfg, logger)
	if err != nil {
		return nil, err
	}

	return &server{httpServer: httpSrv, logger: logger}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.logger.Info().Str("address", s.httpServer.listener.Addr().String()).Msg("Launching HTTP server")
	go func() {
		errCh <- s.httpServer.RunServer()
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
		err := <-errCh
		s.logger.Info().Msg("server Shutdown gracefully")
		return err
	case err := <-errCh:
		return err
	}
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(s.httpServer.Shutdown)
}

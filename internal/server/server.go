// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the REST + WebSocket ingest surface. Handlers run
// raw payloads through the normalization pipeline and connected WebSocket
// clients receive every canonical event the bus dispatches.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/agentarium/agentarium/internal/agents"
	"github.com/agentarium/agentarium/internal/bus"
	"github.com/agentarium/agentarium/internal/config"
	"github.com/agentarium/agentarium/internal/consumers"
	"github.com/agentarium/agentarium/internal/events"
	"github.com/agentarium/agentarium/internal/ingest"
	"github.com/agentarium/agentarium/internal/logger"
)

var (
	log     *zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		l := logger.GetServerLogger()
		log = &l
	})
	return log
}

// Server is the REST + WebSocket ingest server.
type Server struct {
	httpServer *http.Server
	clients    *ClientRegistry
}

// New creates and wires up the ingest server. It does NOT start listening -
// call Run() for that. The WebSocket client registry is subscribed to every
// canonical event type on the bus so downstream consumers see the full
// stream.
func New(
	cfg *config.ServerConfig,
	ingestSvc *ingest.Service,
	agentReg *agents.Registry,
	b *bus.Bus,
) *Server {
	clients := NewClientRegistry()
	b.OnAll(func(ev events.AgentEvent, _ any) {
		clients.Broadcast(ev)
	})

	handlers := NewHandlers(ingestSvc, agentReg, consumers.NewFrame())

	r := chi.NewRouter()

	// Global middleware
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Tracing)
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(MaxBodySize(cfg.MaxBodyBytes))

	// Ingest routes
	r.Post("/v2/agents/register", handlers.RegisterAgent)
	r.Get("/v2/agents", handlers.ListAgents)
	r.Post("/v2/event", handlers.PostEvent)
	r.Post("/event", handlers.PostLegacyEvent) // legacy raw ingestion

	// Operational routes
	r.Get("/healthz", handlers.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	// WebSocket
	r.Get("/ws", HandleWebSocket(clients, cfg.AllowedOrigins))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		clients: clients,
	}
}

// Run starts the HTTP server and blocks until it stops. Cancelling ctx
// triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	getLog().Info().Str("addr", s.httpServer.Addr).Msg("Ingest server listening")

	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

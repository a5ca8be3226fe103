// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentarium/agentarium/internal/adapters"
	"github.com/agentarium/agentarium/internal/adapters/claudecode"
	"github.com/agentarium/agentarium/internal/agents"
	"github.com/agentarium/agentarium/internal/bus"
	"github.com/agentarium/agentarium/internal/config"
	"github.com/agentarium/agentarium/internal/consumers"
	"github.com/agentarium/agentarium/internal/ingest"
	"github.com/agentarium/agentarium/internal/logger"
	"github.com/agentarium/agentarium/internal/server"
	"github.com/agentarium/agentarium/internal/telemetry"
)

func main() {
	// Empty path = search the standard config locations; absence is fine,
	// defaults apply.
	cfg, err := config.NewConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.CloseGlobal()

	mainLog := logger.GetLogger("main")
	mainLog.Info().Msg("Starting agentarium ingest server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Init(ctx, &cfg.Telemetry)
	if err != nil {
		mainLog.Error().Err(err).Msg("Error initializing telemetry")
		fmt.Fprintf(os.Stderr, "Error initializing telemetry: %v\n", err)
		os.Exit(1)
	}

	// Optional per-deployment tool categorization overrides.
	var adapterOpts []claudecode.Option
	if path := cfg.Adapters.CategoryOverridesPath; path != "" {
		overrides, err := claudecode.LoadOverrides(path)
		if err != nil {
			mainLog.Error().Err(err).Str("path", path).Msg("Error loading category overrides")
			fmt.Fprintf(os.Stderr, "Error loading category overrides: %v\n", err)
			os.Exit(1)
		}
		mainLog.Info().Int("count", len(overrides)).Msg("Loaded category overrides")
		adapterOpts = append(adapterOpts, claudecode.WithOverrides(overrides))
	}

	registry := adapters.NewDefault(adapterOpts...)
	eventBus := bus.New()
	consumers.RegisterAll(eventBus)
	tracker := agents.NewTracker()
	agentReg := agents.NewRegistry()
	ingestSvc := ingest.NewService(registry, eventBus, tracker)

	srv := server.New(&cfg.Server, ingestSvc, agentReg, eventBus)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- srv.Run(ctx)
	}()

	// Wait for signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		mainLog.Info().Msgf("Received signal %v, shutting down...", sig)
	case err := <-serverErrChan:
		if err != nil {
			mainLog.Error().Err(err).Msg("Server error")
		}
	}

	// Graceful shutdown: fresh context with timeout, independent of serve ctx.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLog.Error().Err(err).Msg("Error shutting down server")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		mainLog.Error().Err(err).Msg("Error shutting down telemetry")
	}

	mainLog.Info().Msg("Ingest server shut down")
}

// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"github.com/rs/zerolog"
)

// Static logger getters that map directly to config.yaml log.levels.
// These ensure consistent logger names across the codebase.

// GetServerLogger returns a logger for the HTTP/WebSocket layer.
func GetServerLogger() zerolog.Logger {
	return GetLogger("server")
}

// GetAdaptersLogger returns a logger for adapter and normalization code.
func GetAdaptersLogger() zerolog.Logger {
	return GetLogger("adapters")
}

// GetIngestLogger returns a logger for the ingest pipeline.
func GetIngestLogger() zerolog.Logger {
	return GetLogger("ingest")
}

// GetConsumersLogger returns a logger for bus consumers.
func GetConsumersLogger() zerolog.Logger {
	return GetLogger("consumers")
}

// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics exposes Prometheus instrumentation for the ingest and
// dispatch pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentarium_events_ingested_total",
		Help: "Total raw payloads accepted for normalization, labelled by source framework.",
	}, []string{"source"})

	EventsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agentarium_events_rejected_total",
		Help: "Total raw payloads rejected because no adapter recognized the format.",
	})

	EventsFiltered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agentarium_events_filtered_total",
		Help: "Total payloads recognized by an adapter but deliberately not surfaced.",
	})

	EventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentarium_events_dispatched_total",
		Help: "Total canonical events fanned out on the bus, labelled by event type.",
	}, []string{"type"})

	DuplicateInvocations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agentarium_duplicate_tool_invocations_total",
		Help: "Total tool_start events whose correlation id was already outstanding.",
	})

	NormalizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "agentarium_normalize_duration_ms",
		Help:    "Normalization plus dispatch latency in milliseconds.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
	})

	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agentarium_websocket_clients",
		Help: "Currently connected WebSocket consumers.",
	})
)

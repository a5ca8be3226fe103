// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ingest runs raw payloads through the adapter registry and fans the
// resulting canonical events out on the bus. This is the seam between the
// transport layer and the normalization core.
package ingest

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentarium/agentarium/internal/adapters"
	"github.com/agentarium/agentarium/internal/agents"
	"github.com/agentarium/agentarium/internal/bus"
	"github.com/agentarium/agentarium/internal/events"
	"github.com/agentarium/agentarium/internal/logger"
	"github.com/agentarium/agentarium/internal/metrics"
)

var (
	log     *zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		l := logger.GetIngestLogger()
		log = &l
	})
	return log
}

// Service normalizes raw payloads and dispatches the canonical results.
type Service struct {
	registry *adapters.Registry
	bus      *bus.Bus
	tracker  *agents.Tracker
}

// NewService wires the normalization pipeline. The tracker may be nil when
// tool correlation is not wanted (some tests).
func NewService(registry *adapters.Registry, b *bus.Bus, tracker *agents.Tracker) *Service {
	return &Service{registry: registry, bus: b, tracker: tracker}
}

// Process normalizes one raw payload and emits every resulting canonical
// event on the bus, in order, with the supplied dispatch context. Returns
// the emitted events. adapters.ErrUnrecognizedFormat propagates to the
// caller as a rejection; an empty result with nil error means the payload
// was recognized but filtered.
func (s *Service) Process(raw json.RawMessage, ctx any) ([]events.AgentEvent, error) {
	started := time.Now()

	evs, err := s.registry.Normalize(raw)
	if err != nil {
		if err == adapters.ErrUnrecognizedFormat {
			metrics.EventsRejected.Inc()
		}
		return nil, err
	}
	if len(evs) == 0 {
		metrics.EventsFiltered.Inc()
		return nil, nil
	}

	for i := range evs {
		s.dispatch(&evs[i], ctx)
	}

	metrics.NormalizeDuration.Observe(float64(time.Since(started).Microseconds()) / 1000)
	return evs, nil
}

func (s *Service) dispatch(ev *events.AgentEvent, ctx any) {
	metrics.EventsIngested.WithLabelValues(ev.Source).Inc()
	s.correlate(ev)
	metrics.EventsDispatched.WithLabelValues(string(ev.Type)).Inc()
	s.bus.Emit(*ev, ctx)
}

// correlate maintains the outstanding-invocation bookkeeping: it backfills a
// tool_end duration when the source omitted it, and resolves which spawned
// subagent a subagent_complete refers to for sources whose completion events
// do not carry the spawn's id.
func (s *Service) correlate(ev *events.AgentEvent) {
	if s.tracker == nil {
		return
	}

	switch ev.Type {
	case events.TypeToolStart:
		if ev.Tool == nil {
			return
		}
		if err := s.tracker.Start(ev.AgentID, ev.Tool.ID, time.UnixMilli(ev.Timestamp)); err != nil {
			metrics.DuplicateInvocations.Inc()
			getLog().Warn().Err(err).
				Str("agentId", ev.AgentID).
				Str("toolId", ev.Tool.ID).
				Msg("Duplicate outstanding tool invocation id")
		}
	case events.TypeToolEnd:
		if ev.Tool == nil {
			return
		}
		if d, ok := s.tracker.End(ev.AgentID, ev.Tool.ID, time.UnixMilli(ev.Timestamp)); ok && ev.DurationMS == 0 {
			ev.DurationMS = d.Milliseconds()
		}
	case events.TypeSubagentSpawn:
		parent := ev.ParentAgentID
		if parent == "" {
			parent = ev.AgentID
		}
		s.tracker.SpawnSubagent(parent, ev.SubagentID)
	case events.TypeSubagentComplete:
		if resolved, ok := s.tracker.CompleteSubagent(ev.AgentID, ev.SubagentID); ok {
			ev.SubagentID = resolved
		}
	}
}

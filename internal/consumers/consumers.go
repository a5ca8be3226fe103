// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package consumers holds the reference handler groups that subscribe to
// the event bus. Each group stays decoupled from the others and from the
// source framework: they only see canonical events plus the shared dispatch
// context.
package consumers

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentarium/agentarium/internal/bus"
	"github.com/agentarium/agentarium/internal/events"
	"github.com/agentarium/agentarium/internal/logger"
)

var (
	log     *zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		l := logger.GetConsumersLogger()
		log = &l
	})
	return log
}

// Frame is the per-event dispatch context the transport layer hands to
// Emit. Handler groups share state through it; the bus itself never looks
// inside.
type Frame struct {
	mu            sync.Mutex
	AgentStations map[string]events.Station // agentID → current station
	SoundQueue    []string
	Notices       []string
	Subagents     map[string]string // subagentID → parent agent
}

// NewFrame creates an empty dispatch context.
func NewFrame() *Frame {
	return &Frame{
		AgentStations: make(map[string]events.Station),
		Subagents:     make(map[string]string),
	}
}

// RegisterMovement routes agents to their stations on tool activity.
func RegisterMovement(b *bus.Bus) {
	b.On(events.TypeToolStart, func(ev events.AgentEvent, ctx any) {
		frame, ok := ctx.(*Frame)
		if !ok {
			return
		}
		station := events.StationFor(ev.Tool.Category)
		frame.mu.Lock()
		frame.AgentStations[ev.AgentID] = station
		frame.mu.Unlock()
	})
	b.On(events.TypeStop, func(ev events.AgentEvent, ctx any) {
		frame, ok := ctx.(*Frame)
		if !ok {
			return
		}
		frame.mu.Lock()
		frame.AgentStations[ev.AgentID] = events.StationCenter
		frame.mu.Unlock()
	})
}

// RegisterSound queues the sound for each tool invocation.
func RegisterSound(b *bus.Bus) {
	b.On(events.TypeToolStart, func(ev events.AgentEvent, ctx any) {
		frame, ok := ctx.(*Frame)
		if !ok {
			return
		}
		frame.mu.Lock()
		frame.SoundQueue = append(frame.SoundQueue, events.SoundFor(ev.Tool.Category))
		frame.mu.Unlock()
	})
}

// RegisterNotifications collects notification messages and logs them.
func RegisterNotifications(b *bus.Bus) {
	b.On(events.TypeNotification, func(ev events.AgentEvent, ctx any) {
		getLog().Info().
			Str("agentId", ev.AgentID).
			Str("message", ev.Message).
			Msg("Agent notification")
		if frame, ok := ctx.(*Frame); ok {
			frame.mu.Lock()
			frame.Notices = append(frame.Notices, ev.Message)
			frame.mu.Unlock()
		}
	})
}

// RegisterSubagentTracking mirrors subagent lifecycles into the frame so a
// downstream renderer can materialize and retire agent zones.
func RegisterSubagentTracking(b *bus.Bus) {
	b.On(events.TypeSubagentSpawn, func(ev events.AgentEvent, ctx any) {
		frame, ok := ctx.(*Frame)
		if !ok {
			return
		}
		frame.mu.Lock()
		frame.Subagents[ev.SubagentID] = ev.ParentAgentID
		frame.mu.Unlock()
	})
	b.On(events.TypeSubagentComplete, func(ev events.AgentEvent, ctx any) {
		frame, ok := ctx.(*Frame)
		if !ok {
			return
		}
		frame.mu.Lock()
		delete(frame.Subagents, ev.SubagentID)
		frame.mu.Unlock()
	})
}

// RegisterAll wires every reference handler group onto the bus.
func RegisterAll(b *bus.Bus) {
	RegisterMovement(b)
	RegisterSound(b)
	RegisterNotifications(b)
	RegisterSubagentTracking(b)
}

// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generic passes through payloads that already satisfy the canonical
// event shape. It exists so external sources emitting canonical JSON need no
// custom adapter; it is intentionally registered last.
package generic

import (
	"encoding/json"
	"fmt"

	"github.com/agentarium/agentarium/internal/events"
)

// Source is the fallback framework identifier for payloads that omit one.
// In practice canonical payloads always carry their own source.
const Source = "generic"

// Adapter implements events.Adapter for canonical-shaped payloads.
type Adapter struct{}

// New creates a pass-through adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return Source
}

// CanHandle reports whether raw already looks canonical: it has agentId,
// source, and a type drawn from the canonical enumeration.
func (a *Adapter) CanHandle(raw json.RawMessage) bool {
	var probe struct {
		Type    string `json:"type"`
		AgentID string `json:"agentId"`
		Source  string `json:"source"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.AgentID != "" && probe.Source != "" && events.EventType(probe.Type).Valid()
}

// Categorize has no framework vocabulary to consult; every name resolves to
// the documented default.
func (a *Adapter) Categorize(string) events.ToolCategory {
	return events.CategoryOther
}

// Normalize copies the payload through, filling id/timestamp when absent,
// defaulting an invalid or missing tool category to other, and synthesizing
// a tool invocation id when missing. Payloads whose variant-specific fields
// are malformed (e.g. a tool_start without a tool name) are filtered rather
// than partially constructed.
func (a *Adapter) Normalize(raw json.RawMessage) ([]events.AgentEvent, error) {
	var ev events.AgentEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("failed to unmarshal canonical event: %w", err)
	}

	if !ev.Type.Valid() || ev.AgentID == "" || ev.Source == "" {
		return nil, nil
	}

	ev.Fill()

	switch ev.Type {
	case events.TypeToolStart, events.TypeToolEnd:
		if ev.Tool == nil || ev.Tool.Name == "" {
			return nil, nil
		}
		if !ev.Tool.Category.Valid() {
			ev.Tool.Category = events.CategoryOther
		}
		if ev.Tool.ID == "" {
			ev.Tool.ID = events.NewEventID()
		}
	case events.TypeSubagentSpawn:
		if ev.SubagentID == "" {
			return nil, nil
		}
	}

	return []events.AgentEvent{ev}, nil
}

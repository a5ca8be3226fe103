// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package claudecode adapts Claude Code lifecycle hook payloads to the
// canonical event schema. This is the richest adapter: it owns the tool
// categorization tables, per-tool context derivation, and the delegate-tool
// split into tool_start + subagent_spawn.
package claudecode

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentarium/agentarium/internal/events"
	"github.com/agentarium/agentarium/internal/logger"
)

var (
	log     *zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		l := logger.GetAdaptersLogger()
		log = &l
	})
	return log
}

// Source identifies events normalized by this adapter.
const Source = "claude-code"

// Adapter implements events.Adapter for Claude Code hook payloads.
type Adapter struct {
	overrides map[string]events.ToolCategory
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithOverrides shadows entries of the built-in tool categorization table.
func WithOverrides(overrides map[string]events.ToolCategory) Option {
	return func(a *Adapter) {
		a.overrides = overrides
	}
}

// New creates a Claude Code adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Name() string {
	return Source
}

// CanHandle reports whether raw carries a recognized lifecycle hook type and
// a session identifier. It probes only those two fields.
func (a *Adapter) CanHandle(raw json.RawMessage) bool {
	var probe struct {
		Type      string `json:"type"`
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	if probe.SessionID == "" {
		return false
	}
	_, ok := hookNames[probe.Type]
	return ok
}

// Normalize translates one hook payload into canonical events. Hook types
// the adapter does not surface yield (nil, nil).
func (a *Adapter) Normalize(raw json.RawMessage) ([]events.AgentEvent, error) {
	var hook hookEvent
	if err := json.Unmarshal(raw, &hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hook event: %w", err)
	}

	base := events.AgentEvent{
		ID:        events.NewEventID(),
		Timestamp: hook.Timestamp,
		AgentID:   hook.SessionID,
		Source:    Source,
		CWD:       hook.CWD,
		Metadata:  hook.Metadata,
	}
	if base.Timestamp == 0 {
		base.Timestamp = events.NowMillis()
	}

	switch hook.Type {
	case hookPreToolUse:
		return a.normalizeToolStart(hook, base)
	case hookPostToolUse:
		return a.normalizeToolEnd(hook, base)
	case hookSessionStart:
		base.Type = events.TypeSessionStart
		base.Trigger = events.NormalizeTrigger(hook.Trigger)
		return []events.AgentEvent{base}, nil
	case hookSessionEnd:
		base.Type = events.TypeSessionEnd
		return []events.AgentEvent{base}, nil
	case hookStop:
		base.Type = events.TypeStop
		return []events.AgentEvent{base}, nil
	case hookSubagentStop:
		base.Type = events.TypeSubagentComplete
		// The hook does not identify which subagent finished. The session id
		// is a provisional value; the ingest pipeline resolves it against the
		// session's outstanding spawns.
		base.SubagentID = hook.SessionID
		return []events.AgentEvent{base}, nil
	case hookUserPromptSubmit:
		base.Type = events.TypeUserPrompt
		base.Prompt = hook.Prompt
		return []events.AgentEvent{base}, nil
	case hookNotification:
		base.Type = events.TypeNotification
		base.Message = hook.Message
		return []events.AgentEvent{base}, nil
	case hookPreCompact:
		base.Type = events.TypePreCompact
		return []events.AgentEvent{base}, nil
	default:
		// Unknown hook types are dropped, not errors.
		getLog().Debug().Str("type", hook.Type).Msg("Dropping unrecognized hook type")
		return nil, nil
	}
}

func (a *Adapter) normalizeToolStart(hook hookEvent, base events.AgentEvent) ([]events.AgentEvent, error) {
	if hook.Tool == "" {
		return nil, nil
	}

	category := a.Categorize(hook.Tool)
	toolID := hook.ToolUseID
	if toolID == "" {
		toolID = events.NewEventID()
	}

	start := base
	start.Type = events.TypeToolStart
	start.Tool = &events.ToolInfo{Name: hook.Tool, Category: category, ID: toolID}
	start.Input = hook.ToolInput
	start.Context = deriveContext(category, hook.ToolInput)

	out := []events.AgentEvent{start}

	// Delegation is two logical events: the originating station still
	// reflects a delegate action, and downstream consumers materialize a
	// new agent zone for the spawned subagent.
	if hook.Tool == delegateToolName {
		spawn := base
		spawn.ID = events.NewEventID()
		spawn.Type = events.TypeSubagentSpawn
		// Copying base aliases the metadata map; give the spawn its own so
		// consumers mutating one event's bag cannot affect the other.
		spawn.Metadata = maps.Clone(base.Metadata)
		spawn.SubagentID = "sub-" + toolID
		spawn.ParentAgentID = hook.SessionID
		spawn.Task = stringField(hook.ToolInput, "description")
		out = append(out, spawn)
	}

	return out, nil
}

func (a *Adapter) normalizeToolEnd(hook hookEvent, base events.AgentEvent) ([]events.AgentEvent, error) {
	if hook.Tool == "" {
		return nil, nil
	}

	toolID := hook.ToolUseID
	if toolID == "" {
		toolID = events.NewEventID()
	}

	end := base
	end.Type = events.TypeToolEnd
	end.Tool = &events.ToolInfo{Name: hook.Tool, Category: a.Categorize(hook.Tool), ID: toolID}
	end.DurationMS = hook.DurationMS
	end.Output = truncate(hook.Output, 500)

	success := true
	if hook.Success != nil {
		success = *hook.Success
	}
	end.Success = &success

	return []events.AgentEvent{end}, nil
}

// maxCommandContext caps the command snippet shown for shell tools.
const maxCommandContext = 30

// deriveContext builds the short human-readable context string shown next to
// a tool invocation. Absence of an extractable value yields "" (omitted).
func deriveContext(category events.ToolCategory, input map[string]any) string {
	switch category {
	case events.CategoryRead, events.CategoryWrite, events.CategoryEdit:
		for _, key := range []string{"file_path", "notebook_path", "path"} {
			if path := stringField(input, key); path != "" {
				return filepath.Base(path)
			}
		}
	case events.CategoryExecute:
		if cmd := stringField(input, "command"); cmd != "" {
			if i := strings.IndexByte(cmd, '\n'); i >= 0 {
				cmd = cmd[:i]
			}
			return truncate(cmd, maxCommandContext)
		}
	case events.CategorySearch:
		for _, key := range []string{"pattern", "query"} {
			if pattern := stringField(input, key); pattern != "" {
				return "/" + pattern + "/"
			}
		}
	case events.CategoryNetwork:
		if rawURL := stringField(input, "url"); rawURL != "" {
			if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
				return u.Hostname()
			}
			return truncate(rawURL, maxCommandContext)
		}
	case events.CategoryPlan:
		return "planning"
	}
	return ""
}

func stringField(input map[string]any, key string) string {
	if input == nil {
		return ""
	}
	s, _ := input[key].(string)
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

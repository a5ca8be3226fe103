// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package events defines the canonical event schema shared by every adapter
// and consumer. This package is designed to have no dependencies on the rest
// of the module to avoid import cycles.
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType tags an AgentEvent. The tag alone determines which
// variant-specific fields are populated - consumers discriminate on it
// without probing other fields.
type EventType string

const (
	// Tool events
	TypeToolStart EventType = "tool_start"
	TypeToolEnd   EventType = "tool_end"

	// Session lifecycle events
	TypeSessionStart EventType = "session_start"
	TypeSessionEnd   EventType = "session_end"
	TypeStop         EventType = "stop"

	// Interaction events
	TypeUserPrompt   EventType = "user_prompt"
	TypeNotification EventType = "notification"
	TypePreCompact   EventType = "pre_compact"

	// Subagent events
	TypeSubagentSpawn    EventType = "subagent_spawn"
	TypeSubagentComplete EventType = "subagent_complete"
)

// AllTypes lists every canonical event type in a stable order.
var AllTypes = []EventType{
	TypeToolStart,
	TypeToolEnd,
	TypeSessionStart,
	TypeSessionEnd,
	TypeStop,
	TypeUserPrompt,
	TypeNotification,
	TypePreCompact,
	TypeSubagentSpawn,
	TypeSubagentComplete,
}

// Valid reports whether t is one of the canonical event types.
func (t EventType) Valid() bool {
	switch t {
	case TypeToolStart, TypeToolEnd,
		TypeSessionStart, TypeSessionEnd, TypeStop,
		TypeUserPrompt, TypeNotification, TypePreCompact,
		TypeSubagentSpawn, TypeSubagentComplete:
		return true
	}
	return false
}

// StartTrigger describes what caused a session to start.
type StartTrigger string

const (
	TriggerStartup StartTrigger = "startup"
	TriggerResume  StartTrigger = "resume"
	TriggerOther   StartTrigger = "other"
)

// NormalizeTrigger maps a framework-specific trigger string onto the small
// canonical enumeration. startup and resume pass through, everything else
// collapses to other.
func NormalizeTrigger(s string) StartTrigger {
	switch StartTrigger(s) {
	case TriggerStartup, TriggerResume:
		return StartTrigger(s)
	default:
		return TriggerOther
	}
}

// ToolInfo identifies one tool invocation. ID is the correlation key that
// matches a tool_start with its eventual tool_end and must be unique per
// outstanding invocation within an agent.
type ToolInfo struct {
	Name     string       `json:"name"`
	Category ToolCategory `json:"category"`
	ID       string       `json:"id"`
}

// AgentEvent is the canonical event every consumer is written against,
// independent of the source framework. Variant-specific fields are only
// populated for the event types documented on each field.
type AgentEvent struct {
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestamp"` // Unix milliseconds
	Type      EventType      `json:"type"`
	AgentID   string         `json:"agentId"`
	Source    string         `json:"source"` // originating framework identifier
	CWD       string         `json:"cwd,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`

	// tool_start and tool_end
	Tool *ToolInfo `json:"tool,omitempty"`

	// tool_start
	Input   map[string]any `json:"input,omitempty"`
	Context string         `json:"context,omitempty"`

	// tool_end
	Success    *bool  `json:"success,omitempty"`
	DurationMS int64  `json:"durationMs,omitempty"`
	Output     string `json:"output,omitempty"`

	// user_prompt
	Prompt string `json:"prompt,omitempty"`

	// notification
	Message string `json:"message,omitempty"`

	// session_start
	Trigger StartTrigger `json:"trigger,omitempty"`

	// subagent_spawn and subagent_complete
	SubagentID    string `json:"subagentId,omitempty"`
	ParentAgentID string `json:"parentAgentId,omitempty"`
	Task          string `json:"task,omitempty"`
}

// Validation errors returned by AgentEvent.Validate.
var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrMissingField     = errors.New("missing required field")
)

// Validate checks the type-tag/field invariant: required base fields are
// present and the variant-specific fields demanded by the type tag exist.
// Adapters must never emit an event that fails validation.
func (e *AgentEvent) Validate() error {
	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.Type)
	}
	if e.ID == "" {
		return fmt.Errorf("%w: id", ErrMissingField)
	}
	if e.Timestamp <= 0 {
		return fmt.Errorf("%w: timestamp", ErrMissingField)
	}
	if e.AgentID == "" {
		return fmt.Errorf("%w: agentId", ErrMissingField)
	}
	if e.Source == "" {
		return fmt.Errorf("%w: source", ErrMissingField)
	}

	switch e.Type {
	case TypeToolStart, TypeToolEnd:
		if e.Tool == nil || e.Tool.Name == "" {
			return fmt.Errorf("%w: tool.name", ErrMissingField)
		}
		if !e.Tool.Category.Valid() {
			return fmt.Errorf("invalid tool category %q", e.Tool.Category)
		}
		if e.Tool.ID == "" {
			return fmt.Errorf("%w: tool.id", ErrMissingField)
		}
	case TypeSubagentSpawn:
		if e.SubagentID == "" {
			return fmt.Errorf("%w: subagentId", ErrMissingField)
		}
	}
	return nil
}

// Fill populates generated defaults on an otherwise complete event: a fresh
// id when absent and the current time when the timestamp is missing.
func (e *AgentEvent) Fill() {
	if e.ID == "" {
		e.ID = NewEventID()
	}
	if e.Timestamp == 0 {
		e.Timestamp = NowMillis()
	}
}

// NewEventID generates a unique event identifier.
func NewEventID() string {
	return uuid.NewString()
}

// NowMillis returns the current time as Unix milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// Adapter translates one source framework's native event shape into
// canonical events. Implementations are stateless: pure functions of the
// raw input.
type Adapter interface {
	// Name returns the unique adapter identifier (e.g. "claude-code").
	Name() string

	// CanHandle is a cheap, side-effect-free structural test on the raw
	// payload. It must never attempt full normalization to decide.
	CanHandle(raw json.RawMessage) bool

	// Categorize maps a framework-specific tool name to a canonical
	// category. Total: unknown names resolve to CategoryOther.
	Categorize(toolName string) ToolCategory

	// Normalize translates one raw payload into zero, one, or many
	// canonical events. A (nil, nil) return means the format was
	// recognized but this specific event is deliberately not surfaced -
	// a filter, not an error.
	Normalize(raw json.RawMessage) ([]AgentEvent, error)
}

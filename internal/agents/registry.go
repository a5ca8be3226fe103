// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agents manages registered agent sessions and the bookkeeping of
// their outstanding tool invocations.
package agents

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Registered is the immutable record created once per agent session at
// registration time. The normalization layer never mutates it.
type Registered struct {
	AgentID      string         `json:"agentId"`
	Name         string         `json:"name"`
	Framework    string         `json:"framework"`
	CWD          string         `json:"cwd,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	RegisteredAt time.Time      `json:"registeredAt"`
}

var ErrMissingName = errors.New("agent name is required")

// Registry stores registered agents keyed by their server-assigned id.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Registered
	order []string
}

// NewRegistry creates an empty agent registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Registered)}
}

// Register creates a new agent session record with a server-assigned id.
func (r *Registry) Register(name, framework, cwd string, metadata map[string]any) (Registered, error) {
	if name == "" {
		return Registered{}, ErrMissingName
	}
	if framework == "" {
		framework = "unknown"
	}

	agent := Registered{
		AgentID:      uuid.NewString(),
		Name:         name,
		Framework:    framework,
		CWD:          cwd,
		Metadata:     metadata,
		RegisteredAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.byID[agent.AgentID] = agent
	r.order = append(r.order, agent.AgentID)
	r.mu.Unlock()

	return agent, nil
}

// Get returns the agent record for an id.
func (r *Registry) Get(agentID string) (Registered, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent, ok := r.byID[agentID]
	return agent, ok
}

// List returns all registered agents in registration order.
func (r *Registry) List() []Registered {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.order, func(id string, _ int) Registered {
		return r.byID[id]
	})
}

// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package adapters selects the right translator for a raw event payload.
// A Registry holds an ordered adapter list, more-specific first, and
// dispatches each payload to the first adapter that claims it.
package adapters

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/samber/lo"

	"github.com/agentarium/agentarium/internal/adapters/claudecode"
	"github.com/agentarium/agentarium/internal/adapters/generic"
	"github.com/agentarium/agentarium/internal/events"
)

// Adapter is re-exported for convenience so callers can import just this
// package.
type Adapter = events.Adapter

// ErrUnrecognizedFormat signals that no registered adapter claimed the raw
// payload. A rejection, not a crash.
var ErrUnrecognizedFormat = errors.New("no adapter recognizes event format")

// Registry is an explicit, constructor-injected ordered adapter list. It is
// the sole mutator of registration order.
type Registry struct {
	mu       sync.RWMutex
	adapters []Adapter
}

// New creates a registry with the given adapters in first-match order.
// Tests construct isolated registries this way.
func New(adapters ...Adapter) *Registry {
	return &Registry{adapters: adapters}
}

// NewDefault creates a registry with the built-in adapters: the Claude Code
// adapter first, the canonical pass-through last.
func NewDefault(opts ...claudecode.Option) *Registry {
	return New(claudecode.New(opts...), generic.New())
}

// Register inserts an adapter at the front of the list so user-supplied
// adapters take priority over built-ins.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters = append([]Adapter{a}, r.adapters...)
}

// Normalize dispatches raw to the first adapter whose CanHandle returns
// true. Returns ErrUnrecognizedFormat when no adapter matches, and an empty
// slice with a nil error when the matching adapter deliberately filtered
// the event.
func (r *Registry) Normalize(raw json.RawMessage) ([]events.AgentEvent, error) {
	for _, a := range r.snapshot() {
		if a.CanHandle(raw) {
			return a.Normalize(raw)
		}
	}
	return nil, ErrUnrecognizedFormat
}

// Names returns the registered adapter names in dispatch order.
func (r *Registry) Names() []string {
	return lo.Map(r.snapshot(), func(a Adapter, _ int) string {
		return a.Name()
	})
}

// snapshot copies the adapter list so a dispatch pass is unaffected by
// concurrent registration.
func (r *Registry) snapshot() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

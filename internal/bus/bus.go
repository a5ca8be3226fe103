// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bus implements the typed publish/subscribe dispatcher that fans a
// normalized event out to every handler registered for its type.
package bus

import (
	"sync"

	"github.com/agentarium/agentarium/internal/events"
)

// Handler receives a canonical event plus the opaque context the caller
// supplied at emit time. The bus never inspects or mutates the context;
// handler groups share per-event state through it without coupling to each
// other.
type Handler func(ev events.AgentEvent, ctx any)

// Bus dispatches events synchronously: handlers for a type run one after
// another in registration order on the calling goroutine. Handler panics are
// not recovered - masking them would hide real handler bugs.
type Bus struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[events.EventType][]Handler)}
}

// On registers a handler for exactly one canonical event type. Multiple
// handlers may register for the same type; all are invoked in registration
// order on every matching event.
func (b *Bus) On(t events.EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// OnAll registers a handler for every canonical event type.
func (b *Bus) OnAll(h Handler) {
	for _, t := range events.AllTypes {
		b.On(t, h)
	}
}

// Emit invokes each handler registered for the event's type with
// (event, ctx). No handlers registered for that type is a no-op, not an
// error. The handler list is snapshotted first, so registration during a
// dispatch pass cannot invalidate the iteration.
func (b *Bus) Emit(ev events.AgentEvent, ctx any) {
	b.mu.RLock()
	registered := b.handlers[ev.Type]
	snapshot := make([]Handler, len(registered))
	copy(snapshot, registered)
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(ev, ctx)
	}
}

// HandlerCount returns how many handlers are registered for a type.
func (b *Bus) HandlerCount(t events.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[t])
}

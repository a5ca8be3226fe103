// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package adapters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentarium/agentarium/internal/events"
)

// stubAdapter claims everything and stamps its name as the source.
type stubAdapter struct {
	name    string
	handles bool
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) CanHandle(json.RawMessage) bool { return s.handles }

func (s *stubAdapter) Categorize(string) events.ToolCategory { return events.CategoryOther }

func (s *stubAdapter) Normalize(json.RawMessage) ([]events.AgentEvent, error) {
	return []events.AgentEvent{{
		ID:        events.NewEventID(),
		Timestamp: events.NowMillis(),
		Type:      events.TypeStop,
		AgentID:   "a1",
		Source:    s.name,
	}}, nil
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	r := New(
		&stubAdapter{name: "first", handles: true},
		&stubAdapter{name: "second", handles: true},
	)

	evs, err := r.Normalize(json.RawMessage(`{}`))
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "first", evs[0].Source)
}

func TestRegistry_SkipsNonMatching(t *testing.T) {
	r := New(
		&stubAdapter{name: "picky", handles: false},
		&stubAdapter{name: "fallback", handles: true},
	)

	evs, err := r.Normalize(json.RawMessage(`{}`))
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "fallback", evs[0].Source)
}

func TestRegistry_UnrecognizedFormat(t *testing.T) {
	r := New(&stubAdapter{name: "picky", handles: false})

	_, err := r.Normalize(json.RawMessage(`{"shape":"alien"}`))
	assert.ErrorIs(t, err, ErrUnrecognizedFormat)
}

// A custom adapter registered after construction wins over both built-ins
// for any input it claims.
func TestRegistry_RegisterShadowsBuiltins(t *testing.T) {
	r := NewDefault()
	r.Register(&stubAdapter{name: "custom", handles: true})

	assert.Equal(t, []string{"custom", "claude-code", "generic"}, r.Names())

	// Even a payload both built-ins would claim goes to the custom adapter.
	raw := json.RawMessage(`{"type":"pre_tool_use","sessionId":"s1","tool":"Read"}`)
	evs, err := r.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "custom", evs[0].Source)
}

func TestRegistry_DefaultRouting(t *testing.T) {
	r := NewDefault()

	t.Run("hook payload goes to claude-code", func(t *testing.T) {
		evs, err := r.Normalize(json.RawMessage(`{"type":"stop","sessionId":"s1"}`))
		require.NoError(t, err)
		require.Len(t, evs, 1)
		assert.Equal(t, "claude-code", evs[0].Source)
		assert.Equal(t, events.TypeStop, evs[0].Type)
	})

	t.Run("canonical payload passes through", func(t *testing.T) {
		evs, err := r.Normalize(json.RawMessage(`{"type":"stop","agentId":"a1","source":"other-framework"}`))
		require.NoError(t, err)
		require.Len(t, evs, 1)
		assert.Equal(t, "other-framework", evs[0].Source)
	})

	t.Run("alien payload is rejected", func(t *testing.T) {
		_, err := r.Normalize(json.RawMessage(`{"kind":"telemetry","value":42}`))
		assert.ErrorIs(t, err, ErrUnrecognizedFormat)
	})

	t.Run("unknown type outside both vocabularies is rejected", func(t *testing.T) {
		_, err := r.Normalize(json.RawMessage(`{"type":"teleport","agentId":"a1","source":"x","sessionId":"s1"}`))
		assert.ErrorIs(t, err, ErrUnrecognizedFormat)
	})
}

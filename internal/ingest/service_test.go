// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentarium/agentarium/internal/adapters"
	"github.com/agentarium/agentarium/internal/agents"
	"github.com/agentarium/agentarium/internal/bus"
	"github.com/agentarium/agentarium/internal/consumers"
	"github.com/agentarium/agentarium/internal/events"
)

func newService(b *bus.Bus) *Service {
	return NewService(adapters.NewDefault(), b, agents.NewTracker())
}

func TestService_ProcessDispatchesInOrder(t *testing.T) {
	b := bus.New()
	var seen []events.EventType
	b.OnAll(func(ev events.AgentEvent, _ any) { seen = append(seen, ev.Type) })

	svc := newService(b)

	// The delegate tool yields tool_start then subagent_spawn, fanned out in
	// that order.
	evs, err := svc.Process(json.RawMessage(`{
		"type": "pre_tool_use",
		"sessionId": "s1",
		"tool": "Task",
		"toolInput": {"description": "x"},
		"toolUseId": "t2"
	}`), nil)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, []events.EventType{events.TypeToolStart, events.TypeSubagentSpawn}, seen)
}

func TestService_ProcessRejectsUnrecognized(t *testing.T) {
	svc := newService(bus.New())

	_, err := svc.Process(json.RawMessage(`{"what":"is this"}`), nil)
	assert.ErrorIs(t, err, adapters.ErrUnrecognizedFormat)
}

func TestService_ProcessFilteredIsNotAnError(t *testing.T) {
	svc := newService(bus.New())

	evs, err := svc.Process(json.RawMessage(`{"type":"pre_tool_use","sessionId":"s1"}`), nil)
	require.NoError(t, err)
	assert.Empty(t, evs)
}

func TestService_ProcessPassesContextToHandlers(t *testing.T) {
	b := bus.New()
	type frame struct{ sounds []string }
	b.On(events.TypeToolStart, func(ev events.AgentEvent, ctx any) {
		ctx.(*frame).sounds = append(ctx.(*frame).sounds, events.SoundFor(ev.Tool.Category))
	})

	svc := newService(b)
	shared := &frame{}

	_, err := svc.Process(json.RawMessage(`{
		"type": "pre_tool_use",
		"sessionId": "s1",
		"tool": "Read",
		"toolInput": {"file_path": "/a/b.txt"},
		"toolUseId": "t1"
	}`), shared)
	require.NoError(t, err)
	assert.Equal(t, []string{"read"}, shared.sounds)
}

func TestService_BackfillsToolEndDuration(t *testing.T) {
	b := bus.New()
	var got events.AgentEvent
	b.On(events.TypeToolEnd, func(ev events.AgentEvent, _ any) { got = ev })

	svc := newService(b)

	start := fmt.Sprintf(`{"type":"pre_tool_use","sessionId":"s1","tool":"Bash","toolInput":{"command":"ls"},"toolUseId":"t1","timestamp":%d}`, int64(1700000000000))
	_, err := svc.Process(json.RawMessage(start), nil)
	require.NoError(t, err)

	end := fmt.Sprintf(`{"type":"post_tool_use","sessionId":"s1","tool":"Bash","toolUseId":"t1","timestamp":%d}`, int64(1700000000400))
	_, err = svc.Process(json.RawMessage(end), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(400), got.DurationMS)
}

// A delegate spawn followed by the native stop hook must drain the subagent
// roster: the stop hook does not carry the spawn's derived id, so the
// pipeline resolves it before dispatch.
func TestService_SubagentRosterDrains(t *testing.T) {
	b := bus.New()
	consumers.RegisterAll(b)
	svc := newService(b)
	frame := consumers.NewFrame()

	_, err := svc.Process(json.RawMessage(`{
		"type": "pre_tool_use",
		"sessionId": "s1",
		"tool": "Task",
		"toolInput": {"description": "spawn helper"},
		"toolUseId": "t2"
	}`), frame)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sub-t2": "s1"}, frame.Subagents)

	evs, err := svc.Process(json.RawMessage(`{"type":"subagent_stop","sessionId":"s1"}`), frame)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "sub-t2", evs[0].SubagentID)
	assert.Empty(t, frame.Subagents)
}

// Canonical sources that do name the completed subagent keep their id.
func TestService_SubagentCompleteExactIDPreserved(t *testing.T) {
	b := bus.New()
	consumers.RegisterAll(b)
	svc := newService(b)
	frame := consumers.NewFrame()

	spawn := `{"type":"subagent_spawn","agentId":"a1","source":"x","subagentId":"%s","parentAgentId":"a1"}`
	for _, id := range []string{"helper-1", "helper-2"} {
		_, err := svc.Process(json.RawMessage(fmt.Sprintf(spawn, id)), frame)
		require.NoError(t, err)
	}

	evs, err := svc.Process(json.RawMessage(`{"type":"subagent_complete","agentId":"a1","source":"x","subagentId":"helper-2"}`), frame)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "helper-2", evs[0].SubagentID)
	assert.Equal(t, map[string]string{"helper-1": "a1"}, frame.Subagents)
}

func TestService_DuplicateInvocationStillDispatches(t *testing.T) {
	b := bus.New()
	var count int
	b.On(events.TypeToolStart, func(events.AgentEvent, any) { count++ })

	svc := newService(b)
	raw := json.RawMessage(`{"type":"pre_tool_use","sessionId":"s1","tool":"Read","toolInput":{"file_path":"/a"},"toolUseId":"t1"}`)

	_, err := svc.Process(raw, nil)
	require.NoError(t, err)
	// Same correlation id while outstanding: surfaced in logs and metrics,
	// but the event still reaches consumers.
	_, err = svc.Process(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

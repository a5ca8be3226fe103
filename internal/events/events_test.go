// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validToolStart() AgentEvent {
	return AgentEvent{
		ID:        "ev-1",
		Timestamp: 1700000000000,
		Type:      TypeToolStart,
		AgentID:   "agent-1",
		Source:    "claude-code",
		Tool:      &ToolInfo{Name: "Read", Category: CategoryRead, ID: "t1"},
	}
}

func TestEventType_Valid(t *testing.T) {
	for _, et := range AllTypes {
		assert.True(t, et.Valid(), "expected %q to be valid", et)
	}
	assert.False(t, EventType("pre_tool_use").Valid())
	assert.False(t, EventType("").Valid())
}

func TestAgentEvent_Validate(t *testing.T) {
	t.Run("valid tool_start", func(t *testing.T) {
		ev := validToolStart()
		require.NoError(t, ev.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		ev := validToolStart()
		ev.Type = "bogus"
		assert.ErrorIs(t, ev.Validate(), ErrUnknownEventType)
	})

	t.Run("missing base fields", func(t *testing.T) {
		for _, mutate := range []func(*AgentEvent){
			func(e *AgentEvent) { e.ID = "" },
			func(e *AgentEvent) { e.Timestamp = 0 },
			func(e *AgentEvent) { e.AgentID = "" },
			func(e *AgentEvent) { e.Source = "" },
		} {
			ev := validToolStart()
			mutate(&ev)
			assert.ErrorIs(t, ev.Validate(), ErrMissingField)
		}
	})

	t.Run("tool events need tool info", func(t *testing.T) {
		ev := validToolStart()
		ev.Tool = nil
		assert.ErrorIs(t, ev.Validate(), ErrMissingField)

		ev = validToolStart()
		ev.Tool.Name = ""
		assert.ErrorIs(t, ev.Validate(), ErrMissingField)

		ev = validToolStart()
		ev.Tool.ID = ""
		assert.ErrorIs(t, ev.Validate(), ErrMissingField)
	})

	t.Run("subagent_spawn needs subagent id", func(t *testing.T) {
		ev := validToolStart()
		ev.Type = TypeSubagentSpawn
		ev.Tool = nil
		assert.ErrorIs(t, ev.Validate(), ErrMissingField)

		ev.SubagentID = "sub-1"
		require.NoError(t, ev.Validate())
	})
}

func TestAgentEvent_Fill(t *testing.T) {
	ev := AgentEvent{Type: TypeStop, AgentID: "a", Source: "s"}
	ev.Fill()
	assert.NotEmpty(t, ev.ID)
	assert.Positive(t, ev.Timestamp)

	// Already-populated fields are left alone.
	before := ev
	ev.Fill()
	assert.Equal(t, before.ID, ev.ID)
	assert.Equal(t, before.Timestamp, ev.Timestamp)
}

func TestNormalizeTrigger(t *testing.T) {
	assert.Equal(t, TriggerStartup, NormalizeTrigger("startup"))
	assert.Equal(t, TriggerResume, NormalizeTrigger("resume"))
	assert.Equal(t, TriggerOther, NormalizeTrigger("clear"))
	assert.Equal(t, TriggerOther, NormalizeTrigger("compact"))
	assert.Equal(t, TriggerOther, NormalizeTrigger(""))
}

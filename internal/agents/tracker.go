// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package agents

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDuplicateInvocation reports a tool_start whose correlation id is
// already outstanding for the same agent. Reuse before the prior invocation
// ends is surfaced instead of silently overwriting tracking state.
var ErrDuplicateInvocation = errors.New("tool invocation id already outstanding")

// Tracker correlates tool_start events with their eventual tool_end by the
// invocation id, per agent, and spawned subagents with their completions.
type Tracker struct {
	mu          sync.Mutex
	outstanding map[string]map[string]time.Time // agentID → toolID → start time
	subagents   map[string][]string             // parent agentID → subagent ids, spawn order
}

// NewTracker creates an empty correlation tracker.
func NewTracker() *Tracker {
	return &Tracker{
		outstanding: make(map[string]map[string]time.Time),
		subagents:   make(map[string][]string),
	}
}

// Start records an outstanding invocation. A duplicate id while one is
// outstanding is an error; the original tracking state is kept.
func (t *Tracker) Start(agentID, toolID string, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	byTool := t.outstanding[agentID]
	if byTool == nil {
		byTool = make(map[string]time.Time)
		t.outstanding[agentID] = byTool
	}
	if _, exists := byTool[toolID]; exists {
		return fmt.Errorf("%w: agent %s tool %s", ErrDuplicateInvocation, agentID, toolID)
	}
	byTool[toolID] = at
	return nil
}

// End closes an outstanding invocation and returns its duration. The second
// return value is false when no matching start was tracked (e.g. the start
// event arrived before the process did).
func (t *Tracker) End(agentID, toolID string, at time.Time) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	byTool := t.outstanding[agentID]
	started, ok := byTool[toolID]
	if !ok {
		return 0, false
	}
	delete(byTool, toolID)
	if len(byTool) == 0 {
		delete(t.outstanding, agentID)
	}
	return at.Sub(started), true
}

// SpawnSubagent records a spawned subagent under its parent agent.
func (t *Tracker) SpawnSubagent(parentID, subagentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subagents[parentID] = append(t.subagents[parentID], subagentID)
}

// CompleteSubagent resolves which spawned subagent a completion refers to
// and retires it. An exact id match retires that entry; otherwise the oldest
// outstanding subagent for the parent is retired, since some sources (the
// Claude Code stop hook) do not identify which subagent finished. Returns
// false when the parent has none outstanding.
func (t *Tracker) CompleteSubagent(parentID, subagentID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := t.subagents[parentID]
	if len(ids) == 0 {
		return "", false
	}

	idx := 0
	for i, id := range ids {
		if id == subagentID {
			idx = i
			break
		}
	}
	resolved := ids[idx]

	ids = append(ids[:idx:idx], ids[idx+1:]...)
	if len(ids) == 0 {
		delete(t.subagents, parentID)
	} else {
		t.subagents[parentID] = ids
	}
	return resolved, true
}

// Outstanding returns how many invocations are currently open for an agent.
func (t *Tracker) Outstanding(agentID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.outstanding[agentID])
}

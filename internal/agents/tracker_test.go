// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package agents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StartEndRoundTrip(t *testing.T) {
	tr := NewTracker()
	began := time.Now()

	require.NoError(t, tr.Start("a1", "t1", began))
	assert.Equal(t, 1, tr.Outstanding("a1"))

	d, ok := tr.End("a1", "t1", began.Add(250*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, d)
	assert.Zero(t, tr.Outstanding("a1"))
}

func TestTracker_DuplicateOutstandingIDIsError(t *testing.T) {
	tr := NewTracker()
	began := time.Now()

	require.NoError(t, tr.Start("a1", "t1", began))
	err := tr.Start("a1", "t1", began.Add(time.Second))
	assert.ErrorIs(t, err, ErrDuplicateInvocation)

	// Original tracking state is kept: the end still matches the first start.
	d, ok := tr.End("a1", "t1", began.Add(2*time.Second))
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, d)
}

func TestTracker_IDReusableAfterEnd(t *testing.T) {
	tr := NewTracker()
	began := time.Now()

	require.NoError(t, tr.Start("a1", "t1", began))
	_, ok := tr.End("a1", "t1", began.Add(time.Millisecond))
	require.True(t, ok)

	assert.NoError(t, tr.Start("a1", "t1", began.Add(time.Second)))
}

func TestTracker_AgentsAreIndependent(t *testing.T) {
	tr := NewTracker()
	began := time.Now()

	require.NoError(t, tr.Start("a1", "t1", began))
	require.NoError(t, tr.Start("a2", "t1", began))
	assert.Equal(t, 1, tr.Outstanding("a1"))
	assert.Equal(t, 1, tr.Outstanding("a2"))
}

func TestTracker_EndWithoutStart(t *testing.T) {
	tr := NewTracker()
	_, ok := tr.End("a1", "ghost", time.Now())
	assert.False(t, ok)
}

func TestTracker_SubagentExactMatch(t *testing.T) {
	tr := NewTracker()
	tr.SpawnSubagent("a1", "sub-t1")
	tr.SpawnSubagent("a1", "sub-t2")

	resolved, ok := tr.CompleteSubagent("a1", "sub-t2")
	require.True(t, ok)
	assert.Equal(t, "sub-t2", resolved)

	resolved, ok = tr.CompleteSubagent("a1", "sub-t1")
	require.True(t, ok)
	assert.Equal(t, "sub-t1", resolved)
}

// A completion whose id names no outstanding spawn retires the oldest one:
// sources like the Claude Code stop hook do not say which subagent finished.
func TestTracker_SubagentOldestFirstFallback(t *testing.T) {
	tr := NewTracker()
	tr.SpawnSubagent("a1", "sub-t1")
	tr.SpawnSubagent("a1", "sub-t2")

	resolved, ok := tr.CompleteSubagent("a1", "a1")
	require.True(t, ok)
	assert.Equal(t, "sub-t1", resolved)

	resolved, ok = tr.CompleteSubagent("a1", "a1")
	require.True(t, ok)
	assert.Equal(t, "sub-t2", resolved)

	_, ok = tr.CompleteSubagent("a1", "a1")
	assert.False(t, ok)
}

func TestTracker_SubagentParentsAreIndependent(t *testing.T) {
	tr := NewTracker()
	tr.SpawnSubagent("a1", "sub-x")
	tr.SpawnSubagent("a2", "sub-y")

	resolved, ok := tr.CompleteSubagent("a1", "a1")
	require.True(t, ok)
	assert.Equal(t, "sub-x", resolved)

	_, ok = tr.CompleteSubagent("a1", "a1")
	assert.False(t, ok)
}

// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package claudecode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentarium/agentarium/internal/events"
)

// The direct table is the authoritative tier: every known tool name maps to
// its documented fixed category.
func TestCategorize_DirectTable(t *testing.T) {
	a := New()

	want := map[string]events.ToolCategory{
		"Read":            events.CategoryRead,
		"Write":           events.CategoryWrite,
		"Edit":            events.CategoryEdit,
		"MultiEdit":       events.CategoryEdit,
		"NotebookEdit":    events.CategoryEdit,
		"Bash":            events.CategoryExecute,
		"BashOutput":      events.CategoryExecute,
		"KillShell":       events.CategoryExecute,
		"SlashCommand":    events.CategoryExecute,
		"Glob":            events.CategorySearch,
		"Grep":            events.CategorySearch,
		"WebSearch":       events.CategorySearch,
		"WebFetch":        events.CategoryNetwork,
		"Task":            events.CategoryDelegate,
		"TodoWrite":       events.CategoryPlan,
		"ExitPlanMode":    events.CategoryPlan,
		"AskUserQuestion": events.CategoryInteract,
	}

	for name, category := range want {
		assert.Equal(t, category, a.Categorize(name), "tool %q", name)
	}
}

// The heuristic tier only applies to names outside the direct table, in a
// fixed rule order.
func TestCategorize_HeuristicFallback(t *testing.T) {
	a := New()

	tests := []struct {
		toolName string
		want     events.ToolCategory
	}{
		{"mcp__docs__search_docs", events.CategorySearch},
		{"mcp__web__fetch_page", events.CategoryNetwork},
		{"mcp__api__http_call", events.CategoryNetwork},
		{"mcp__db__read_rows", events.CategoryRead},
		{"mcp__fs__write_blob", events.CategoryWrite},
		{"mcp__runner__exec_step", events.CategoryExecute},
		{"mcp__board__todo_sync", events.CategoryPlan},
		// "search" outranks "fetch" because rules run in order.
		{"fetch_search_index", events.CategorySearch},
	}

	for _, tt := range tests {
		t.Run(tt.toolName, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Categorize(tt.toolName))
		})
	}
}

func TestCategorize_UnmatchedFallsThroughToOther(t *testing.T) {
	a := New()

	category := a.Categorize("mcp__custom__foo")
	assert.Equal(t, events.CategoryOther, category)

	// Documented fallbacks for uncategorized tools.
	assert.Equal(t, events.StationCenter, events.StationFor(category))
	assert.Equal(t, "read", events.SoundFor(category))
	assert.Equal(t, "🔧", events.IconFor(category))
}

func TestCategorize_OverridesShadowDirectTable(t *testing.T) {
	a := New(WithOverrides(map[string]events.ToolCategory{
		"Bash":           events.CategoryOther,
		"mcp__zzz__blob": events.CategoryNetwork,
	}))

	assert.Equal(t, events.CategoryOther, a.Categorize("Bash"))
	assert.Equal(t, events.CategoryNetwork, a.Categorize("mcp__zzz__blob"))
	// Unrelated names still use the direct table.
	assert.Equal(t, events.CategoryRead, a.Categorize("Read"))
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "overrides.yaml")
		require.NoError(t, os.WriteFile(path, []byte("Bash: other\nmcp__zzz__blob: network\n"), 0o644))

		overrides, err := LoadOverrides(path)
		require.NoError(t, err)
		assert.Equal(t, events.CategoryOther, overrides["Bash"])
		assert.Equal(t, events.CategoryNetwork, overrides["mcp__zzz__blob"])
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("Bash: quantum\n"), 0o644))

		_, err := LoadOverrides(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantum")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOverrides(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
	})
}

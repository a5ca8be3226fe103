// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package claudecode

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentarium/agentarium/internal/events"
)

// directCategories is the authoritative tool-name → category table for the
// built-in Claude Code tool vocabulary.
var directCategories = map[string]events.ToolCategory{
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

// heuristicRule matches a lowercase substring of a tool name to a category.
type heuristicRule struct {
	substring string
	category  events.ToolCategory
}

// heuristicRules is the fallback tier for dynamically-named tools (MCP
// servers, plugins) that are not in the direct table. Rules are evaluated
// in order; the first match wins.
var heuristicRules = []heuristicRule{
	{"search", events.CategorySearch},
	{"grep", events.CategorySearch},
	{"find", events.CategorySearch},
	{"fetch", events.CategoryNetwork},
	{"http", events.CategoryNetwork},
	{"request", events.CategoryNetwork},
	{"browse", events.CategoryNetwork},
	{"read", events.CategoryRead},
	{"get", events.CategoryRead},
	{"list", events.CategoryRead},
	{"write", events.CategoryWrite},
	{"create", events.CategoryWrite},
	{"edit", events.CategoryEdit},
	{"update", events.CategoryEdit},
	{"exec", events.CategoryExecute},
	{"run", events.CategoryExecute},
	{"shell", events.CategoryExecute},
	{"command", events.CategoryExecute},
	{"todo", events.CategoryPlan},
	{"plan", events.CategoryPlan},
	{"ask", events.CategoryInteract},
	{"question", events.CategoryInteract},
	{"agent", events.CategoryDelegate},
	{"delegate", events.CategoryDelegate},
}

// Categorize maps a tool name to its canonical category: direct table first,
// heuristic substring tier second, CategoryOther last. Total - never fails.
func (a *Adapter) Categorize(toolName string) events.ToolCategory {
	if c, ok := a.overrides[toolName]; ok {
		return c
	}
	if c, ok := directCategories[toolName]; ok {
		return c
	}
	lower := strings.ToLower(toolName)
	for _, rule := range heuristicRules {
		if strings.Contains(lower, rule.substring) {
			return rule.category
		}
	}
	return events.CategoryOther
}

// LoadOverrides reads a tool-name → category mapping from a YAML file.
// Entries shadow the built-in direct table. Unknown category names are
// rejected so a typo in the file fails loudly instead of silently mapping
// everything to other.
func LoadOverrides(path string) (map[string]events.ToolCategory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category overrides: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse category overrides: %w", err)
	}

	overrides := make(map[string]events.ToolCategory, len(raw))
	for name, cat := range raw {
		c := events.ToolCategory(cat)
		if !c.Valid() {
			return nil, fmt.Errorf("category overrides: unknown category %q for tool %q", cat, name)
		}
		overrides[name] = c
	}
	return overrides, nil
}

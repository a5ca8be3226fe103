// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

// ToolCategory classifies what kind of operation a tool performs. The set is
// closed: every tool name from every supported framework maps to exactly one
// category, with CategoryOther as the universal fallback.
type ToolCategory string

const (
	CategoryRead     ToolCategory = "read"
	CategoryWrite    ToolCategory = "write"
	CategoryEdit     ToolCategory = "edit"
	CategoryExecute  ToolCategory = "execute"
	CategorySearch   ToolCategory = "search"
	CategoryNetwork  ToolCategory = "network"
	CategoryDelegate ToolCategory = "delegate"
	CategoryPlan     ToolCategory = "plan"
	CategoryInteract ToolCategory = "interact"
	CategoryOther    ToolCategory = "other"
)

// AllCategories lists every tool category in a stable order.
var AllCategories = []ToolCategory{
	CategoryRead,
	CategoryWrite,
	CategoryEdit,
	CategoryExecute,
	CategorySearch,
	CategoryNetwork,
	CategoryDelegate,
	CategoryPlan,
	CategoryInteract,
	CategoryOther,
}

// Valid reports whether c is one of the canonical tool categories.
func (c ToolCategory) Valid() bool {
	switch c {
	case CategoryRead, CategoryWrite, CategoryEdit, CategoryExecute,
		CategorySearch, CategoryNetwork, CategoryDelegate, CategoryPlan,
		CategoryInteract, CategoryOther:
		return true
	}
	return false
}

// ParseCategory returns the category named by s, or CategoryOther when s is
// not a recognized category. Never fails.
func ParseCategory(s string) ToolCategory {
	if c := ToolCategory(s); c.Valid() {
		return c
	}
	return CategoryOther
}

// Station names the visualization station a category routes to.
type Station string

const (
	StationLibrary     Station = "library"
	StationForge       Station = "forge"
	StationWorkbench   Station = "workbench"
	StationTerminal    Station = "terminal"
	StationObservatory Station = "observatory"
	StationAntenna     Station = "antenna"
	StationGateway     Station = "gateway"
	StationDrafting    Station = "drafting"
	StationPlaza       Station = "plaza"
	StationCenter      Station = "center"
)

var categoryStations = map[ToolCategory]Station{
	CategoryRead:     StationLibrary,
	CategoryWrite:    StationForge,
	CategoryEdit:     StationWorkbench,
	CategoryExecute:  StationTerminal,
	CategorySearch:   StationObservatory,
	CategoryNetwork:  StationAntenna,
	CategoryDelegate: StationGateway,
	CategoryPlan:     StationDrafting,
	CategoryInteract: StationPlaza,
	CategoryOther:    StationCenter,
}

var categorySounds = map[ToolCategory]string{
	CategoryRead:     "read",
	CategoryWrite:    "write",
	CategoryEdit:     "edit",
	CategoryExecute:  "execute",
	CategorySearch:   "search",
	CategoryNetwork:  "network",
	CategoryDelegate: "delegate",
	CategoryPlan:     "plan",
	CategoryInteract: "interact",
	// No dedicated sound asset for uncategorized tools; reuse read.
	CategoryOther: "read",
}

var categoryIcons = map[ToolCategory]string{
	CategoryRead:     "📖",
	CategoryWrite:    "✏️",
	CategoryEdit:     "📝",
	CategoryExecute:  "⚡",
	CategorySearch:   "🔍",
	CategoryNetwork:  "🌐",
	CategoryDelegate: "🤝",
	CategoryPlan:     "📋",
	CategoryInteract: "💬",
	CategoryOther:    "🔧",
}

// StationFor returns the visualization station for a category. Total: an
// unrecognized category that slipped past boundary validation falls back to
// the center station.
func StationFor(c ToolCategory) Station {
	if s, ok := categoryStations[c]; ok {
		return s
	}
	return categoryStations[CategoryOther]
}

// SoundFor returns the sound identifier for a category. Total.
func SoundFor(c ToolCategory) string {
	if s, ok := categorySounds[c]; ok {
		return s
	}
	return categorySounds[CategoryOther]
}

// IconFor returns the icon glyph for a category. Total.
func IconFor(c ToolCategory) string {
	if s, ok := categoryIcons[c]; ok {
		return s
	}
	return categoryIcons[CategoryOther]
}

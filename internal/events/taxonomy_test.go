// Copyright (C) 2026 Agentarium
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every category must have a station, sound, and icon - the three lookups
// are total functions.
func TestTaxonomy_Totality(t *testing.T) {
	for _, c := range AllCategories {
		assert.NotEmpty(t, StationFor(c), "station for %q", c)
		assert.NotEmpty(t, SoundFor(c), "sound for %q", c)
		assert.NotEmpty(t, IconFor(c), "icon for %q", c)
	}
}

// An unrecognized category passed at a boundary that skipped validation
// falls back to the other entry instead of returning a zero value.
func TestTaxonomy_UnknownCategoryFallsBack(t *testing.T) {
	bogus := ToolCategory("quantum")
	assert.Equal(t, StationCenter, StationFor(bogus))
	assert.Equal(t, "read", SoundFor(bogus))
	assert.Equal(t, "🔧", IconFor(bogus))
}

func TestTaxonomy_OtherMappings(t *testing.T) {
	assert.Equal(t, StationCenter, StationFor(CategoryOther))
	assert.Equal(t, "read", SoundFor(CategoryOther))
	assert.Equal(t, "🔧", IconFor(CategoryOther))
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryRead, ParseCategory("read"))
	assert.Equal(t, CategoryDelegate, ParseCategory("delegate"))
	assert.Equal(t, CategoryOther, ParseCategory("nonsense"))
	assert.Equal(t, CategoryOther, ParseCategory(""))
}

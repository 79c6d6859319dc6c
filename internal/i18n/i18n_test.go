// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndTranslate(t *testing.T) {
	require.NoError(t, Init(nil))

	assert.Equal(t, "الرئيسية", T("ar", "nav.home"))
	assert.Equal(t, "Home", T("en", "nav.home"))

	// Unknown key falls back to the key itself.
	assert.Equal(t, "nav.missing", T("ar", "nav.missing"))

	// Unknown language falls back to the default language catalog.
	assert.Equal(t, "Home", T("fr", "nav.home"))

	assert.Greater(t, TranslationCount("en"), 0)
	assert.Equal(t, TranslationCount("en"), TranslationCount("ar"))
}

func TestMatchLanguage(t *testing.T) {
	require.NoError(t, Init(nil))

	tests := []struct {
		accept string
		want   string
	}{
		{"ar", "ar"},
		{"ar-SA", "ar"},
		{"en-US,en;q=0.9", "en"},
		{"ar,en;q=0.8", "ar"},
		{"fr-FR", "en"},
		{"", "en"},
		{"garbage;;;", "en"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchLanguage(tt.accept), "accept=%q", tt.accept)
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("AR"))
	assert.False(t, IsSupported("fr"))
	assert.False(t, IsSupported(""))
}

func TestDirection(t *testing.T) {
	assert.True(t, IsRTL("ar"))
	assert.False(t, IsRTL("en"))
	assert.Equal(t, "rtl", Dir("ar"))
	assert.Equal(t, "ltr", Dir("en"))
	assert.Equal(t, "ltr", Dir("fr"))
}

// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSVStartsWithBOM(t *testing.T) {
	out := CSV("en", []string{"name"}, []string{"Name"}, nil)
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"))
}

func TestCSVQuoteEscaping(t *testing.T) {
	out := CSV("en",
		[]string{"name"},
		[]string{"Name"},
		[]Row{{"name": `A "B"`}},
	)
	assert.Contains(t, out, `"A ""B"""`)
}

func TestCSVEveryFieldQuoted(t *testing.T) {
	out := CSV("en",
		[]string{"name", "email"},
		[]string{"Name", "Email"},
		[]Row{{"name": "Dana, Jr.", "email": "dana@example.com"}},
	)
	assert.Contains(t, out, `"Dana, Jr.","dana@example.com"`)
}

func TestCSVDateColumnsFormattedPerLanguage(t *testing.T) {
	ts := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	en := CSV("en", []string{"created_at"}, []string{"Created"}, []Row{{"created_at": ts}})
	assert.Contains(t, en, "Mar 15, 2026 2:30 PM")

	ar := CSV("ar", []string{"created_at"}, []string{"Created"}, []Row{{"created_at": ts}})
	assert.Contains(t, ar, "15/03/2026 14:30")
}

func TestCSVDateStringInDateColumn(t *testing.T) {
	out := CSV("en",
		[]string{"preferred_date", "note"},
		[]string{"Preferred", "Note"},
		[]Row{{
			"preferred_date": "2026-03-15T14:30:00Z",
			"note":           "2026-03-15T14:30:00Z", // not a date column, kept raw
		}},
	)
	assert.Contains(t, out, `"Mar 15, 2026 2:30 PM"`)
	assert.Contains(t, out, `"2026-03-15T14:30:00Z"`)
}

func TestCSVNilAndMissingValues(t *testing.T) {
	out := CSV("en",
		[]string{"a", "b"},
		[]string{"A", "B"},
		[]Row{{"a": nil}},
	)
	assert.Contains(t, out, `"",""`)
}

func TestIsDateColumn(t *testing.T) {
	assert.True(t, isDateColumn("created_at"))
	assert.True(t, isDateColumn("preferred_date"))
	assert.True(t, isDateColumn("last_login"))
	assert.False(t, isDateColumn("email"))
	assert.False(t, isDateColumn("status"))
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "consultations_2026-09-01.csv", Filename("consultations", now))
}

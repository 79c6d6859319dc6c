// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestNormalizeConsultationStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"pending", "pending", true},
		{"scheduled", "scheduled", true},
		{"completed", "completed", true},
		{"cancelled", "cancelled", true},
		// Legacy vocabulary from the drifted admin view.
		{"new", "pending", true},
		{"in_progress", "scheduled", true},
		{"canceled", "", false},
		{"", "", false},
		{"done", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeConsultationStatus(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeConsultationStatus(%q) = (%q, %v), want (%q, %v)",
					tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPostLanguageFallback(t *testing.T) {
	p := Post{Title: "Zero Trust", TitleAr: "", Content: "body", ContentAr: "نص"}

	if got := p.TitleFor("ar"); got != "Zero Trust" {
		t.Errorf("TitleFor(ar) with empty Arabic title = %q, want English fallback", got)
	}
	if got := p.ContentFor("ar"); got != "نص" {
		t.Errorf("ContentFor(ar) = %q, want Arabic content", got)
	}
	if got := p.ContentFor("en"); got != "body" {
		t.Errorf("ContentFor(en) = %q, want English content", got)
	}
}

func TestParseTags(t *testing.T) {
	if got := ParseTags(`["ai","security"]`); len(got) != 2 || got[0] != "ai" || got[1] != "security" {
		t.Errorf("ParseTags order not preserved: %v", got)
	}
	if got := ParseTags("broken"); got != nil {
		t.Errorf("malformed tags should yield nil, got %v", got)
	}
	if got := TagsJSON(nil); got != "[]" {
		t.Errorf("TagsJSON(nil) = %q, want []", got)
	}
}

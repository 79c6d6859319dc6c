// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation and year", "Hello, World! 2024", "hello-world-2024"},
		{"collapsed hyphens", "a -- b", "a-b"},
		{"leading trailing", "  Trim Me  ", "trim-me"},
		{"accents", "Café Résumé", "cafe-resume"},
		{"mixed", "AI & Security: 101", "ai-security-101"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyArabicNonEmpty(t *testing.T) {
	// Arabic-only titles must still derive a usable ASCII slug.
	got := Slugify("التحول الرقمي في الشركات")
	if got == "" {
		t.Fatal("Arabic title produced empty slug")
	}
	if !IsValidSlug(got) {
		t.Errorf("Slugify produced invalid slug %q", got)
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"hello-world-2024", true},
		{"a", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"UpperCase", false},
		{"with space", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestSummarizeUserAgent(t *testing.T) {
	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	if got := SummarizeUserAgent(chrome); got != "Chrome on Windows" {
		t.Errorf("SummarizeUserAgent(chrome) = %q, want %q", got, "Chrome on Windows")
	}
	if got := SummarizeUserAgent(""); got != "Unknown" {
		t.Errorf("SummarizeUserAgent(empty) = %q, want Unknown", got)
	}
}

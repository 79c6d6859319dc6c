// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "github.com/mileusna/useragent"

// SummarizeUserAgent reduces a raw User-Agent header to a short
// "Browser on OS" string for admin display. Empty or unparsable input
// yields "Unknown".
func SummarizeUserAgent(raw string) string {
	if raw == "" {
		return "Unknown"
	}

	ua := useragent.Parse(raw)
	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	if ua.Bot {
		return browser + " (bot)"
	}
	if ua.OS == "" {
		return browser
	}
	return browser + " on " + ua.OS
}

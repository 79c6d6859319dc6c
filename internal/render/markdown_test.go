// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownBasicFormatting(t *testing.T) {
	out := string(Markdown("# Heading\n\nSome **bold** text."))
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestMarkdownStripsScripts(t *testing.T) {
	out := string(Markdown("hello <script>alert('x')</script> world"))
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hello")
}

func TestMarkdownArabicContent(t *testing.T) {
	out := string(Markdown("## الأمن السيبراني\n\nنص تجريبي."))
	assert.Contains(t, out, "الأمن السيبراني")
	assert.True(t, strings.Contains(out, "<h2"))
}

func TestMarkdownGFMTable(t *testing.T) {
	out := string(Markdown("| a | b |\n|---|---|\n| 1 | 2 |"))
	assert.Contains(t, out, "<table")
}

// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownOnce      sync.Once
	markdownConverter goldmark.Markdown
	markdownPolicy    *bluemonday.Policy
)

func initMarkdown() {
	markdownConverter = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	markdownPolicy = bluemonday.UGCPolicy()
}

// Markdown converts markdown to sanitized HTML. Used for blog post bodies,
// which may contain admin-authored markdown in either language.
func Markdown(source string) template.HTML {
	markdownOnce.Do(initMarkdown)

	var buf bytes.Buffer
	if err := markdownConverter.Convert([]byte(source), &buf); err != nil {
		// Fall back to escaped plain text on conversion errors.
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(markdownPolicy.SanitizeBytes(buf.Bytes()))
}

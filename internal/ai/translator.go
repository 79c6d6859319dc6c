// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai provides optional machine translation of blog content from
// English to Arabic. It is a drafting aid for editors; output is always
// reviewed before publishing.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = `You are a professional English-to-Arabic translator for a
cybersecurity and AI consulting company. Translate the given text into Modern
Standard Arabic. Keep technical terms accurate, keep any markdown formatting
intact, and return only the translation with no commentary.`

// Translator translates post fields using a chat completion model.
type Translator struct {
	client openai.Client
	model  string
}

// NewTranslator creates a translator. The model name comes from
// configuration, e.g. gpt-4o-mini.
func NewTranslator(apiKey, model string) *Translator {
	return &Translator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Translate returns the Arabic translation of the given English text.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("translation request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translation request: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TranslatePost translates a post's title, excerpt and content in one call
// sequence. Empty inputs are skipped.
func (t *Translator) TranslatePost(ctx context.Context, title, excerpt, content string) (titleAr, excerptAr, contentAr string, err error) {
	if titleAr, err = t.Translate(ctx, title); err != nil {
		return "", "", "", err
	}
	if excerptAr, err = t.Translate(ctx, excerpt); err != nil {
		return "", "", "", err
	}
	if contentAr, err = t.Translate(ctx, content); err != nil {
		return "", "", "", err
	}
	return titleAr, excerptAr, contentAr, nil
}

// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessStoresOriginalAndThumbnail(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	result, err := p.Process(bytes.NewReader(pngBytes(t, 800, 600)))
	require.NoError(t, err)

	assert.Equal(t, 800, result.Width)
	assert.Equal(t, 600, result.Height)
	assert.Equal(t, "image/png", result.MimeType)
	assert.True(t, strings.HasPrefix(result.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(result.URL, ".png"))
	assert.Contains(t, result.ThumbURL, "_thumb")

	// Both files exist on disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestProcessRejectsNonImage(t *testing.T) {
	p := NewProcessor(t.TempDir())

	_, err := p.Process(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestProcessRejectsOversized(t *testing.T) {
	p := NewProcessor(t.TempDir())

	big := make([]byte, MaxUploadSize+10)
	_, err := p.Process(bytes.NewReader(big))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "png", detectFormat(pngBytes(t, 2, 2)))
	assert.Equal(t, "", detectFormat([]byte("plain text")))
}

func TestThumbnailPathConvention(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	result, err := p.Process(bytes.NewReader(pngBytes(t, 1200, 900)))
	require.NoError(t, err)

	base := filepath.Base(result.URL)
	thumb := filepath.Base(result.ThumbURL)
	assert.Equal(t, strings.TrimSuffix(base, ".png")+"_thumb.png", thumb)
}

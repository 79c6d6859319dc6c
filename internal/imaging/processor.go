// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes uploaded blog images: validation, EXIF
// auto-orientation, re-encoding and thumbnail generation.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 5 << 20 // 5MB

// Thumbnail dimensions for admin listings.
const (
	thumbWidth  = 400
	thumbHeight = 300
)

// Result describes a stored upload.
type Result struct {
	// URL is the public path of the stored image, e.g. /uploads/ab12cd.jpg.
	URL string
	// ThumbURL is the public path of the thumbnail.
	ThumbURL string
	Width    int
	Height   int
	MimeType string
	Size     int64
}

// Processor stores processed uploads under uploadDir.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a processor writing into uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// Process validates and stores one uploaded image. The stored file gets a
// random name; EXIF metadata is stripped by re-encoding, and the image is
// rotated upright first when an orientation tag is present.
func (p *Processor) Process(reader io.Reader) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("image exceeds %d byte limit", MaxUploadSize)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	encoded, err := encodeImage(img, format, 90)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	name := uuid.NewString()
	ext := formatExt(format)

	if err := p.save(name+ext, encoded); err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	thumbEncoded, err := encodeImage(thumb, format, 85)
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	if err := p.save(name+"_thumb"+ext, thumbEncoded); err != nil {
		return nil, err
	}

	return &Result{
		URL:      "/uploads/" + name + ext,
		ThumbURL: "/uploads/" + name + "_thumb" + ext,
		Width:    width,
		Height:   height,
		MimeType: formatToMimeType(format),
		Size:     int64(len(encoded)),
	}, nil
}

func (p *Processor) save(filename string, data []byte) error {
	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}
	path := filepath.Join(p.uploadDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

// readExifOrientation returns the EXIF orientation tag, defaulting to 1.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		// WebP encoding is not available in pure Go; re-encode as JPEG.
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectFormat sniffs the image format from raw bytes. TIFF is rejected
// (CVE-2023-36308 in disintegration/imaging).
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func formatExt(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

func formatToMimeType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp", "jpeg":
		return "image/jpeg" // webp uploads are re-encoded as JPEG
	default:
		return "application/octet-stream"
	}
}

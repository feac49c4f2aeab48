package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImage = errors.New("invalid base64 image")

// DecodeBase64Image accepts either a bare base64 payload or a
// data:image/...;base64, URI and returns the raw bytes plus the content
// type (taken from the data URI when present, else the given fallback).
func DecodeBase64Image(b64, fallbackContentType string) ([]byte, string, error) {
	contentType := fallbackContentType
	if strings.HasPrefix(b64, "data:") {
		comma := strings.Index(b64, ",")
		if comma < 0 {
			return nil, "", ErrInvalidImage
		}
		meta := b64[len("data:"):comma]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, "", ErrInvalidImage
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		b64 = b64[comma+1:]
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", ErrInvalidImage
	}
	return data, contentType, nil
}

// ImageExt maps a content type to the file extension used in object keys.
func ImageExt(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

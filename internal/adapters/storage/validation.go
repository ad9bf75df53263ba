package storage

import (
	"fmt"
	"path"
	"strings"
)

// MaxFlagFileSize bounds a single flag image.
const MaxFlagFileSize = 512 * 1024

// AllowedContentTypes defines the allowed MIME types for flag uploads.
var AllowedContentTypes = map[string]bool{
	"image/png":     true,
	"image/svg+xml": true,
	"image/webp":    true,
}

var extensionContentTypes = map[string]string{
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// ValidateContentType checks if the content type is allowed.
func ValidateContentType(contentType string) error {
	// Normalize content type (remove parameters like charset)
	normalized := strings.Split(contentType, ";")[0]
	normalized = strings.TrimSpace(strings.ToLower(normalized))

	if !AllowedContentTypes[normalized] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	return nil
}

// ValidateFileSize checks if the file size is within limits.
func ValidateFileSize(sizeBytes int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("file size must be greater than 0")
	}
	if sizeBytes > MaxFlagFileSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", sizeBytes, MaxFlagFileSize)
	}
	return nil
}

// ContentTypeForFile maps a file name to its flag content type by extension.
func ContentTypeForFile(name string) (string, bool) {
	ct, ok := extensionContentTypes[strings.ToLower(path.Ext(name))]
	return ct, ok
}

// Package storage provides a domain-agnostic interface for S3-compatible object storage.
// The phone input backend keeps flag images in it.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned download operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StorageService defines the interface for object storage operations.
type StorageService interface {
	// GenerateDownloadURL creates a presigned URL for downloading a file,
	// valid for ttl.
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string, ttl time.Duration) (*PresignedURL, error)

	// ObjectExists reports whether fileKey is present in bucket.
	ObjectExists(ctx context.Context, bucket, fileKey string) (bool, error)

	// UploadFile stores reader under fileKey, replacing any previous object.
	UploadFile(ctx context.Context, bucket, fileKey, contentType string, reader io.Reader, size int64) error

	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error
}

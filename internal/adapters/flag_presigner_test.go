package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"flagphone_backend/internal/adapters/storage"
	"flagphone_backend/internal/countries"
)

type fakeStorage struct {
	calls int
	err   error
	now   time.Time
}

func (f *fakeStorage) GenerateDownloadURL(ctx context.Context, bucket, fileKey string, ttl time.Duration) (*storage.PresignedURL, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls++
	return &storage.PresignedURL{
		URL:       fmt.Sprintf("https://minio.local/%s/%s?v=%d", bucket, fileKey, f.calls),
		FileKey:   fileKey,
		ExpiresAt: f.now.Add(ttl),
	}, nil
}

func (f *fakeStorage) ObjectExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	return true, nil
}

func (f *fakeStorage) UploadFile(ctx context.Context, bucket, fileKey, contentType string, reader io.Reader, size int64) error {
	return nil
}

func (f *fakeStorage) EnsureBucketExists(ctx context.Context, bucket string) error {
	return nil
}

func TestFlagPresignerCachesUntilNearExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStorage{now: now}
	p := NewFlagPresigner(store, "flags", time.Hour)
	p.now = func() time.Time { return now }
	fr := countries.Country{Code: "FR", FlagAsset: "flags/FR.png"}
	ctx := context.Background()

	first, err := p.ResolveFlag(ctx, fr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "https://minio.local/flags/flags/FR.png?v=1" {
		t.Fatalf("unexpected url %q", first)
	}

	now = now.Add(30 * time.Minute)
	if again, _ := p.ResolveFlag(ctx, fr); again != first || store.calls != 1 {
		t.Fatalf("expected cached url, got %q after %d calls", again, store.calls)
	}

	now = now.Add(20 * time.Minute)
	if renewed, _ := p.ResolveFlag(ctx, fr); renewed == first || store.calls != 2 {
		t.Fatalf("expected renewal near expiry, got %q", renewed)
	}
}

func TestFlagPresignerPropagatesErrors(t *testing.T) {
	p := NewFlagPresigner(&fakeStorage{err: errors.New("minio down")}, "flags", time.Hour)

	if _, err := p.ResolveFlag(context.Background(), countries.Country{Code: "FR", FlagAsset: "flags/FR.png"}); err == nil {
		t.Fatalf("expected error")
	}
}

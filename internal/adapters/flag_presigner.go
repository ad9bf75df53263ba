package adapters

import (
	"context"
	"sync"
	"time"

	"flagphone_backend/internal/adapters/storage"
	"flagphone_backend/internal/countries"
)

// FlagPresigner resolves flag assets to presigned MinIO download URLs. URLs
// are reused until a quarter of their lifetime remains.
type FlagPresigner struct {
	storage storage.StorageService
	bucket  string
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]storage.PresignedURL
}

// NewFlagPresigner creates a new flag presigner adapter.
func NewFlagPresigner(storageSvc storage.StorageService, bucket string, ttl time.Duration) *FlagPresigner {
	return &FlagPresigner{
		storage: storageSvc,
		bucket:  bucket,
		ttl:     ttl,
		now:     time.Now,
		cache:   make(map[string]storage.PresignedURL),
	}
}

// ResolveFlag returns a download URL for the country's flag asset.
func (p *FlagPresigner) ResolveFlag(ctx context.Context, c countries.Country) (string, error) {
	p.mu.Lock()
	cached, ok := p.cache[c.FlagAsset]
	p.mu.Unlock()
	if ok && cached.ExpiresAt.Sub(p.now()) > p.ttl/4 {
		return cached.URL, nil
	}

	presigned, err := p.storage.GenerateDownloadURL(ctx, p.bucket, c.FlagAsset, p.ttl)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.cache[c.FlagAsset] = *presigned
	p.mu.Unlock()

	return presigned.URL, nil
}

// Compile-time check that FlagPresigner implements countries.FlagResolver.
var _ countries.FlagResolver = (*FlagPresigner)(nil)

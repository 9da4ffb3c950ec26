package storage

import (
	"context"
	"net/url"
	"sort"
	"sync"
	"time"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// MemoryImageStorage is used when object storage is disabled. It hands out URLs under
// BaseURL and only remembers which keys were deleted.
type MemoryImageStorage struct {
	BaseURL string

	mu      sync.Mutex
	deleted map[string]struct{}
}

// NewMemoryImageStorage creates an in-memory image storage
func NewMemoryImageStorage(baseURL string) *MemoryImageStorage {
	if baseURL == "" {
		baseURL = "http://localhost:9000/storefront-images"
	}
	return &MemoryImageStorage{BaseURL: baseURL, deleted: make(map[string]struct{})}
}

// PresignUpload returns an unsigned PUT URL
func (m *MemoryImageStorage) PresignUpload(_ context.Context, storageKey, _ string) (catalogapp.PresignedURL, error) {
	if storageKey == "" {
		return catalogapp.PresignedURL{}, errEmptyKey
	}
	return catalogapp.PresignedURL{URL: m.objectURL(storageKey), Method: "PUT", ExpiresAt: time.Now().Add(defaultPresignExpiration)}, nil
}

// PresignDownload returns an unsigned GET URL
func (m *MemoryImageStorage) PresignDownload(_ context.Context, storageKey string) (catalogapp.PresignedURL, error) {
	if storageKey == "" {
		return catalogapp.PresignedURL{}, errEmptyKey
	}
	return catalogapp.PresignedURL{URL: m.objectURL(storageKey), Method: "GET", ExpiresAt: time.Now().Add(defaultPresignExpiration)}, nil
}

// DeleteObject records the key as deleted
func (m *MemoryImageStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errEmptyKey
	}
	m.mu.Lock()
	m.deleted[storageKey] = struct{}{}
	m.mu.Unlock()
	return nil
}

// Deleted returns the deleted keys in sorted order
func (m *MemoryImageStorage) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.deleted))
	for k := range m.deleted {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *MemoryImageStorage) objectURL(key string) string {
	u, err := url.JoinPath(m.BaseURL, key)
	if err != nil {
		return m.BaseURL + "/" + key
	}
	return u
}

var _ catalogapp.ImageStorage = (*MemoryImageStorage)(nil)

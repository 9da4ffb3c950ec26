package catalog

import (
	"context"
	"time"
)

// PresignedURL is a time-limited URL granting one HTTP method on one object
type PresignedURL struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ImageStorage holds product image bytes. Clients upload and download directly
// with presigned URLs, so the API never proxies image data.
type ImageStorage interface {
	PresignUpload(ctx context.Context, storageKey, contentType string) (PresignedURL, error)
	PresignDownload(ctx context.Context, storageKey string) (PresignedURL, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

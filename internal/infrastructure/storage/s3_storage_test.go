package storage

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func validConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:            "storefront-images",
		AccessKey:         "test-key",
		SecretKey:         "test-secret",
		Region:            "us-east-1",
		Endpoint:          "localhost:9000",
		UsePathStyle:      true,
		PresignExpiration: 10 * time.Minute,
	}
}

func TestNewS3ImageStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.StorageConfig)
		wantErr string
	}{
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }, "bucket is required"},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKey = "" }, "access key is required"},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretKey = "" }, "secret key is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			_, err := NewS3ImageStorage(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := NewS3ImageStorage(nil)
	assert.Error(t, err)
}

func TestNewS3ImageStorage_Defaults(t *testing.T) {
	cfg := validConfig()
	cfg.PresignExpiration = 0

	s, err := NewS3ImageStorage(cfg, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, "storefront-images", s.Bucket())
	assert.Equal(t, defaultPresignExpiration, s.presignExpiry)

	s, err = NewS3ImageStorage(validConfig(), WithPresignExpiration(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, s.presignExpiry)
}

func TestResolveEndpoint(t *testing.T) {
	got, err := resolveEndpoint("minio:9000", false)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", got)

	got, err = resolveEndpoint("s3.example.com", true)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com", got)

	got, err = resolveEndpoint("", true)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestS3ImageStorage_PresignUpload(t *testing.T) {
	s, err := NewS3ImageStorage(validConfig())
	require.NoError(t, err)

	presigned, err := s.PresignUpload(context.Background(), "products/p1/photo.png", "image/png")
	require.NoError(t, err)

	u, err := url.Parse(presigned.URL)
	require.NoError(t, err)
	assert.Equal(t, "/storefront-images/products/p1/photo.png", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "PUT", presigned.Method)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), presigned.ExpiresAt, 5*time.Second)
}

func TestS3ImageStorage_PresignDownload(t *testing.T) {
	s, err := NewS3ImageStorage(validConfig())
	require.NoError(t, err)

	presigned, err := s.PresignDownload(context.Background(), "products/p1/photo.png")
	require.NoError(t, err)
	assert.Contains(t, presigned.URL, "X-Amz-Signature=")
	assert.Equal(t, "GET", presigned.Method)
}

func TestS3ImageStorage_EmptyKey(t *testing.T) {
	s, err := NewS3ImageStorage(validConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.PresignUpload(ctx, "", "image/png")
	assert.ErrorIs(t, err, errEmptyKey)
	_, err = s.PresignDownload(ctx, "")
	assert.ErrorIs(t, err, errEmptyKey)
	assert.ErrorIs(t, s.DeleteObject(ctx, ""), errEmptyKey)
}

// Runs against a local MinIO when STORAGE_INTEGRATION=1.
func TestS3ImageStorage_MinIO(t *testing.T) {
	if os.Getenv("STORAGE_INTEGRATION") != "1" {
		t.Skip("set STORAGE_INTEGRATION=1 with MinIO on localhost:9000")
	}
	cfg := validConfig()
	cfg.AccessKey, cfg.SecretKey = "minioadmin", "minioadmin"
	s, err := NewS3ImageStorage(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.EnsureBucket(ctx))
	require.NoError(t, s.EnsureBucket(ctx))
	require.NoError(t, s.DeleteObject(ctx, "products/missing.png"))
}

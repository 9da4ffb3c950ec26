package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryImageStorage(t *testing.T) {
	m := NewMemoryImageStorage("http://cdn.local/images")
	ctx := context.Background()

	up, err := m.PresignUpload(ctx, "products/a.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/images/products/a.png", up.URL)
	assert.Equal(t, "PUT", up.Method)

	down, err := m.PresignDownload(ctx, "products/a.png")
	require.NoError(t, err)
	assert.Equal(t, up.URL, down.URL)

	require.NoError(t, m.DeleteObject(ctx, "products/b.png"))
	require.NoError(t, m.DeleteObject(ctx, "products/a.png"))
	require.NoError(t, m.DeleteObject(ctx, "products/a.png"))
	assert.Equal(t, []string{"products/a.png", "products/b.png"}, m.Deleted())

	assert.ErrorIs(t, m.DeleteObject(ctx, ""), errEmptyKey)
}

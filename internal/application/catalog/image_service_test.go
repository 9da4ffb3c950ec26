package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type imageFixture struct {
	service  *ImageService
	images   *MockProductImageRepository
	products *MockProductRepository
	storage  *MockImageStorage
	logs     *observer.ObservedLogs
}

func newImageFixture() *imageFixture {
	core, logs := observer.New(zapcore.InfoLevel)
	f := &imageFixture{
		images:   new(MockProductImageRepository),
		products: new(MockProductRepository),
		storage:  new(MockImageStorage),
		logs:     logs,
	}
	f.service = NewImageService(f.images, f.products, f.storage, zap.New(core))
	return f
}

func TestImageService_RequestUpload(t *testing.T) {
	f := newImageFixture()
	ctx := context.Background()
	p := newTestProduct(uuid.New(), "Jam", "6.00", 9)

	f.products.On("FindByID", ctx, p.ID).Return(p, nil)
	f.storage.On("PresignUpload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "products/"+p.ID.String()+"/") && strings.HasSuffix(key, ".png")
	}), "image/png").Return(newTestPresignedURL(http.MethodPut), nil)
	f.images.On("Save", ctx, mock.AnythingOfType("*catalog.ProductImage")).Return(nil)

	result, err := f.service.RequestUpload(ctx, p.ID, ImageUploadRequest{FileName: "jar.png", ContentType: "image/png"})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, result.Upload.Method)
	assert.Equal(t, "jar.png", result.Image.FileName)
	assert.Equal(t, p.ID, result.Image.ProductID)
	f.images.AssertExpectations(t)
}

func TestImageService_RequestUpload_UnsupportedType(t *testing.T) {
	f := newImageFixture()
	ctx := context.Background()
	p := newTestProduct(uuid.New(), "Jam", "6.00", 9)

	f.products.On("FindByID", ctx, p.ID).Return(p, nil)

	_, err := f.service.RequestUpload(ctx, p.ID, ImageUploadRequest{FileName: "doc.pdf", ContentType: "application/pdf"})

	require.Error(t, err)
	f.storage.AssertNotCalled(t, "PresignUpload", mock.Anything, mock.Anything, mock.Anything)
	f.images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImageService_List(t *testing.T) {
	f := newImageFixture()
	ctx := context.Background()
	p := newTestProduct(uuid.New(), "Jam", "6.00", 9)
	img, err := catalog.NewProductImage(p.ID, "front.jpg", "image/jpeg")
	require.NoError(t, err)

	f.products.On("FindByID", ctx, p.ID).Return(p, nil)
	f.images.On("FindByProduct", ctx, p.ID).Return([]catalog.ProductImage{*img}, nil)
	f.storage.On("PresignDownload", ctx, img.StorageKey).Return(newTestPresignedURL(http.MethodGet), nil)

	result, err := f.service.List(ctx, p.ID)

	require.NoError(t, err)
	require.Len(t, result, 1)
	require.NotNil(t, result[0].Download)
	assert.Equal(t, http.MethodGet, result[0].Download.Method)
}

func TestImageService_Delete_ObjectFailureIsLogged(t *testing.T) {
	f := newImageFixture()
	ctx := context.Background()
	img, err := catalog.NewProductImage(uuid.New(), "front.jpg", "image/jpeg")
	require.NoError(t, err)

	f.images.On("FindByID", ctx, img.ProductID, img.ID).Return(img, nil)
	f.images.On("Delete", ctx, img.ProductID, img.ID).Return(nil)
	f.storage.On("DeleteObject", ctx, img.StorageKey).Return(errors.New("bucket unavailable"))

	err = f.service.Delete(ctx, img.ProductID, img.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, f.logs.FilterMessage("Failed to delete image object").Len())
}

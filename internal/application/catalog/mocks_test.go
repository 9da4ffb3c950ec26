package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*catalog.ProductView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if build, ok := args.Get(0).(func(uuid.UUID) *catalog.ProductView); ok {
		return build(id), args.Error(1)
	}
	return args.Get(0).(*catalog.ProductView), args.Error(1)
}

func (m *MockProductRepository) FindViews(ctx context.Context, q catalog.ProductQuery) ([]catalog.ProductView, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]catalog.ProductView), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ClearInventory(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountOrderItems(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCollectionRepository is a mock implementation of CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*catalog.CollectionView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if build, ok := args.Get(0).(func(uuid.UUID) *catalog.CollectionView); ok {
		return build(id), args.Error(1)
	}
	return args.Get(0).(*catalog.CollectionView), args.Error(1)
}

func (m *MockCollectionRepository) FindViews(ctx context.Context, q catalog.CollectionQuery) ([]catalog.CollectionView, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]catalog.CollectionView), args.Get(1).(int64), args.Error(2)
}

func (m *MockCollectionRepository) Save(ctx context.Context, collection *catalog.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) CountProducts(ctx context.Context, collectionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionRepository) DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, productID, id uuid.UUID) (*catalog.Review, error) {
	args := m.Called(ctx, productID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, q catalog.ReviewQuery) ([]catalog.Review, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]catalog.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, productID, id uuid.UUID) error {
	args := m.Called(ctx, productID, id)
	return args.Error(0)
}

// MockProductImageRepository is a mock implementation of ProductImageRepository
type MockProductImageRepository struct {
	mock.Mock
}

func (m *MockProductImageRepository) FindByID(ctx context.Context, productID, id uuid.UUID) (*catalog.ProductImage, error) {
	args := m.Called(ctx, productID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductImage), args.Error(1)
}

func (m *MockProductImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ProductImage), args.Error(1)
}

func (m *MockProductImageRepository) Save(ctx context.Context, image *catalog.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockProductImageRepository) Delete(ctx context.Context, productID, id uuid.UUID) error {
	args := m.Called(ctx, productID, id)
	return args.Error(0)
}

// MockImageStorage is a mock implementation of ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) PresignUpload(ctx context.Context, key, contentType string) (PresignedURL, error) {
	args := m.Called(ctx, key, contentType)
	return args.Get(0).(PresignedURL), args.Error(1)
}

func (m *MockImageStorage) PresignDownload(ctx context.Context, key string) (PresignedURL, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(PresignedURL), args.Error(1)
}

func (m *MockImageStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestCollection(title string) *catalog.Collection {
	c, err := catalog.NewCollection(title)
	if err != nil {
		panic(err)
	}
	return c
}

func newTestProduct(collectionID uuid.UUID, title string, price string, inventory int) *catalog.Product {
	p, err := catalog.NewProduct(catalog.ProductInput{
		Title:        title,
		UnitPrice:    decimal.RequireFromString(price),
		Inventory:    inventory,
		CollectionID: collectionID,
	})
	if err != nil {
		panic(err)
	}
	return p
}

func newTestPresignedURL(method string) PresignedURL {
	return PresignedURL{URL: "https://cdn.test/object", Method: method, ExpiresAt: time.Now().Add(15 * time.Minute)}
}

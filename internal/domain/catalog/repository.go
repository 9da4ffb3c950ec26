package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductQuery selects products for list screens
type ProductQuery struct {
	shared.PageRequest
	// Search matches the title, case-insensitively
	Search       string
	CollectionID *uuid.UUID
	// LowInventory keeps only products under LowInventoryThreshold
	LowInventory bool
	UpdatedSince *time.Time
}

// CollectionQuery selects collections for list screens
type CollectionQuery struct {
	shared.PageRequest
	Search string
}

// ReviewQuery selects the reviews of one product
type ReviewQuery struct {
	shared.PageRequest
	ProductID uuid.UUID
}

// ProductRepository persists products.
// There is deliberately no unconditional Delete: DeleteIfUnreferenced is the only
// way to remove a product.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindViews(ctx context.Context, q ProductQuery) ([]ProductView, int64, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, product *Product) error
	// ClearInventory zeroes the inventory of the given products and returns how many rows changed
	ClearInventory(ctx context.Context, ids []uuid.UUID) (int64, error)
	// CountOrderItems counts order items referencing the product
	CountOrderItems(ctx context.Context, productID uuid.UUID) (int64, error)
	// DeleteIfUnreferenced deletes the product unless an order item references it.
	// Check and delete happen atomically. Returns ErrProductInOrders or shared.ErrNotFound.
	DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error
}

// CollectionRepository persists collections.
// As with products, the only delete is the guarded one.
type CollectionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*CollectionView, error)
	FindViews(ctx context.Context, q CollectionQuery) ([]CollectionView, int64, error)
	Save(ctx context.Context, collection *Collection) error
	// CountProducts counts products belonging to the collection
	CountProducts(ctx context.Context, collectionID uuid.UUID) (int64, error)
	// DeleteIfUnreferenced deletes the collection unless a product belongs to it.
	// Check and delete happen atomically. Returns ErrCollectionHasProducts or shared.ErrNotFound.
	DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository persists product reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, productID, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, q ReviewQuery) ([]Review, int64, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, productID, id uuid.UUID) error
}

// ProductImageRepository persists image metadata; the bytes live in object storage
type ProductImageRepository interface {
	FindByID(ctx context.Context, productID, id uuid.UUID) (*ProductImage, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)
	Save(ctx context.Context, image *ProductImage) error
	Delete(ctx context.Context, productID, id uuid.UUID) error
}

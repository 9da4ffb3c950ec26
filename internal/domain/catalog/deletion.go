package catalog

import "github.com/storefront/backend/internal/domain/shared"

// Rejection messages are part of the public API contract and must not change.
const (
	ProductInOrdersMessage       = "Product cannot be delete because it is associated with order item"
	CollectionHasProductsMessage = "Collection cannot be deleted because one or more products are associated with it."
)

var (
	// ErrProductInOrders rejects deleting a product referenced by order items
	ErrProductInOrders = shared.NewDeletionRejectedError(ProductInOrdersMessage)
	// ErrCollectionHasProducts rejects deleting a collection that still has products
	ErrCollectionHasProducts = shared.NewDeletionRejectedError(CollectionHasProductsMessage)
)

// CheckProductDeletable decides whether a product with the given number of
// referencing order items may be deleted.
func CheckProductDeletable(orderItemRefs int64) error {
	if orderItemRefs > 0 {
		return ErrProductInOrders
	}
	return nil
}

// CheckCollectionDeletable decides whether a collection with the given number of
// member products may be deleted.
func CheckCollectionDeletable(productRefs int64) error {
	if productRefs > 0 {
		return ErrCollectionHasProducts
	}
	return nil
}

package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeleteRacingOrderPlacement runs guarded deletes against concurrent order
// placement for the same products. Whatever the interleaving, no order item may
// end up pointing at a deleted product and every outcome must be one of the two
// legal ones.
func TestDeleteRacingOrderPlacement(t *testing.T) {
	db := setupStoreTestDB(t)
	products := NewGormProductRepository(db)
	orders := NewGormOrderRepository(db)
	ctx := context.Background()

	col := seedCollection(t, db, "Race")
	cust := seedCustomer(t, db, "Racer", "racer@example.com")

	const rounds = 25
	for i := 0; i < rounds; i++ {
		p := seedProduct(t, db, col.ID, fmt.Sprintf("Contested %d", i), "1.00", 1)

		var wg sync.WaitGroup
		var placeErr, deleteErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, placeErr = orders.Place(ctx, cust.ID, []ordering.OrderLine{{ProductID: p.ID, Quantity: 1}}, nil)
		}()
		go func() {
			defer wg.Done()
			deleteErr = products.DeleteIfUnreferenced(ctx, p.ID)
		}()
		wg.Wait()

		_, findErr := products.FindByID(ctx, p.ID)
		if deleteErr == nil {
			assert.ErrorIs(t, findErr, shared.ErrNotFound, "round %d", i)
			assert.ErrorIs(t, placeErr, shared.ErrNotFound, "round %d: order placed for deleted product", i)
		} else {
			assert.True(t, errors.Is(deleteErr, catalog.ErrProductInOrders), "round %d: %v", i, deleteErr)
			assert.NoError(t, placeErr, "round %d", i)
			assert.NoError(t, findErr, "round %d", i)
		}
	}

	var orphans int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM order_items LEFT JOIN products ON products.id = order_items.product_id WHERE products.id IS NULL",
	).Scan(&orphans).Error)
	assert.Zero(t, orphans)
}

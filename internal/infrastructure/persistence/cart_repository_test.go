package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCartRepository_Items(t *testing.T) {
	db := setupStoreTestDB(t)
	carts := NewGormCartRepository(db)
	ctx := context.Background()

	col := seedCollection(t, db, "Misc")
	p := seedProduct(t, db, col.ID, "Mug", "8.00", 4)
	cart := ordering.NewCart()
	require.NoError(t, carts.Create(ctx, cart))

	t.Run("adding the same product twice merges the line", func(t *testing.T) {
		first, err := ordering.NewCartItem(cart.ID, p.ID, 2)
		require.NoError(t, err)
		saved, err := carts.AddItem(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, 2, saved.Quantity)

		second, err := ordering.NewCartItem(cart.ID, p.ID, 3)
		require.NoError(t, err)
		merged, err := carts.AddItem(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, merged.ID)
		assert.Equal(t, 5, merged.Quantity)
		assert.Equal(t, "Mug", merged.ProductTitle)

		loaded, err := carts.FindByID(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Items, 1)
		assert.True(t, decimal.NewFromInt(40).Equal(loaded.Total()))
	})

	t.Run("unknown product", func(t *testing.T) {
		item, err := ordering.NewCartItem(cart.ID, uuid.New(), 1)
		require.NoError(t, err)
		_, err = carts.AddItem(ctx, item)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown cart", func(t *testing.T) {
		item, err := ordering.NewCartItem(uuid.New(), p.ID, 1)
		require.NoError(t, err)
		_, err = carts.AddItem(ctx, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update and remove", func(t *testing.T) {
		loaded, err := carts.FindByID(ctx, cart.ID)
		require.NoError(t, err)
		itemID := loaded.Items[0].ID

		updated, err := carts.UpdateItemQuantity(ctx, cart.ID, itemID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Quantity)

		_, err = carts.UpdateItemQuantity(ctx, cart.ID, itemID, 0)
		require.Error(t, err)

		require.NoError(t, carts.RemoveItem(ctx, cart.ID, itemID))
		assert.ErrorIs(t, carts.RemoveItem(ctx, cart.ID, itemID), shared.ErrNotFound)
	})

	t.Run("delete cart", func(t *testing.T) {
		require.NoError(t, carts.Delete(ctx, cart.ID))
		assert.ErrorIs(t, carts.Delete(ctx, cart.ID), shared.ErrNotFound)
	})
}

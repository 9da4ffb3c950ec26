package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartService_Create(t *testing.T) {
	carts := new(MockCartRepository)
	service := NewCartService(carts)
	ctx := context.Background()

	carts.On("Create", ctx, mock.AnythingOfType("*ordering.Cart")).Return(nil)

	result, err := service.Create(ctx)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Empty(t, result.Items)
	assert.True(t, result.TotalPrice.IsZero())
}

func TestCartService_Get_Totals(t *testing.T) {
	carts := new(MockCartRepository)
	service := NewCartService(carts)
	ctx := context.Background()
	cart := ordering.NewCart()
	cart.Items = []ordering.CartItem{
		{ID: uuid.New(), ProductID: uuid.New(), ProductTitle: "Apple", UnitPrice: decimal.RequireFromString("1.25"), Quantity: 4},
		{ID: uuid.New(), ProductID: uuid.New(), ProductTitle: "Pear", UnitPrice: decimal.RequireFromString("2.00"), Quantity: 1},
	}

	carts.On("FindByID", ctx, cart.ID).Return(cart, nil)

	result, err := service.Get(ctx, cart.ID)

	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Apple", result.Items[0].Product.Title)
	assert.True(t, result.Items[0].TotalPrice.Equal(decimal.NewFromInt(5)))
	assert.True(t, result.TotalPrice.Equal(decimal.NewFromInt(7)))
}

func TestCartService_AddItem(t *testing.T) {
	carts := new(MockCartRepository)
	service := NewCartService(carts)
	ctx := context.Background()
	cartID, productID := uuid.New(), uuid.New()
	merged := &ordering.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, UnitPrice: decimal.NewFromInt(3), Quantity: 5}

	carts.On("AddItem", ctx, mock.MatchedBy(func(it *ordering.CartItem) bool {
		return it.CartID == cartID && it.ProductID == productID && it.Quantity == 2
	})).Return(merged, nil)

	result, err := service.AddItem(ctx, cartID, AddCartItemRequest{ProductID: productID, Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, 5, result.Quantity)
	assert.True(t, result.TotalPrice.Equal(decimal.NewFromInt(15)))
}

func TestCartService_UpdateItem_InvalidQuantity(t *testing.T) {
	carts := new(MockCartRepository)
	service := NewCartService(carts)

	_, err := service.UpdateItem(context.Background(), uuid.New(), uuid.New(), UpdateCartItemRequest{Quantity: 0})

	require.Error(t, err)
	carts.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_RemoveItem_NotFound(t *testing.T) {
	carts := new(MockCartRepository)
	service := NewCartService(carts)
	ctx := context.Background()
	cartID, itemID := uuid.New(), uuid.New()

	carts.On("RemoveItem", ctx, cartID, itemID).Return(shared.ErrNotFound)

	assert.ErrorIs(t, service.RemoveItem(ctx, cartID, itemID), shared.ErrNotFound)
}

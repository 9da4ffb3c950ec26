package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLines(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	merged, err := MergeLines([]OrderLine{{a, 1}, {b, 2}, {a, 3}})
	require.NoError(t, err)
	assert.Equal(t, []OrderLine{{a, 4}, {b, 2}}, merged)

	_, err = MergeLines(nil)
	assert.Error(t, err)

	_, err = MergeLines([]OrderLine{{a, 0}})
	assert.Error(t, err)

	_, err = MergeLines([]OrderLine{{uuid.Nil, 1}})
	assert.Error(t, err)
}

func TestNewOrder(t *testing.T) {
	customerID := uuid.New()
	p1 := PricedProduct{ID: uuid.New(), Title: "Mug", UnitPrice: decimal.RequireFromString("4.50")}
	p2 := PricedProduct{ID: uuid.New(), Title: "Tea", UnitPrice: decimal.RequireFromString("2.00")}
	products := map[uuid.UUID]PricedProduct{p1.ID: p1, p2.ID: p2}

	t.Run("prices lines from products", func(t *testing.T) {
		o, err := NewOrder(customerID, []OrderLine{{p1.ID, 2}, {p2.ID, 3}}, products)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
		require.Len(t, o.Items, 2)
		assert.Equal(t, o.ID, o.Items[0].OrderID)
		assert.True(t, decimal.RequireFromString("15.00").Equal(o.Total()))
		require.Len(t, o.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeOrderPlaced, o.GetDomainEvents()[0].EventType())
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		_, err := NewOrder(customerID, []OrderLine{{uuid.New(), 1}}, products)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("customer required", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, []OrderLine{{p1.ID, 1}}, products)
		assert.Error(t, err)
	})
}

func TestOrder_UpdatePaymentStatus(t *testing.T) {
	o := &Order{BaseAggregateRoot: shared.NewBaseAggregateRoot(), PaymentStatus: PaymentStatusPending}

	require.NoError(t, o.UpdatePaymentStatus(PaymentStatusFailed))
	require.NoError(t, o.UpdatePaymentStatus(PaymentStatusComplete))
	assert.Equal(t, 3, o.GetVersion())

	err := o.UpdatePaymentStatus(PaymentStatusPending)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	assert.Error(t, o.UpdatePaymentStatus(PaymentStatus("X")))
}

func TestCart_Total(t *testing.T) {
	cart := NewCart()
	cart.Items = []CartItem{
		{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("1.25"), Quantity: 4},
		{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("10"), Quantity: 1},
	}
	assert.True(t, decimal.RequireFromString("15").Equal(cart.Total()))
	assert.Len(t, cart.Lines(), 2)

	_, err := NewCartItem(cart.ID, uuid.New(), 0)
	assert.Error(t, err)
}

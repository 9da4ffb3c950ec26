package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func newPlacedOrder(t *testing.T, customerID uuid.UUID, lines ...ordering.OrderLine) *ordering.Order {
	t.Helper()
	priced := make(map[uuid.UUID]ordering.PricedProduct, len(lines))
	for _, l := range lines {
		priced[l.ProductID] = ordering.PricedProduct{ID: l.ProductID, Title: "Item", UnitPrice: decimal.RequireFromString("2.50")}
	}
	o, err := ordering.NewOrder(customerID, lines, priced)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestOrderService_Place_FromItems(t *testing.T) {
	orders := new(MockOrderRepository)
	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewStoreMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	require.NoError(t, err)
	service := NewOrderService(orders, new(MockCartRepository), zaptest.NewLogger(t))
	service.SetMetrics(metrics)
	ctx := context.Background()
	customerID, productID := uuid.New(), uuid.New()
	placed := newPlacedOrder(t, customerID, ordering.OrderLine{ProductID: productID, Quantity: 3})

	orders.On("Place", ctx, customerID, []ordering.OrderLine{{ProductID: productID, Quantity: 3}}, (*uuid.UUID)(nil)).
		Return(placed, nil)

	result, err := service.Place(ctx, PlaceOrderRequest{
		CustomerID: customerID,
		Items: []OrderLineRequest{
			{ProductID: productID, Quantity: 1},
			{ProductID: productID, Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "P", result.PaymentStatus)
	assert.True(t, result.TotalPrice.Equal(decimal.RequireFromString("7.5")))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	var placedCount int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "orders_placed_total" {
				placedCount = m.Data.(metricdata.Sum[int64]).DataPoints[0].Value
			}
		}
	}
	assert.Equal(t, int64(1), placedCount)
}

func TestOrderService_Place_FromCart(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	service := NewOrderService(orders, carts, zaptest.NewLogger(t))
	ctx := context.Background()
	customerID, productID := uuid.New(), uuid.New()
	cart := ordering.NewCart()
	cart.Items = []ordering.CartItem{{ID: uuid.New(), CartID: cart.ID, ProductID: productID, Quantity: 2}}
	placed := newPlacedOrder(t, customerID, ordering.OrderLine{ProductID: productID, Quantity: 2})

	carts.On("FindByID", ctx, cart.ID).Return(cart, nil)
	orders.On("Place", ctx, customerID, cart.Lines(), &cart.ID).Return(placed, nil)

	result, err := service.Place(ctx, PlaceOrderRequest{CustomerID: customerID, CartID: &cart.ID})

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.Items[0].Quantity)
	orders.AssertExpectations(t)
}

func TestOrderService_Place_EmptyCart(t *testing.T) {
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	service := NewOrderService(orders, carts, zaptest.NewLogger(t))
	ctx := context.Background()
	cart := ordering.NewCart()

	carts.On("FindByID", ctx, cart.ID).Return(cart, nil)

	_, err := service.Place(ctx, PlaceOrderRequest{CustomerID: uuid.New(), CartID: &cart.ID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_ORDER", domainErr.Code)
	orders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Place_NoItems(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockCartRepository), zaptest.NewLogger(t))

	_, err := service.Place(context.Background(), PlaceOrderRequest{CustomerID: uuid.New()})

	require.Error(t, err)
	orders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Place_CartAndItems(t *testing.T) {
	service := NewOrderService(new(MockOrderRepository), new(MockCartRepository), zaptest.NewLogger(t))
	cartID := uuid.New()

	_, err := service.Place(context.Background(), PlaceOrderRequest{
		CustomerID: uuid.New(),
		CartID:     &cartID,
		Items:      []OrderLineRequest{{ProductID: uuid.New(), Quantity: 1}},
	})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestOrderService_Place_ProductDeletedMeanwhile(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockCartRepository), zaptest.NewLogger(t))
	ctx := context.Background()
	customerID, productID := uuid.New(), uuid.New()
	missing := shared.NewDomainError(shared.CodeNotFound, "Product not found: "+productID.String())

	orders.On("Place", ctx, customerID, mock.Anything, (*uuid.UUID)(nil)).Return(nil, missing)

	_, err := service.Place(ctx, PlaceOrderRequest{
		CustomerID: customerID,
		Items:      []OrderLineRequest{{ProductID: productID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_UpdatePaymentStatus(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockCartRepository), zaptest.NewLogger(t))
	ctx := context.Background()
	o := newPlacedOrder(t, uuid.New(), ordering.OrderLine{ProductID: uuid.New(), Quantity: 1})

	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	orders.On("UpdatePaymentStatus", ctx, o).Return(nil)

	result, err := service.UpdatePaymentStatus(ctx, o.ID, UpdatePaymentStatusRequest{PaymentStatus: "C"})

	require.NoError(t, err)
	assert.Equal(t, "C", result.PaymentStatus)
	assert.Equal(t, "Complete", result.PaymentStatusLabel)
}

func TestOrderService_UpdatePaymentStatus_Unchanged(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockCartRepository), zaptest.NewLogger(t))
	ctx := context.Background()
	o := newPlacedOrder(t, uuid.New(), ordering.OrderLine{ProductID: uuid.New(), Quantity: 1})

	orders.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err := service.UpdatePaymentStatus(ctx, o.ID, UpdatePaymentStatusRequest{PaymentStatus: "P"})

	require.NoError(t, err)
	orders.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything)
}

func TestOrderService_UpdatePaymentStatus_CompleteIsTerminal(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockCartRepository), zaptest.NewLogger(t))
	ctx := context.Background()
	o := newPlacedOrder(t, uuid.New(), ordering.OrderLine{ProductID: uuid.New(), Quantity: 1})
	require.NoError(t, o.UpdatePaymentStatus(ordering.PaymentStatusComplete))

	orders.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err := service.UpdatePaymentStatus(ctx, o.ID, UpdatePaymentStatusRequest{PaymentStatus: "F"})

	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestOrderService_List_NewestFirst(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockCartRepository), zaptest.NewLogger(t))
	ctx := context.Background()
	customerID := uuid.New()

	orders.On("FindAll", ctx, mock.MatchedBy(func(q ordering.OrderQuery) bool {
		return q.OrderBy == "placed_at" && q.OrderDir == shared.SortDesc &&
			q.CustomerID != nil && *q.CustomerID == customerID && q.PaymentStatus == ordering.PaymentStatusFailed
	})).Return([]ordering.Order{}, int64(0), nil)

	result, err := service.List(ctx, OrderListFilter{CustomerID: &customerID, PaymentStatus: "F"})

	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

// Package ordering implements order placement and shopping carts.
package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService places and manages orders
type OrderService struct {
	orders  ordering.OrderRepository
	carts   ordering.CartRepository
	metrics *telemetry.StoreMetrics
	limits  shared.PageLimits
	logger  *zap.Logger
}

// NewOrderService creates an OrderService
func NewOrderService(orders ordering.OrderRepository, carts ordering.CartRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, carts: carts, limits: shared.DefaultPageLimits, logger: logger}
}

// SetMetrics enables order counters
func (s *OrderService) SetMetrics(m *telemetry.StoreMetrics) {
	s.metrics = m
}

// SetPageLimits overrides the default list page sizes
func (s *OrderService) SetPageLimits(l shared.PageLimits) {
	s.limits = l
}

// List returns a page of orders, newest first
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (shared.Paginated[OrderResponse], error) {
	q := ordering.OrderQuery{
		PageRequest: s.limits.Apply(shared.PageRequest{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "placed_at",
			OrderDir: shared.SortDesc,
		}),
		CustomerID:    filter.CustomerID,
		PaymentStatus: ordering.PaymentStatus(filter.PaymentStatus),
	}
	orders, total, err := s.orders.FindAll(ctx, q)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(items, total, q.Page, q.PageSize), nil
}

// Get returns one order with its items
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Place creates an order from a cart or from explicit lines. A cart used as the
// source is deleted together with the insert.
func (s *OrderService) Place(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	lines, err := s.resolveLines(ctx, req)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.Place(ctx, req.CustomerID, lines, req.CartID)
	if err != nil {
		return nil, err
	}

	total := o.Total()
	s.metrics.RecordOrderPlaced(ctx, total)
	s.logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("customer_id", o.CustomerID.String()),
		zap.Int("items", len(o.Items)),
		zap.String("total", total.StringFixed(2)),
	)
	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *OrderService) resolveLines(ctx context.Context, req PlaceOrderRequest) ([]ordering.OrderLine, error) {
	if req.CartID != nil {
		if len(req.Items) > 0 {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Provide either cart_id or items, not both")
		}
		cart, err := s.carts.FindByID(ctx, *req.CartID)
		if err != nil {
			return nil, err
		}
		if len(cart.Items) == 0 {
			return nil, shared.NewDomainError("EMPTY_ORDER", "The cart is empty")
		}
		return cart.Lines(), nil
	}
	lines := make([]ordering.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, ordering.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return ordering.MergeLines(lines)
}

// UpdatePaymentStatus moves an order to a new payment status
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req UpdatePaymentStatusRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status := ordering.PaymentStatus(req.PaymentStatus)
	if o.PaymentStatus != status {
		if err := o.UpdatePaymentStatus(status); err != nil {
			return nil, err
		}
		if err := s.orders.UpdatePaymentStatus(ctx, o); err != nil {
			return nil, err
		}
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

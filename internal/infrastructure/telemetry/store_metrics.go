package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// Deletion outcomes recorded on catalog_deletions_total
const (
	OutcomeDeleted  = "deleted"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// StoreMetrics holds the storefront business instruments. A nil *StoreMetrics is valid
// and records nothing.
type StoreMetrics struct {
	deletions    *Counter
	ordersPlaced *Counter
	orderRevenue metric.Float64Counter
}

// NewStoreMetrics creates the storefront instruments on meter
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	deletions, err := NewCounter(meter,
		"catalog_deletions_total",
		"Guarded catalog deletions by entity and outcome",
		"{deletion}",
	)
	if err != nil {
		return nil, err
	}
	orders, err := NewCounter(meter, "orders_placed_total", "Orders placed", "{order}")
	if err != nil {
		return nil, err
	}
	revenue, err := meter.Float64Counter("orders_revenue_total",
		metric.WithDescription("Sum of placed order totals"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return nil, err
	}
	return &StoreMetrics{deletions: deletions, ordersPlaced: orders, orderRevenue: revenue}, nil
}

// RecordDeletion counts one guarded delete attempt
func (m *StoreMetrics) RecordDeletion(ctx context.Context, entity, outcome string) {
	if m == nil {
		return
	}
	m.deletions.Inc(ctx, AttrEntity.String(entity), AttrOutcome.String(outcome))
}

// RecordOrderPlaced counts an order and adds its total to revenue
func (m *StoreMetrics) RecordOrderPlaced(ctx context.Context, total decimal.Decimal) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc(ctx)
	m.orderRevenue.Add(ctx, total.InexactFloat64())
}

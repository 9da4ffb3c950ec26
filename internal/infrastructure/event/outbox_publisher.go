package event

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OutboxPublisher stages catalog and ordering events as pending outbox rows.
// Rows are written through the repository's open transaction, so a rolled back
// delete or order leaves no event behind for the relay.
type OutboxPublisher struct {
	serializer *EventSerializer
	logger     *zap.Logger
}

// NewOutboxPublisher creates a publisher. A nil logger discards output.
func NewOutboxPublisher(serializer *EventSerializer, logger *zap.Logger) *OutboxPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutboxPublisher{serializer: serializer, logger: logger.Named("outbox")}
}

// SaveEvents implements shared.OutboxEventSaver. tx must be the caller's *gorm.DB transaction.
func (p *OutboxPublisher) SaveEvents(ctx context.Context, tx any, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	db, ok := tx.(*gorm.DB)
	if !ok {
		return fmt.Errorf("outbox needs the open *gorm.DB transaction, got %T", tx)
	}
	return p.Append(ctx, db, events...)
}

// Append serializes events and inserts one pending row per event
func (p *OutboxPublisher) Append(ctx context.Context, tx *gorm.DB, events ...shared.DomainEvent) error {
	rows := make([]*shared.OutboxEntry, len(events))
	for i, ev := range events {
		payload, err := p.serializer.Serialize(ev)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", ev.EventType(), ev.EventID(), err)
		}
		rows[i] = shared.NewOutboxEntry(ev, payload)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := NewGormOutboxRepository(tx).Save(ctx, rows...); err != nil {
		return err
	}

	for _, row := range rows {
		p.logger.Debug("event staged",
			zap.String("event_type", row.EventType),
			zap.String("aggregate_type", row.AggregateType),
			zap.Stringer("aggregate_id", row.AggregateID),
		)
	}
	return nil
}

var _ shared.OutboxEventSaver = (*OutboxPublisher)(nil)

// Package event exposes outbox inspection and dead-letter recovery to staff.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// retryBatchSize bounds one FindDead round of RetryAllDeadEntries
const retryBatchSize = 100

// OutboxService reads outbox state and requeues dead entries
type OutboxService struct {
	repo   shared.OutboxRepository
	limits shared.PageLimits
	logger *zap.Logger
}

// NewOutboxService creates a new outbox service
func NewOutboxService(repo shared.OutboxRepository, logger *zap.Logger) *OutboxService {
	return &OutboxService{
		repo:   repo,
		limits: shared.PageLimits{Default: 20, Max: 100},
		logger: logger.Named("outbox"),
	}
}

// OutboxEntryDTO is an outbox entry without its payload
type OutboxEntryDTO struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"event_id"`
	EventType     string     `json:"event_type"`
	AggregateID   uuid.UUID  `json:"aggregate_id"`
	AggregateType string     `json:"aggregate_type"`
	Status        string     `json:"status"`
	RetryCount    int        `json:"retry_count"`
	MaxRetries    int        `json:"max_retries"`
	LastError     string     `json:"last_error,omitempty"`
	NextRetryAt   *time.Time `json:"next_retry_at,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func newOutboxEntryDTO(e *shared.OutboxEntry) *OutboxEntryDTO {
	return &OutboxEntryDTO{
		ID:            e.ID,
		EventID:       e.EventID,
		EventType:     e.EventType,
		AggregateID:   e.AggregateID,
		AggregateType: e.AggregateType,
		Status:        string(e.Status),
		RetryCount:    e.RetryCount,
		MaxRetries:    e.MaxRetries,
		LastError:     e.LastError,
		NextRetryAt:   e.NextRetryAt,
		ProcessedAt:   e.ProcessedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// OutboxFilter paginates the dead letter list
type OutboxFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OutboxStatsDTO counts entries per status
type OutboxStatsDTO struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
	Failed     int64 `json:"failed"`
	Dead       int64 `json:"dead"`
	Total      int64 `json:"total"`
}

// RetryAllResult reports how many dead entries were requeued
type RetryAllResult struct {
	Retried int64 `json:"retried"`
}

// GetDeadLetterEntries lists dead entries, most recently failed first
func (s *OutboxService) GetDeadLetterEntries(ctx context.Context, filter OutboxFilter) (shared.Paginated[OutboxEntryDTO], error) {
	p := s.limits.Apply(shared.PageRequest{Page: filter.Page, PageSize: filter.PageSize})
	entries, total, err := s.repo.FindDead(ctx, p.Page, p.PageSize)
	if err != nil {
		return shared.Paginated[OutboxEntryDTO]{}, fmt.Errorf("find dead outbox entries: %w", err)
	}
	items := make([]OutboxEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, *newOutboxEntryDTO(e))
	}
	return shared.NewPaginated(items, total, p.Page, p.PageSize), nil
}

// GetEntry returns one entry; unknown IDs surface the repository's not-found error
func (s *OutboxService) GetEntry(ctx context.Context, id uuid.UUID) (*OutboxEntryDTO, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newOutboxEntryDTO(e), nil
}

// RetryDeadEntry moves one dead entry back to pending
func (s *OutboxService) RetryDeadEntry(ctx context.Context, id uuid.UUID) (*OutboxEntryDTO, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requeue(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("dead entry requeued", zap.Stringer("id", id), zap.String("event_type", e.EventType))
	return newOutboxEntryDTO(e), nil
}

// RetryAllDeadEntries requeues every dead entry. Requeued entries leave the dead
// set, so each round rereads page one until a round makes no progress.
func (s *OutboxService) RetryAllDeadEntries(ctx context.Context) (*RetryAllResult, error) {
	result := &RetryAllResult{}
	for {
		batch, _, err := s.repo.FindDead(ctx, 1, retryBatchSize)
		if err != nil {
			return result, fmt.Errorf("find dead outbox entries: %w", err)
		}
		var progressed int64
		for _, e := range batch {
			if err := s.requeue(ctx, e); err != nil {
				s.logger.Warn("dead entry not requeued", zap.Stringer("id", e.ID), zap.Error(err))
				continue
			}
			progressed++
		}
		result.Retried += progressed
		if progressed == 0 || len(batch) < retryBatchSize {
			break
		}
	}
	s.logger.Info("dead entries requeued", zap.Int64("count", result.Retried))
	return result, nil
}

func (s *OutboxService) requeue(ctx context.Context, e *shared.OutboxEntry) error {
	if err := e.ResetForRetry(); err != nil {
		return shared.NewDomainError(shared.CodeInvalidState, err.Error())
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return fmt.Errorf("update outbox entry %s: %w", e.ID, err)
	}
	return nil
}

// GetStats counts entries per status
func (s *OutboxService) GetStats(ctx context.Context) (*OutboxStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count outbox entries: %w", err)
	}
	stats := &OutboxStatsDTO{
		Pending:    counts[shared.OutboxStatusPending],
		Processing: counts[shared.OutboxStatusProcessing],
		Sent:       counts[shared.OutboxStatusSent],
		Failed:     counts[shared.OutboxStatusFailed],
		Dead:       counts[shared.OutboxStatusDead],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OutboxProcessorConfig tunes the relay and retention loops
type OutboxProcessorConfig struct {
	BatchSize        int
	PollInterval     time.Duration
	MaxRetries       int
	CleanupEnabled   bool
	CleanupRetention time.Duration
	CleanupInterval  time.Duration
}

// DefaultOutboxProcessorConfig returns default configuration
func DefaultOutboxProcessorConfig() OutboxProcessorConfig {
	return OutboxProcessorConfig{
		BatchSize:        100,
		PollInterval:     5 * time.Second,
		MaxRetries:       shared.DefaultMaxRetries,
		CleanupEnabled:   true,
		CleanupRetention: 7 * 24 * time.Hour,
		CleanupInterval:  time.Hour,
	}
}

// BatchResult counts the outcomes of one ProcessOnce pass
type BatchResult struct {
	Sent   int
	Failed int
	Dead   int
}

// OutboxProcessor claims committed outbox entries and publishes them to the
// in-process bus. Entries are claimed before publishing so that two processors
// never relay the same row at once.
type OutboxProcessor struct {
	repo       shared.OutboxRepository
	bus        shared.EventPublisher
	serializer *EventSerializer
	cfg        OutboxProcessorConfig
	logger     *zap.Logger

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewOutboxProcessor creates a new outbox processor
func NewOutboxProcessor(
	repo shared.OutboxRepository,
	bus shared.EventPublisher,
	serializer *EventSerializer,
	cfg OutboxProcessorConfig,
	logger *zap.Logger,
) *OutboxProcessor {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	return &OutboxProcessor{
		repo:       repo,
		bus:        bus,
		serializer: serializer,
		cfg:        cfg,
		logger:     logger.Named("outbox"),
	}
}

// Start runs the relay loop and, when enabled, the retention loop until Stop
func (p *OutboxProcessor) Start(ctx context.Context) error {
	ctx, p.cancel = context.WithCancel(ctx)
	p.group, ctx = errgroup.WithContext(ctx)

	p.group.Go(func() error {
		every(ctx, p.cfg.PollInterval, func() { p.ProcessOnce(ctx) })
		return nil
	})
	if p.cfg.CleanupEnabled {
		p.group.Go(func() error {
			every(ctx, p.cfg.CleanupInterval, func() { p.Cleanup(ctx) })
			return nil
		})
	}

	p.logger.Info("relay started",
		zap.Int("batch_size", p.cfg.BatchSize),
		zap.Duration("poll_interval", p.cfg.PollInterval),
		zap.Bool("cleanup", p.cfg.CleanupEnabled),
	)
	return nil
}

// Stop cancels both loops and waits for the current pass to finish, bounded by ctx
func (p *OutboxProcessor) Stop(ctx context.Context) error {
	if p.group == nil {
		return nil
	}
	p.cancel()

	done := make(chan error, 1)
	go func() { done <- p.group.Wait() }()

	select {
	case err := <-done:
		p.logger.Info("relay stopped")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func every(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

// ProcessOnce relays one batch of new entries, then one batch of entries whose
// retry time has come
func (p *OutboxProcessor) ProcessOnce(ctx context.Context) BatchResult {
	var res BatchResult
	sources := []struct {
		name string
		load func() ([]*shared.OutboxEntry, error)
	}{
		{"pending", func() ([]*shared.OutboxEntry, error) { return p.repo.FindPending(ctx, p.cfg.BatchSize) }},
		{"retryable", func() ([]*shared.OutboxEntry, error) { return p.repo.FindRetryable(ctx, time.Now(), p.cfg.BatchSize) }},
	}
	for _, src := range sources {
		entries, err := src.load()
		if err != nil {
			p.logger.Error("load outbox entries", zap.String("source", src.name), zap.Error(err))
			return res
		}
		for _, entry := range p.claim(ctx, entries) {
			p.relay(ctx, entry, &res)
		}
	}
	return res
}

// claim moves entries to processing and returns the ones this processor won
func (p *OutboxProcessor) claim(ctx context.Context, entries []*shared.OutboxEntry) []*shared.OutboxEntry {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	claimed, err := p.repo.MarkProcessing(ctx, ids)
	if err != nil {
		p.logger.Error("claim outbox entries", zap.Int("count", len(ids)), zap.Error(err))
		return nil
	}
	return claimed
}

func (p *OutboxProcessor) relay(ctx context.Context, entry *shared.OutboxEntry, res *BatchResult) {
	log := p.logger.With(
		zap.Stringer("event_id", entry.EventID),
		zap.String("event_type", entry.EventType),
	)

	evt, err := p.serializer.Deserialize(entry.EventType, entry.Payload)
	if err == nil {
		err = p.bus.Publish(ctx, evt)
	}
	if err != nil {
		if p.cfg.MaxRetries > 0 {
			entry.MaxRetries = p.cfg.MaxRetries
		}
		entry.MarkFailed(err.Error())
		if entry.IsDead() {
			res.Dead++
			log.Warn("outbox entry dead lettered", zap.Int("attempts", entry.RetryCount), zap.Error(err))
		} else {
			res.Failed++
			log.Error("outbox relay failed",
				zap.Int("attempts", entry.RetryCount),
				zap.Timep("next_retry_at", entry.NextRetryAt),
				zap.Error(err),
			)
		}
	} else {
		entry.MarkSent()
	}

	if uerr := p.repo.Update(ctx, entry); uerr != nil {
		log.Error("persist outbox entry state", zap.String("status", string(entry.Status)), zap.Error(uerr))
		return
	}
	if err == nil {
		res.Sent++
		log.Debug("outbox entry relayed")
	}
}

// Cleanup deletes sent entries older than the retention window and returns
// how many rows went
func (p *OutboxProcessor) Cleanup(ctx context.Context) int64 {
	cutoff := time.Now().Add(-p.cfg.CleanupRetention)
	n, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("outbox cleanup", zap.Error(err))
		return 0
	}
	if n > 0 {
		p.logger.Info("outbox cleaned", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	}
	return n
}

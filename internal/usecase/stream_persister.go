package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"go.uber.org/zap"
)

// StreamPersister откладывает сохранение: публикует пачку мест в Redis Stream,
// откуда её забирает воркер
type StreamPersister struct {
	streamRepo repository.StreamRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewStreamPersister(streamRepo repository.StreamRepository, logger *zap.Logger, now func() time.Time) *StreamPersister {
	if now == nil {
		now = time.Now
	}
	return &StreamPersister{
		streamRepo: streamRepo,
		logger:     logger,
		now:        now,
	}
}

func (p *StreamPersister) Persist(ctx context.Context, places []*domain.Place) error {
	event := domain.PlacesIngestEvent{
		BatchID:     uuid.New(),
		RequestedAt: p.now().UTC(),
		Places:      places,
	}

	if err := p.streamRepo.PublishToStream(ctx, domain.StreamPlacesIngest, event); err != nil {
		return fmt.Errorf("failed to publish places batch: %w", err)
	}

	p.logger.Debug("Places batch queued",
		zap.String("batch_id", event.BatchID.String()),
		zap.Int("count", len(places)))
	return nil
}

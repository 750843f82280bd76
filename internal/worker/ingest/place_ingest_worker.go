package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/worker"
	"go.uber.org/zap"
)

const (
	workerName      = "place-ingest"
	emptyQueueSleep = 100 * time.Millisecond
	errorSleep      = time.Second

	// pendingMinIdle - через сколько неподтверждённое сообщение считается брошенным
	pendingMinIdle  = time.Minute
	reclaimInterval = time.Minute
)

// BatchReconciler сохраняет пачку мест
type BatchReconciler interface {
	ReconcileBatch(ctx context.Context, places []*domain.Place) domain.ReconcileSummary
}

// PlaceIngestWorker забирает пачки мест из stream:places:ingest и сохраняет их
type PlaceIngestWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	reconciler BatchReconciler
	batchSize  int
}

func NewPlaceIngestWorker(
	streamRepo repository.StreamRepository,
	reconciler BatchReconciler,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *PlaceIngestWorker {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &PlaceIngestWorker{
		BaseWorker: worker.NewBaseWorker(workerName, consumerGroup, logger),
		streamRepo: streamRepo,
		reconciler: reconciler,
		batchSize:  batchSize,
	}
}

func (w *PlaceIngestWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting place ingest worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlacesIngest, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	var lastReclaim time.Time
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		if time.Since(lastReclaim) >= reclaimInterval {
			lastReclaim = time.Now()
			if _, err := w.RecoverPending(ctx); err != nil {
				logger.Error("Failed to recover pending messages", zap.Error(err))
			}
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch читает сообщения, сохраняет места и подтверждает сообщения.
// Битые сообщения подтверждаются и отбрасываются. Возвращает число прочитанных сообщений.
func (w *PlaceIngestWorker) ProcessBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamPlacesIngest, w.ConsumerGroup(), w.ConsumerName(), w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	w.handle(ctx, messages)
	return len(messages), nil
}

// RecoverPending дообрабатывает сообщения, оставшиеся в pending после падения
// воркера или неудачного XACK. Возвращает число переобработанных сообщений.
func (w *PlaceIngestWorker) RecoverPending(ctx context.Context) (int, error) {
	total := 0
	for {
		messages, err := w.streamRepo.ClaimPending(ctx, domain.StreamPlacesIngest, w.ConsumerGroup(), w.ConsumerName(), pendingMinIdle, w.batchSize)
		if err != nil {
			return total, fmt.Errorf("failed to claim pending messages: %w", err)
		}
		if len(messages) == 0 {
			return total, nil
		}

		w.handle(ctx, messages)
		total += len(messages)
	}
}

// handle сохраняет места из сообщений и подтверждает их; битые сообщения подтверждаются и отбрасываются
func (w *PlaceIngestWorker) handle(ctx context.Context, messages []domain.StreamMessage) {
	logger := w.Logger()

	ackIDs := make([]string, 0, len(messages))
	var total domain.ReconcileSummary

	for _, msg := range messages {
		var event domain.PlacesIngestEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Dropping malformed message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		summary := w.reconciler.ReconcileBatch(ctx, event.Places)
		total.Created += summary.Created
		total.Updated += summary.Updated
		total.Skipped += summary.Skipped

		logger.Debug("Batch reconciled",
			zap.String("message_id", msg.ID),
			zap.String("batch_id", event.BatchID.String()),
			zap.Int("places", len(event.Places)))
		ackIDs = append(ackIDs, msg.ID)
	}

	// Неподтверждённые сообщения останутся в pending, их заберёт RecoverPending
	if err := w.streamRepo.AckMessages(ctx, domain.StreamPlacesIngest, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Ingest batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("created", total.Created),
		zap.Int("updated", total.Updated),
		zap.Int("skipped", total.Skipped))
}

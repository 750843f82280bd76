package usecase

import (
	"context"
	"time"

	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

// PlaceReconciler сохраняет нормализованные места: создаёт новые
// вместе с отзывами и фото, у существующих обновляет только скалярные поля
type PlaceReconciler struct {
	placeRepo repository.PlaceRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewPlaceReconciler(
	placeRepo repository.PlaceRepository,
	logger *zap.Logger,
	now func() time.Time,
) *PlaceReconciler {
	if now == nil {
		now = time.Now
	}
	return &PlaceReconciler{
		placeRepo: placeRepo,
		logger:    logger,
		now:       now,
	}
}

// Reconcile создаёт или обновляет одно место по внешнему идентификатору
func (r *PlaceReconciler) Reconcile(ctx context.Context, place *domain.Place) (domain.ReconcileOutcome, int64, error) {
	if place == nil || !place.HasIdentifier() {
		return domain.OutcomeSkipped, 0, errors.ErrMissingIdentifier
	}

	now := r.now().UTC()

	id, err := r.placeRepo.FindIDByExternalID(ctx, place.ExternalPlaceID)
	switch {
	case err == nil:
		if err := r.placeRepo.Update(ctx, id, place, now); err != nil {
			return domain.OutcomeSkipped, 0, errors.ErrPersistence.WithCause(err)
		}
		return domain.OutcomeUpdated, id, nil

	case !errors.Is(err, errors.ErrPlaceNotFound):
		return domain.OutcomeSkipped, 0, errors.ErrPersistence.WithCause(err)
	}

	id, err = r.placeRepo.Create(ctx, place, now)
	if err == nil {
		return domain.OutcomeCreated, id, nil
	}
	if !errors.Is(err, errors.ErrDuplicate) {
		return domain.OutcomeSkipped, 0, errors.ErrPersistence.WithCause(err)
	}

	// Параллельный запрос успел создать место: дочитываем ID и обновляем
	id, err = r.placeRepo.FindIDByExternalID(ctx, place.ExternalPlaceID)
	if err != nil {
		return domain.OutcomeSkipped, 0, errors.ErrPersistence.WithCause(err)
	}
	if err := r.placeRepo.Update(ctx, id, place, now); err != nil {
		return domain.OutcomeSkipped, 0, errors.ErrPersistence.WithCause(err)
	}
	return domain.OutcomeUpdated, id, nil
}

// ReconcileBatch сохраняет пачку мест. Ошибка одной записи логируется
// и не прерывает обработку остальных.
func (r *PlaceReconciler) ReconcileBatch(ctx context.Context, places []*domain.Place) domain.ReconcileSummary {
	var summary domain.ReconcileSummary

	for i, place := range places {
		outcome, id, err := r.Reconcile(ctx, place)
		switch outcome {
		case domain.OutcomeCreated:
			summary.Created++
			r.logger.Debug("Place created", zap.Int64("id", id), zap.String("external_id", place.ExternalPlaceID))
		case domain.OutcomeUpdated:
			summary.Updated++
			r.logger.Debug("Place updated", zap.Int64("id", id), zap.String("external_id", place.ExternalPlaceID))
		default:
			summary.Skipped++
			if errors.Is(err, errors.ErrMissingIdentifier) {
				r.logger.Warn("Skipping place without identifier", zap.Int("index", i))
				continue
			}
			r.logger.Error("Failed to save place",
				zap.Int("index", i),
				zap.String("external_id", place.ExternalPlaceID),
				zap.String("name", place.Name),
				zap.Error(err))
		}
	}

	r.logger.Info("Places batch saved",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped))

	return summary
}

// Persist сохраняет места в рамках запроса; результат на ответ не влияет
func (r *PlaceReconciler) Persist(ctx context.Context, places []*domain.Place) error {
	r.ReconcileBatch(ctx, places)
	return nil
}

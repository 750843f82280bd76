package usecase

import (
	"context"
	"time"

	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewUserUseCase(userRepo repository.UserRepository, logger *zap.Logger, now func() time.Time) *UserUseCase {
	if now == nil {
		now = time.Now
	}
	return &UserUseCase{
		userRepo: userRepo,
		logger:   logger,
		now:      now,
	}
}

// SyncProfile создаёт пользователя при первом входе или обновляет email.
// Email из тела запроса важнее email из токена.
func (uc *UserUseCase) SyncProfile(ctx context.Context, identity *domain.Identity, email *string) (*domain.UserProfile, error) {
	if identity == nil || identity.SubjectID == "" {
		return nil, errors.ErrUnauthorized
	}
	if email == nil || *email == "" {
		email = identity.Email
	}

	now := uc.now().UTC()

	user, err := uc.userRepo.FindBySubjectID(ctx, identity.SubjectID)
	switch {
	case err == nil:
		user.Email = email
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			uc.logger.Error("Failed to update user", zap.String("subject_id", identity.SubjectID), zap.Error(err))
			return nil, errors.ErrPersistence.WithCause(err)
		}
		uc.logger.Info("User synced", zap.String("subject_id", identity.SubjectID), zap.Bool("created", false))
		return user.Profile(), nil

	case !errors.Is(err, errors.ErrUserNotFound):
		uc.logger.Error("Failed to find user", zap.String("subject_id", identity.SubjectID), zap.Error(err))
		return nil, errors.ErrPersistence.WithCause(err)
	}

	user = &domain.User{
		SubjectID: identity.SubjectID,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, errors.ErrDuplicate) {
			uc.logger.Error("Failed to create user", zap.String("subject_id", identity.SubjectID), zap.Error(err))
			return nil, errors.ErrPersistence.WithCause(err)
		}
		// Параллельная синхронизация успела создать запись
		existing, err := uc.userRepo.FindBySubjectID(ctx, identity.SubjectID)
		if err != nil {
			return nil, errors.ErrPersistence.WithCause(err)
		}
		existing.Email = email
		existing.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, existing); err != nil {
			return nil, errors.ErrPersistence.WithCause(err)
		}
		user = existing
	}

	uc.logger.Info("User synced", zap.String("subject_id", identity.SubjectID), zap.Bool("created", true))
	return user.Profile(), nil
}

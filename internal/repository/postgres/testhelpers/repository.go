package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewPlaceRepositoryForTest создаёт репозиторий мест поверх тестового соединения
func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	return postgres.NewPlaceRepository(postgres.NewDBForTest(db, logger))
}

// NewUserRepositoryForTest создаёт репозиторий пользователей поверх тестового соединения
func NewUserRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.UserRepository {
	return postgres.NewUserRepository(postgres.NewDBForTest(db, logger))
}

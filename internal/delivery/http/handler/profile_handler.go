package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/restaurant-locator/internal/delivery/http/middleware"
	"github.com/restaurant-locator/internal/pkg/errors"
	"github.com/restaurant-locator/internal/pkg/utils"
	"github.com/restaurant-locator/internal/pkg/validator"
	"github.com/restaurant-locator/internal/usecase"
	"github.com/restaurant-locator/internal/usecase/dto"
	"go.uber.org/zap"
)

const userSyncedMessage = "User synced"

// ProfileHandler синхронизирует профиль пользователя с базой
type ProfileHandler struct {
	userUC *usecase.UserUseCase
	logger *zap.Logger
}

func NewProfileHandler(userUC *usecase.UserUseCase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		userUC: userUC,
		logger: logger,
	}
}

// SyncProfile godoc
// @Summary Sync user profile
// @Description Создаёт или обновляет пользователя по subject из токена. Email из тела имеет приоритет над email из токена.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SyncProfileRequest false "Профиль"
// @Success 200 {object} dto.SyncProfileResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/sync-profile [post]
func (h *ProfileHandler) SyncProfile(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	var req dto.SyncProfileRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			h.logger.Debug("Invalid sync profile body", zap.Error(err))
			return utils.SendError(c, errors.ErrInvalidRequest.WithCause(err))
		}
		if err := validator.Validate(&req); err != nil {
			return utils.SendError(c, err)
		}
	}

	profile, err := h.userUC.SyncProfile(c.UserContext(), identity, req.Email)
	if err != nil {
		h.logger.Error("Failed to sync profile",
			zap.String("subject_id", identity.SubjectID),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, dto.SyncProfileResponse{
		Message: userSyncedMessage,
		User:    profile,
	})
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/restaurant-locator/internal/pkg/utils"
	"github.com/restaurant-locator/internal/usecase"
	"github.com/restaurant-locator/internal/usecase/dto"
	"go.uber.org/zap"
)

// LocationHandler обрабатывает поиск ресторанов рядом с точкой
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

// NewLocationHandler создает новый экземпляр LocationHandler
func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// GetLocationInfo godoc
// @Summary Nearby restaurants
// @Description Ищет рестораны в радиусе 1 км от точки и сохраняет их в базе
// @Tags Location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Широта" minimum(-90) maximum(90)
// @Param lng query number true "Долгота" minimum(-180) maximum(180)
// @Success 200 {object} dto.LocationLookupResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/location-info [get]
func (h *LocationHandler) GetLocationInfo(c *fiber.Ctx) error {
	req := dto.LocationLookupRequest{
		Lat: utils.ParseCoordinate(c.Query("lat")),
		Lng: utils.ParseCoordinate(c.Query("lng")),
	}

	h.logger.Debug("Handling location info request",
		zap.Float64("lat", req.Lat),
		zap.Float64("lng", req.Lng))

	resp, err := h.locationUC.LookupNearby(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendJSON(c, fiber.StatusOK, resp)
}

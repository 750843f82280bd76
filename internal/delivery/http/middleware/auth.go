package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/restaurant-locator/internal/domain"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"github.com/restaurant-locator/internal/pkg/utils"
	"go.uber.org/zap"
)

const (
	bearerPrefix = "Bearer "
	identityKey  = "identity"
)

// Auth проверяет bearer токен и кладёт Identity в c.Locals.
// Без заголовка - 401 "Missing token", с невалидным токеном - 401 "Invalid token".
func Auth(verifier repository.IdentityVerifier, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return utils.SendError(c, errors.ErrMissingToken)
		}

		token := strings.TrimSpace(header[len(bearerPrefix):])
		if token == "" {
			return utils.SendError(c, errors.ErrMissingToken)
		}

		identity, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			logger.Warn("Token verification failed",
				zap.String("path", c.Path()),
				zap.Error(err))
			if appErr, ok := errors.As(err); ok && appErr.StatusCode == fiber.StatusUnauthorized {
				return utils.SendError(c, appErr)
			}
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFrom возвращает Identity, сохранённую Auth
func IdentityFrom(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

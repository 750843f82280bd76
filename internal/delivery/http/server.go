package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/restaurant-locator/internal/config"
	"github.com/restaurant-locator/internal/delivery/http/handler"
	"github.com/restaurant-locator/internal/delivery/http/middleware"
	"github.com/restaurant-locator/internal/domain/repository"
	"github.com/restaurant-locator/internal/pkg/errors"
	"github.com/restaurant-locator/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	verifier repository.IdentityVerifier

	locationHandler *handler.LocationHandler
	profileHandler  *handler.ProfileHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	verifier repository.IdentityVerifier,
	locationHandler *handler.LocationHandler,
	profileHandler *handler.ProfileHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Restaurant Locator",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		verifier:        verifier,
		locationHandler: locationHandler,
		profileHandler:  profileHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/api/v1/health", handler.Health)

	auth := middleware.Auth(s.verifier, s.logger)
	api := s.app.Group("/api")

	if s.config.Auth.RequireLocationAuth {
		api.Get("/location-info", auth, s.locationHandler.GetLocationInfo)
	} else {
		s.logger.Warn("Location lookup is served without authentication")
		api.Get("/location-info", s.locationHandler.GetLocationInfo)
	}

	api.Post("/sync-profile", auth, s.profileHandler.SyncProfile)
}

// App отдаёт fiber.App, используется в тестах через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler отвечает в формате {error, code}
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := errors.As(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		message := errors.ErrInternalServer.Message
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err))
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: message,
		})
	}
}

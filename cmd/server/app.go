package main

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/config"
	"github.com/postboard/postboard/internal/middleware"
)

// newApp creates the fiber app with global middleware and routes
func newApp(cfg *config.Config, deps *Dependencies, sentryEnabled bool) *fiber.App {
	logger := deps.Logger

	app := fiber.New(fiber.Config{
		AppName:               "Postboard API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          errorHandler(logger),
	})

	recoverConfig := middleware.DefaultRecoverConfig(logger)
	recoverConfig.SentryEnabled = sentryEnabled
	app.Use(middleware.NewRecoverMiddleware(recoverConfig).Handler())

	app.Use(middleware.RequestID())

	loggerMiddleware := middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(logger))
	app.Use(loggerMiddleware.Handler())

	corsMiddleware := middleware.NewCORSMiddleware(
		middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins, cfg.CORS.AllowCredentials),
	)
	app.Use(corsMiddleware.Handler())

	metricsMiddleware := middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig())
	app.Use(metricsMiddleware.Handler())

	registerRoutes(app, deps)

	return app
}

// errorHandler answers errors that escape the handlers, such as unknown routes
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An unexpected error occurred"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request error",
				zap.Int("status", code),
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			middleware.CaptureError(c, err)
		}

		return c.Status(code).JSON(fiber.Map{
			"error":   statusName(code),
			"message": message,
		})
	}
}

func statusName(code int) string {
	if text := utils.StatusMessage(code); text != "" {
		return text
	}
	return "Error"
}

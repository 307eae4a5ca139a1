package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "weather-backcast/docs"
	"weather-backcast/internal/services/backcast"
	"weather-backcast/internal/services/preferences"
	"weather-backcast/pkg/logger"
	"weather-backcast/pkg/observe"
)

type routes struct {
	backcast    *backcast.Service
	preferences *preferences.PreferencesService
	l           *logger.Logger
}

func NewRouter(
	app *fiber.App,
	backcastService *backcast.Service,
	preferencesService *preferences.PreferencesService,
	metrics *observe.Metrics,
	l *logger.Logger,
) {
	r := &routes{
		backcast:    backcastService,
		preferences: preferencesService,
		l:           l,
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	}

	// API routes
	app.Get("/backcast", r.handleBackcastCall)

	users := app.Group("/users/:user")
	users.Put("/location", r.handlePutLocation)
	users.Get("/backcast", r.handleGetUserBackcast)
	users.Get("/preferences", r.handleGetPreferences)
	users.Put("/preferences", r.handlePutPreferences)
	users.Post("/favorites/:city", r.handleToggleFavorite)
	users.Post("/units/:kind/toggle", r.handleToggleUnits)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maizeyield/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(
	app *fiber.App,
	predictionSvc *service.PredictionService,
	catalogs *service.CatalogService,
	api service.PredictionAPI,
	repo service.PredictionLogRepository,
) {
	handler := NewHandler(predictionSvc, catalogs, api, repo)

	// Root and health check
	app.Get("/", handler.Root)
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	v1 := app.Group("/api/v1")
	{
		// Catalog endpoints
		v1.Get("/states", handler.GetStates)
		v1.Get("/grades", handler.GetGrades)
		v1.Post("/catalog/refresh", handler.RefreshCatalog)

		// Prediction endpoints (proxy to Python yield model)
		v1.Post("/predict", handler.Predict)
		v1.Post("/predict/batch", handler.PredictBatch)

		// History endpoint
		v1.Get("/predictions", handler.GetPredictionHistory)
	}
}

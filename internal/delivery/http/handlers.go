package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maizeyield/backend/internal/domain"
	"github.com/maizeyield/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	predictionSvc *service.PredictionService
	catalogs      *service.CatalogService
	api           service.PredictionAPI
	repo          service.PredictionLogRepository
}

// NewHandler creates a new handler
func NewHandler(
	predictionSvc *service.PredictionService,
	catalogs *service.CatalogService,
	api service.PredictionAPI,
	repo service.PredictionLogRepository,
) *Handler {
	return &Handler{
		predictionSvc: predictionSvc,
		catalogs:      catalogs,
		api:           api,
		repo:          repo,
	}
}

// Root returns API information
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":             "Maize Yield Prediction Gateway",
		"health_check":        "/health",
		"prediction_endpoint": "/api/v1/predict (POST)",
	})
}

// HealthCheck returns gateway and dependency health. When the prediction
// service is reachable its model-loaded flag and catalog sizes are passed
// through.
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx := c.Context()

	predictionAPI := "up"
	upstream, err := h.api.Health(ctx)
	if err != nil {
		predictionAPI = "down"
	}
	database := "up"
	if err := h.repo.Health(ctx); err != nil {
		database = "down"
	}

	payload := fiber.Map{
		"status":         "ok",
		"service":        "maizeyield-backend",
		"version":        "1.0.0",
		"prediction_api": predictionAPI,
		"database":       database,
	}
	if predictionAPI == "up" {
		payload["model_loaded"] = upstream.ModelLoaded
		payload["available_states"] = upstream.AvailableStates
		payload["available_grades"] = upstream.AvailableGrades
	}

	return c.JSON(payload)
}

// GetStates returns the valid state names from the current catalog snapshot
func (h *Handler) GetStates(c *fiber.Ctx) error {
	catalog, err := h.catalogs.Ensure(c.Context())
	if err != nil {
		return httpError(err)
	}

	states := catalog.States()
	return c.JSON(fiber.Map{
		"count":  len(states),
		"states": states,
	})
}

// GetGrades returns the valid quality grades from the current catalog snapshot
func (h *Handler) GetGrades(c *fiber.Ctx) error {
	catalog, err := h.catalogs.Ensure(c.Context())
	if err != nil {
		return httpError(err)
	}

	grades := catalog.Grades()
	return c.JSON(fiber.Map{
		"count":  len(grades),
		"grades": grades,
	})
}

// RefreshCatalog re-fetches both lists and publishes a new snapshot
func (h *Handler) RefreshCatalog(c *fiber.Ctx) error {
	catalog, err := h.catalogs.Refresh(c.Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"states":     len(catalog.States()),
		"grades":     len(catalog.Grades()),
		"fetched_at": catalog.FetchedAt(),
	})
}

// Predict validates the request and proxies it to the prediction service
func (h *Handler) Predict(c *fiber.Ctx) error {
	var req domain.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	prediction, err := h.predictionSvc.Predict(c.Context(), req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    prediction,
	})
}

// PredictBatch validates and proxies multiple prediction requests at once
func (h *Handler) PredictBatch(c *fiber.Ctx) error {
	var reqs []domain.PredictionRequest
	if err := c.BodyParser(&reqs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(reqs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Batch must contain at least one request")
	}

	batch, err := h.predictionSvc.PredictBatch(c.Context(), reqs)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    batch,
	})
}

// GetPredictionHistory returns served predictions within a time range
func (h *Handler) GetPredictionHistory(c *fiber.Ctx) error {
	ctx := c.Context()

	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}

	to := time.Now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	data, err := h.predictionSvc.History(ctx, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch prediction history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// httpError maps domain errors to HTTP statuses
func httpError(err error) *fiber.Error {
	var fieldErr *domain.FieldError
	var rejected *domain.ValidationRejectedError
	var malformed *domain.MalformedResponseError

	switch {
	case errors.As(err, &fieldErr):
		return fiber.NewError(fiber.StatusBadRequest, fieldErr.Error())
	case errors.As(err, &rejected):
		return fiber.NewError(fiber.StatusUnprocessableEntity, rejected.Message)
	case errors.As(err, &malformed):
		return fiber.NewError(fiber.StatusBadGateway, "Prediction service returned an unexpected response")
	case errors.Is(err, domain.ErrServiceUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Prediction service is unavailable")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
}

package service

import (
	"context"

	"github.com/maizeyield/backend/internal/domain"
)

// PredictionLogRepository is re-exported from domain for convenience
type PredictionLogRepository = domain.PredictionLogRepository

// PredictionAPI is the client contract against the remote yield model.
// YieldBridge is the production implementation; tests substitute stubs.
type PredictionAPI interface {
	// FetchStates returns the valid state names in service order
	FetchStates(ctx context.Context) ([]string, error)

	// FetchGrades returns the valid quality grades in service order
	FetchGrades(ctx context.Context) ([]string, error)

	// Predict requests a yield estimate for one validated input
	Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResponse, error)

	// PredictBatch requests yield estimates for multiple validated inputs
	PredictBatch(ctx context.Context, reqs []domain.PredictionRequest) (domain.BatchPredictionResponse, error)

	// Health reports prediction service health and catalog sizes
	Health(ctx context.Context) (domain.ServiceHealth, error)
}

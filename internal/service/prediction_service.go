package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/maizeyield/backend/internal/domain"
)

// PredictionService validates requests against the catalog snapshot,
// forwards them to the prediction API and logs served predictions.
type PredictionService struct {
	api      PredictionAPI
	catalogs *CatalogService
	repo     PredictionLogRepository

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewPredictionService creates a new prediction service
func NewPredictionService(api PredictionAPI, catalogs *CatalogService, repo PredictionLogRepository) *PredictionService {
	return &PredictionService{
		api:      api,
		catalogs: catalogs,
		repo:     repo,
	}
}

// WaitBackground blocks until all background log goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *PredictionService) WaitBackground() {
	s.wgBg.Wait()
}

// Predict validates req locally and, only if it is well-formed, forwards
// it to the prediction API. The served prediction is logged asynchronously.
func (s *PredictionService) Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResponse, error) {
	catalog, err := s.catalogs.Ensure(ctx)
	if err != nil {
		return domain.PredictionResponse{}, err
	}

	normalized, err := domain.ValidateRequest(req, catalog)
	if err != nil {
		return domain.PredictionResponse{}, err
	}

	prediction, err := s.api.Predict(ctx, normalized)
	if err != nil {
		return domain.PredictionResponse{}, err
	}

	s.logPrediction(normalized, prediction)

	return prediction, nil
}

// PredictBatch validates every request locally, then forwards the whole
// batch. One malformed entry fails the batch before any network call.
func (s *PredictionService) PredictBatch(ctx context.Context, reqs []domain.PredictionRequest) (domain.BatchPredictionResponse, error) {
	catalog, err := s.catalogs.Ensure(ctx)
	if err != nil {
		return domain.BatchPredictionResponse{}, err
	}

	normalized := make([]domain.PredictionRequest, 0, len(reqs))
	for _, req := range reqs {
		n, err := domain.ValidateRequest(req, catalog)
		if err != nil {
			return domain.BatchPredictionResponse{}, err
		}
		normalized = append(normalized, n)
	}

	batch, err := s.api.PredictBatch(ctx, normalized)
	if err != nil {
		return domain.BatchPredictionResponse{}, err
	}

	for _, prediction := range batch.Predictions {
		s.logPrediction(prediction.InputParameters, prediction)
	}

	return batch, nil
}

// History returns served predictions from the log within a time range
func (s *PredictionService) History(ctx context.Context, from, to time.Time) ([]domain.PredictionRecord, error) {
	return s.repo.RecentPredictions(ctx, from, to)
}

// logPrediction persists the served prediction in a tracked goroutine so
// the caller is never blocked on the database.
func (s *PredictionService) logPrediction(req domain.PredictionRequest, resp domain.PredictionResponse) {
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SavePrediction(bgCtx, domain.NewPredictionRecord(req, resp)); err != nil {
			log.Printf("Failed to save prediction log: %v", err)
		}
	}()
}

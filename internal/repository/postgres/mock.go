package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maizeyield/backend/internal/domain"
)

// MockRepository implements domain.PredictionLogRepository for demo mode
// when no database is configured
type MockRepository struct{}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SavePrediction is a no-op in mock mode
func (r *MockRepository) SavePrediction(ctx context.Context, rec domain.PredictionRecord) error {
	return nil
}

// RecentPredictions returns a mock history entry
func (r *MockRepository) RecentPredictions(ctx context.Context, from, to time.Time) ([]domain.PredictionRecord, error) {
	return []domain.PredictionRecord{
		{
			ID:             uuid.New(),
			State:          "Kano",
			Season:         "wet",
			Year:           2023,
			AreaHa:         5.0,
			QualityGrade:   "Grade A",
			PredictedYield: 2.85,
			ModelUsed:      "Random Forest",
			CreatedAt:      time.Now().Add(-24 * time.Hour),
		},
	}, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

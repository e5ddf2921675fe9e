package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PredictionRecord is a persisted log entry for one served prediction
type PredictionRecord struct {
	ID             uuid.UUID `json:"id"`
	State          string    `json:"state"`
	Season         string    `json:"season"`
	Year           int       `json:"year"`
	AreaHa         float64   `json:"area_ha"`
	QualityGrade   string    `json:"quality_grade"`
	PredictedYield float64   `json:"predicted_yield"`
	ModelUsed      string    `json:"model_used"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewPredictionRecord builds a log entry from a served request/response pair
func NewPredictionRecord(req PredictionRequest, resp PredictionResponse) PredictionRecord {
	return PredictionRecord{
		ID:             uuid.New(),
		State:          req.State,
		Season:         req.Season,
		Year:           req.Year,
		AreaHa:         req.AreaHa,
		QualityGrade:   req.QualityGrade,
		PredictedYield: resp.PredictedYield,
		ModelUsed:      resp.ModelUsed,
		CreatedAt:      time.Now(),
	}
}

// PredictionLogRepository defines the interface for prediction log persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type PredictionLogRepository interface {
	// SavePrediction persists one served prediction
	SavePrediction(ctx context.Context, rec PredictionRecord) error

	// RecentPredictions retrieves served predictions within a time range
	RecentPredictions(ctx context.Context, from, to time.Time) ([]PredictionRecord, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}

package domain

// Season values accepted by the yield model.
const (
	SeasonWet = "wet"
	SeasonDry = "dry"
)

// Cultivation year and farm area bounds enforced before any network call.
// The prediction API validates the same ranges server-side and remains
// authoritative; these checks only save a round trip.
const (
	YearMin = 2000
	YearMax = 2030

	AreaMaxHa = 1000.0
)

// PredictionRequest represents input for a yield prediction
type PredictionRequest struct {
	State        string  `json:"state"`
	Season       string  `json:"season"`
	Year         int     `json:"year"`
	AreaHa       float64 `json:"area_ha"`
	QualityGrade string  `json:"quality_grade"`
}

// PredictionResponse represents the yield model output
type PredictionResponse struct {
	PredictedYield  float64           `json:"predicted_yield"`
	InputParameters PredictionRequest `json:"input_parameters"`
	ModelUsed       string            `json:"model_used"`
	Unit            string            `json:"unit"`
}

// BatchPredictionResponse wraps predictions for multiple inputs
type BatchPredictionResponse struct {
	Count       int                  `json:"count"`
	Predictions []PredictionResponse `json:"predictions"`
}

// ServiceHealth mirrors the prediction service's /health payload
type ServiceHealth struct {
	Status          string `json:"status"`
	ModelLoaded     bool   `json:"model_loaded"`
	AvailableStates int    `json:"available_states"`
	AvailableGrades int    `json:"available_grades"`
}

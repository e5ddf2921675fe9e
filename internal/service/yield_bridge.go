package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/maizeyield/backend/internal/domain"
)

// Recommended call budgets against the Python prediction service.
const (
	predictTimeout  = 30 * time.Second
	metadataTimeout = 10 * time.Second
)

// YieldBridge handles communication with the Python yield prediction service
type YieldBridge struct {
	serviceURL string
	httpClient *http.Client
}

// NewYieldBridge creates a new yield bridge
func NewYieldBridge(serviceURL string) *YieldBridge {
	return &YieldBridge{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: predictTimeout,
		},
	}
}

// FetchStates returns the state names known to the model, in service order.
// The advertised count is ignored; the list itself is the contract.
func (b *YieldBridge) FetchStates(ctx context.Context) ([]string, error) {
	return b.fetchList(ctx, "/states", "states")
}

// FetchGrades returns the quality grades known to the model, in service order
func (b *YieldBridge) FetchGrades(ctx context.Context) ([]string, error) {
	return b.fetchList(ctx, "/grades", "grades")
}

func (b *YieldBridge) fetchList(ctx context.Context, path, field string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	url := fmt.Sprintf("%s%s", b.serviceURL, path)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("yield_bridge: failed to create request: %w", err)
	}

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("yield_bridge: GET %s: %w: %v", path, domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yield_bridge: GET %s: %w: status %d", path, domain.ErrServiceUnavailable, resp.StatusCode)
	}

	var payload struct {
		Count  int      `json:"count"`
		States []string `json:"states"`
		Grades []string `json:"grades"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &domain.MalformedResponseError{Reason: fmt.Sprintf("GET %s: %v", path, err)}
	}

	list := payload.States
	if field == "grades" {
		list = payload.Grades
	}
	if len(list) == 0 {
		return nil, &domain.MalformedResponseError{Reason: fmt.Sprintf("GET %s: missing %q field", path, field)}
	}

	return list, nil
}

// Predict calls the prediction service for a single yield estimate.
// The request must already have passed local validation.
func (b *YieldBridge) Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("yield_bridge: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/predict", b.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("yield_bridge: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("yield_bridge: POST /predict: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnprocessableEntity:
		return domain.PredictionResponse{}, &domain.ValidationRejectedError{Message: decodeRejection(resp)}
	default:
		return domain.PredictionResponse{}, fmt.Errorf("yield_bridge: POST /predict: %w: status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	var prediction struct {
		PredictedYield  *float64                 `json:"predicted_yield"`
		InputParameters domain.PredictionRequest `json:"input_parameters"`
		ModelUsed       string                   `json:"model_used"`
		Unit            string                   `json:"unit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return domain.PredictionResponse{}, &domain.MalformedResponseError{Reason: fmt.Sprintf("POST /predict: %v", err)}
	}
	if prediction.PredictedYield == nil {
		return domain.PredictionResponse{}, &domain.MalformedResponseError{Reason: "POST /predict: missing \"predicted_yield\" field"}
	}
	if *prediction.PredictedYield < 0 {
		return domain.PredictionResponse{}, &domain.MalformedResponseError{Reason: fmt.Sprintf("POST /predict: negative predicted yield %v", *prediction.PredictedYield)}
	}

	return domain.PredictionResponse{
		PredictedYield:  *prediction.PredictedYield,
		InputParameters: prediction.InputParameters,
		ModelUsed:       prediction.ModelUsed,
		Unit:            prediction.Unit,
	}, nil
}

// PredictBatch calls the prediction service for multiple yield estimates
func (b *YieldBridge) PredictBatch(ctx context.Context, reqs []domain.PredictionRequest) (domain.BatchPredictionResponse, error) {
	body, err := json.Marshal(reqs)
	if err != nil {
		return domain.BatchPredictionResponse{}, fmt.Errorf("yield_bridge: failed to marshal batch request: %w", err)
	}

	url := fmt.Sprintf("%s/predict/batch", b.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.BatchPredictionResponse{}, fmt.Errorf("yield_bridge: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return domain.BatchPredictionResponse{}, fmt.Errorf("yield_bridge: POST /predict/batch: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnprocessableEntity:
		return domain.BatchPredictionResponse{}, &domain.ValidationRejectedError{Message: decodeRejection(resp)}
	default:
		return domain.BatchPredictionResponse{}, fmt.Errorf("yield_bridge: POST /predict/batch: %w: status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	var batch domain.BatchPredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return domain.BatchPredictionResponse{}, &domain.MalformedResponseError{Reason: fmt.Sprintf("POST /predict/batch: %v", err)}
	}
	if batch.Predictions == nil {
		return domain.BatchPredictionResponse{}, &domain.MalformedResponseError{Reason: "POST /predict/batch: missing \"predictions\" field"}
	}

	return batch, nil
}

// Health reports prediction service health including the model-loaded
// flag and the catalog sizes the service advertises
func (b *YieldBridge) Health(ctx context.Context) (domain.ServiceHealth, error) {
	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/health", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ServiceHealth{}, fmt.Errorf("yield_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return domain.ServiceHealth{}, fmt.Errorf("yield_bridge: health check: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ServiceHealth{}, fmt.Errorf("yield_bridge: health check: %w: status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	var health domain.ServiceHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return domain.ServiceHealth{}, &domain.MalformedResponseError{Reason: fmt.Sprintf("GET /health: %v", err)}
	}

	return health, nil
}

// decodeRejection extracts the first validation message from a 422 body
// of the form {"detail":[{"msg":...},...]}.
func decodeRejection(resp *http.Response) string {
	var payload struct {
		Detail []struct {
			Msg string `json:"msg"`
		} `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload.Detail) == 0 || payload.Detail[0].Msg == "" {
		return "input rejected by prediction service"
	}
	return payload.Detail[0].Msg
}

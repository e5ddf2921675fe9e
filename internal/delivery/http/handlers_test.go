package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	delivery "github.com/maizeyield/backend/internal/delivery/http"
	"github.com/maizeyield/backend/internal/domain"
	"github.com/maizeyield/backend/internal/repository/postgres"
	"github.com/maizeyield/backend/internal/service"
)

// stubAPI implements service.PredictionAPI with canned answers.
type stubAPI struct {
	states   []string
	grades   []string
	fetchErr error
	predErr  error
}

func (s *stubAPI) FetchStates(ctx context.Context) ([]string, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.states, nil
}

func (s *stubAPI) FetchGrades(ctx context.Context) ([]string, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.grades, nil
}

func (s *stubAPI) Predict(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResponse, error) {
	if s.predErr != nil {
		return domain.PredictionResponse{}, s.predErr
	}
	return domain.PredictionResponse{
		PredictedYield:  2.28,
		InputParameters: req,
		ModelUsed:       "Random Forest",
		Unit:            "tonnes/hectare",
	}, nil
}

func (s *stubAPI) PredictBatch(ctx context.Context, reqs []domain.PredictionRequest) (domain.BatchPredictionResponse, error) {
	if s.predErr != nil {
		return domain.BatchPredictionResponse{}, s.predErr
	}
	out := domain.BatchPredictionResponse{Count: len(reqs)}
	for _, req := range reqs {
		resp, _ := s.Predict(ctx, req)
		out.Predictions = append(out.Predictions, resp)
	}
	return out, nil
}

func (s *stubAPI) Health(ctx context.Context) (domain.ServiceHealth, error) {
	if s.fetchErr != nil {
		return domain.ServiceHealth{}, s.fetchErr
	}
	return domain.ServiceHealth{
		Status:          "healthy",
		ModelLoaded:     true,
		AvailableStates: len(s.states),
		AvailableGrades: len(s.grades),
	}, nil
}

func newTestApp(api service.PredictionAPI) (*fiber.App, *service.PredictionService) {
	repo := postgres.NewMockRepository()
	catalogs := service.NewCatalogService(api)
	predictionSvc := service.NewPredictionService(api, catalogs, repo)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": message})
		},
	})
	delivery.SetupRoutes(app, predictionSvc, catalogs, api, repo)
	return app, predictionSvc
}

func healthyStub() *stubAPI {
	return &stubAPI{
		states: []string{"Abia", "Kano"},
		grades: []string{"Grade A", "Grade B"},
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func TestGetStates(t *testing.T) {
	app, _ := newTestApp(healthyStub())

	resp, payload := doJSON(t, app, nethttp.MethodGet, "/api/v1/states", nil)

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if payload["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", payload["count"])
	}
	states, _ := payload["states"].([]any)
	if len(states) != 2 || states[0] != "Abia" || states[1] != "Kano" {
		t.Fatalf("expected [Abia Kano], got %v", states)
	}
}

func TestGetGrades(t *testing.T) {
	app, _ := newTestApp(healthyStub())

	resp, payload := doJSON(t, app, nethttp.MethodGet, "/api/v1/grades", nil)

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	grades, _ := payload["grades"].([]any)
	if len(grades) != 2 {
		t.Fatalf("expected 2 grades, got %v", grades)
	}
}

func TestGetStatesUpstreamDown(t *testing.T) {
	app, _ := newTestApp(&stubAPI{fetchErr: domain.ErrServiceUnavailable})

	resp, _ := doJSON(t, app, nethttp.MethodGet, "/api/v1/states", nil)

	if resp.StatusCode != nethttp.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestPredictEndpoint(t *testing.T) {
	app, svc := newTestApp(healthyStub())

	resp, payload := doJSON(t, app, nethttp.MethodPost, "/api/v1/predict", domain.PredictionRequest{
		State:        "Abia",
		Season:       "wet",
		Year:         2020,
		AreaHa:       5.0,
		QualityGrade: "Grade A",
	})
	svc.WaitBackground()

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Fatalf("expected success envelope, got %v", payload)
	}
	data, _ := payload["data"].(map[string]any)
	if data["predicted_yield"] != 2.28 {
		t.Fatalf("expected predicted_yield 2.28, got %v", data["predicted_yield"])
	}
}

func TestPredictEndpointRejectsInvalidField(t *testing.T) {
	app, _ := newTestApp(healthyStub())

	resp, payload := doJSON(t, app, nethttp.MethodPost, "/api/v1/predict", domain.PredictionRequest{
		State:        "Abia",
		Season:       "wet",
		Year:         1999,
		AreaHa:       5.0,
		QualityGrade: "Grade A",
	})

	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if payload["error"] != true {
		t.Fatalf("expected error envelope, got %v", payload)
	}
}

func TestPredictEndpointUpstreamRejection(t *testing.T) {
	api := healthyStub()
	api.predErr = &domain.ValidationRejectedError{Message: "State not recognized"}
	app, _ := newTestApp(api)

	resp, payload := doJSON(t, app, nethttp.MethodPost, "/api/v1/predict", domain.PredictionRequest{
		State:        "Abia",
		Season:       "wet",
		Year:         2020,
		AreaHa:       5.0,
		QualityGrade: "Grade A",
	})

	if resp.StatusCode != nethttp.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if payload["message"] != "State not recognized" {
		t.Fatalf("expected server message, got %v", payload["message"])
	}
}

func TestPredictEndpointUpstreamDown(t *testing.T) {
	api := healthyStub()
	api.predErr = domain.ErrServiceUnavailable
	app, _ := newTestApp(api)

	resp, _ := doJSON(t, app, nethttp.MethodPost, "/api/v1/predict", domain.PredictionRequest{
		State:        "Abia",
		Season:       "wet",
		Year:         2020,
		AreaHa:       5.0,
		QualityGrade: "Grade A",
	})

	if resp.StatusCode != nethttp.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestPredictEndpointMalformedUpstream(t *testing.T) {
	api := healthyStub()
	api.predErr = &domain.MalformedResponseError{Reason: "missing predicted_yield"}
	app, _ := newTestApp(api)

	resp, _ := doJSON(t, app, nethttp.MethodPost, "/api/v1/predict", domain.PredictionRequest{
		State:        "Abia",
		Season:       "wet",
		Year:         2020,
		AreaHa:       5.0,
		QualityGrade: "Grade A",
	})

	if resp.StatusCode != nethttp.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestPredictBatchEndpoint(t *testing.T) {
	app, svc := newTestApp(healthyStub())

	resp, payload := doJSON(t, app, nethttp.MethodPost, "/api/v1/predict/batch", []domain.PredictionRequest{
		{State: "Abia", Season: "wet", Year: 2020, AreaHa: 5.0, QualityGrade: "Grade A"},
		{State: "Kano", Season: "dry", Year: 2021, AreaHa: 2.5, QualityGrade: "Grade B"},
	})
	svc.WaitBackground()

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data, _ := payload["data"].(map[string]any)
	if data["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", data["count"])
	}
}

func TestPredictBatchEndpointEmpty(t *testing.T) {
	app, _ := newTestApp(healthyStub())

	resp, _ := doJSON(t, app, nethttp.MethodPost, "/api/v1/predict/batch", []domain.PredictionRequest{})

	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRefreshCatalogEndpoint(t *testing.T) {
	app, _ := newTestApp(healthyStub())

	resp, payload := doJSON(t, app, nethttp.MethodPost, "/api/v1/catalog/refresh", nil)

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if payload["states"] != float64(2) || payload["grades"] != float64(2) {
		t.Fatalf("expected 2 states and 2 grades, got %v", payload)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(healthyStub())

	resp, payload := doJSON(t, app, nethttp.MethodGet, "/health", nil)

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if payload["status"] != "ok" || payload["prediction_api"] != "up" {
		t.Fatalf("unexpected health payload: %v", payload)
	}
	if payload["model_loaded"] != true {
		t.Fatalf("expected model_loaded true, got %v", payload["model_loaded"])
	}
	if payload["available_states"] != float64(2) || payload["available_grades"] != float64(2) {
		t.Fatalf("expected catalog sizes in health payload, got %v", payload)
	}
}

func TestHealthEndpointUpstreamDown(t *testing.T) {
	app, _ := newTestApp(&stubAPI{fetchErr: domain.ErrServiceUnavailable})

	resp, payload := doJSON(t, app, nethttp.MethodGet, "/health", nil)

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if payload["prediction_api"] != "down" {
		t.Fatalf("expected prediction_api down, got %v", payload["prediction_api"])
	}
	if _, present := payload["model_loaded"]; present {
		t.Fatalf("model_loaded must be omitted when upstream is down, got %v", payload)
	}
}

func TestPredictionHistoryEndpoint(t *testing.T) {
	app, _ := newTestApp(healthyStub())

	resp, payload := doJSON(t, app, nethttp.MethodGet, "/api/v1/predictions?hours=48", nil)

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if payload["success"] != true {
		t.Fatalf("expected success envelope, got %v", payload)
	}
}

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pantry/config"
	"pantry/internal/fluentd"
	"pantry/internal/fluentd/repository"
	"pantry/internal/handler"
	"pantry/internal/middleware"
	"pantry/internal/service"
	"pantry/internal/service/chat"
	"pantry/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// newTestRouter wires the whole middleware chain against a mock upstream.
func newTestRouter(t *testing.T, upstreamURL string, client *http.Client) *gin.Engine {
	t.Helper()

	conf := &config.Configuration{}
	conf.App.Env = "test"
	conf.App.Name = "pantry"
	conf.App.Version = "test"
	conf.OpenAI.APIKey = "test-key"
	conf.OpenAI.Model = "gpt-4o-mini"
	conf.OpenAI.BaseURL = upstreamURL

	logger := zap.NewNop()
	trace, err := telemetry.NewTrace(nil)
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}
	metric := telemetry.NewMetric(nil)
	logRepository := repository.NewLogRepository(conf, &fluentd.NoopClient{})

	chatService := chat.NewOpenAIService(conf, trace, client)
	ingredientService := service.NewIngredientService(logger, conf, trace, metric, chatService, logRepository)
	ingredientHandler := handler.NewIngredientHandler(trace, logger, ingredientService)
	healthService := service.NewHealthService()
	healthHandler := handler.NewHealthHandler(healthService)

	return NewRouter(
		conf,
		middleware.NewTraceEntry(trace, metric, conf),
		middleware.NewRecovery(logger, conf, logRepository),
		middleware.NewCors(trace),
		middleware.NewLogger(logger, trace, conf, logRepository),
		middleware.NewResponse(logger, trace, conf, logRepository),
		NewIngredientRouter(ingredientHandler),
		NewHealthRouter(healthHandler),
	)
}

func newUpstream(t *testing.T, classification string, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Expected upstream path '/v1/chat/completions', got '%s'", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"classification\": \"` + classification + `\"}"}, "finish_reason": "stop"}]}`))
	}))
}

func TestPostIngredients_EndToEnd(t *testing.T) {
	upstream := newUpstream(t, "regular", nil)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, upstream.Client())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ingredients", strings.NewReader(`{"ingredient": "cheese"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	// Body is the bare DTO, not a wrapped envelope
	want := `{"ingredient":"cheese","classification":"regular"}`
	if w.Body.String() != want {
		t.Errorf("Expected body %s, got %s", want, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Expected Content-Type application/json, got '%s'", ct)
	}
}

func TestPostIngredients_NoMemoization(t *testing.T) {
	hits := 0
	upstream := newUpstream(t, "vegan", &hits)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, upstream.Client())

	// Same ingredient twice must reach the upstream twice
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/ingredients", strings.NewReader(`{"ingredient": "tofu"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i, w.Code)
		}
	}
	if hits != 2 {
		t.Errorf("Expected 2 upstream calls, got %d", hits)
	}
}

func TestPostIngredients_MissingField(t *testing.T) {
	upstream := newUpstream(t, "vegan", nil)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, upstream.Client())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ingredients", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d (body: %s)", w.Code, w.Body.String())
	}
	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Decode error envelope failed: %v", err)
	}
	if code, _ := envelope["code"].(float64); int(code) != 40000 {
		t.Errorf("Expected error code 40000, got %v", envelope["code"])
	}
}

func TestPostIngredients_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, upstream.Client())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ingredients", strings.NewReader(`{"ingredient": "cheese"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Upstream failures surface as 502, never as a partial success body
	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d (body: %s)", w.Code, w.Body.String())
	}
	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Decode error envelope failed: %v", err)
	}
	if code, _ := envelope["code"].(float64); int(code) != 50200 {
		t.Errorf("Expected error code 50200, got %v", envelope["code"])
	}
	if _, hasIngredient := envelope["ingredient"]; hasIngredient {
		t.Error("Error body must not contain a partial classification result")
	}
}

func TestPostIngredients_UnparsableContent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "no json here"}, "finish_reason": "stop"}]}`))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, upstream.Client())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ingredients", strings.NewReader(`{"ingredient": "cheese"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d (body: %s)", w.Code, w.Body.String())
	}
	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Decode error envelope failed: %v", err)
	}
	if code, _ := envelope["code"].(float64); int(code) != 50202 {
		t.Errorf("Expected error code 50202, got %v", envelope["code"])
	}
}

func TestHealthCheck(t *testing.T) {
	upstream := newUpstream(t, "vegan", nil)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, upstream.Client())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health-check", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
}

func TestHealthRoutes(t *testing.T) {
	upstream := newUpstream(t, "vegan", nil)
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, upstream.Client())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health/liveness", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected liveness 200, got %d", w.Code)
	}

	// Readiness starts false until the upstream probe flips it
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/health/readiness", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected readiness 503 before probe, got %d", w.Code)
	}
}

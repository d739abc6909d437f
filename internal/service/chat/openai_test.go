package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pantry/config"
	cErr "pantry/internal/pkg/error"
	"pantry/internal/telemetry"
)

func newTestService(t *testing.T, baseURL string, client *http.Client) Service {
	t.Helper()
	trace, err := telemetry.NewTrace(nil)
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}
	conf := &config.Configuration{}
	conf.OpenAI.APIKey = "test-key"
	conf.OpenAI.Model = "gpt-4o-mini"
	conf.OpenAI.BaseURL = baseURL
	return NewOpenAIService(conf, trace, client)
}

func TestClassifyIngredientV1_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify method and path
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Expected path '/v1/chat/completions', got '%s'", r.URL.Path)
		}

		// Verify headers
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header 'Bearer test-key', got '%s'", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", r.Header.Get("Content-Type"))
		}

		// Verify payload shape
		var payload ChatPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("Decode request payload failed: %v", err)
		}
		if payload.Model != "gpt-4o-mini" {
			t.Errorf("Expected model 'gpt-4o-mini', got '%s'", payload.Model)
		}
		if len(payload.Messages) != 1 {
			t.Fatalf("Expected 1 message, got %d", len(payload.Messages))
		}
		if payload.Messages[0].Role != "user" {
			t.Errorf("Expected role 'user', got '%s'", payload.Messages[0].Role)
		}
		wantPrompt := "Classify the ingredient 'tofu' as vegan, vegetarian, or regular. Respond in JSON format."
		if payload.Messages[0].Content != wantPrompt {
			t.Errorf("Expected prompt %q, got %q", wantPrompt, payload.Messages[0].Content)
		}
		if payload.ResponseFormat == nil || payload.ResponseFormat.Type != "json_object" {
			t.Errorf("Expected response_format type 'json_object', got %+v", payload.ResponseFormat)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-123",
			"object": "chat.completion",
			"created": 1234567890,
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "{\"classification\": \"vegan\"}"},
				"finish_reason": "stop"
			}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 6, "total_tokens": 26}
		}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, server.Client())

	content, err := svc.ClassifyIngredientV1(context.Background(), "tofu")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if content != `{"classification": "vegan"}` {
		t.Errorf("Expected raw content '{\"classification\": \"vegan\"}', got '%s'", content)
	}
}

func TestClassifyIngredientV1_PromptKeepsQuoteChar(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload ChatPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("Decode request payload failed: %v", err)
		}
		if len(payload.Messages) > 0 {
			gotPrompt = payload.Messages[0].Content
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"classification\": \"vegan\"}"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, server.Client())

	// Ingredient names go into the template verbatim, apostrophe included
	if _, err := svc.ClassifyIngredientV1(context.Background(), "confit d'oignon"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	want := "Classify the ingredient 'confit d'oignon' as vegan, vegetarian, or regular. Respond in JSON format."
	if gotPrompt != want {
		t.Errorf("Expected prompt %q, got %q", want, gotPrompt)
	}
}

func TestClassifyIngredientV1_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Expected path '/v1/chat/completions', got '%s'", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"classification\": \"regular\"}"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL+"/", server.Client())

	if _, err := svc.ClassifyIngredientV1(context.Background(), "beef"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestClassifyIngredientV1_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id": "chatcmpl-123", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, server.Client())

	_, err := svc.ClassifyIngredientV1(context.Background(), "tofu")
	if err == nil {
		t.Fatal("Expected error for empty choices, got nil")
	}
	appErr, ok := err.(*cErr.Error)
	if !ok {
		t.Fatalf("Expected *cErr.Error, got %T: %v", err, err)
	}
	if appErr.ErrorCode() != cErr.EXTERNAL_RESPONSE_FORMAT_ERROR {
		t.Errorf("Expected error code %d, got %d", cErr.EXTERNAL_RESPONSE_FORMAT_ERROR, appErr.ErrorCode())
	}
	if appErr.HttpCode() != http.StatusBadGateway {
		t.Errorf("Expected http code 502, got %d", appErr.HttpCode())
	}
}

func TestClassifyIngredientV1_UpstreamNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "upstream exploded"}}`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, server.Client())

	_, err := svc.ClassifyIngredientV1(context.Background(), "tofu")
	if err == nil {
		t.Fatal("Expected error for upstream 500, got nil")
	}
	appErr, ok := err.(*cErr.Error)
	if !ok {
		t.Fatalf("Expected *cErr.Error, got %T: %v", err, err)
	}
	if appErr.ErrorCode() != cErr.EXTERNAL_REQUEST_ERROR {
		t.Errorf("Expected error code %d, got %d", cErr.EXTERNAL_REQUEST_ERROR, appErr.ErrorCode())
	}
	if appErr.HttpCode() != http.StatusBadGateway {
		t.Errorf("Expected http code 502, got %d", appErr.HttpCode())
	}
}

func TestClassifyIngredientV1_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`this is not json`))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, server.Client())

	_, err := svc.ClassifyIngredientV1(context.Background(), "tofu")
	if err == nil {
		t.Fatal("Expected error for malformed body, got nil")
	}
	appErr, ok := err.(*cErr.Error)
	if !ok {
		t.Fatalf("Expected *cErr.Error, got %T: %v", err, err)
	}
	if appErr.ErrorCode() != cErr.EXTERNAL_RESPONSE_FORMAT_ERROR {
		t.Errorf("Expected error code %d, got %d", cErr.EXTERNAL_RESPONSE_FORMAT_ERROR, appErr.ErrorCode())
	}
}

func TestClassifyIngredientV1_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "{}"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	client := &http.Client{Timeout: 50 * time.Millisecond}
	svc := newTestService(t, server.URL, client)

	_, err := svc.ClassifyIngredientV1(context.Background(), "tofu")
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
	appErr, ok := err.(*cErr.Error)
	if !ok {
		t.Fatalf("Expected *cErr.Error, got %T: %v", err, err)
	}
	if appErr.ErrorCode() != cErr.GATEWAY_TIMEOUT {
		t.Errorf("Expected error code %d, got %d", cErr.GATEWAY_TIMEOUT, appErr.ErrorCode())
	}
	if appErr.HttpCode() != http.StatusGatewayTimeout {
		t.Errorf("Expected http code 504, got %d", appErr.HttpCode())
	}
}

package service

import (
	"context"
	"net/http"
	"testing"

	"pantry/config"
	"pantry/internal/fluentd"
	"pantry/internal/fluentd/repository"
	cErr "pantry/internal/pkg/error"
	"pantry/internal/telemetry"

	"go.uber.org/zap"
)

type stubChatService struct {
	content string
	err     error
	calls   int
}

func (s *stubChatService) ClassifyIngredientV1(ctx context.Context, ingredient string) (string, error) {
	s.calls++
	return s.content, s.err
}

func newTestIngredientService(t *testing.T, stub *stubChatService) *IngredientService {
	t.Helper()
	trace, err := telemetry.NewTrace(nil)
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}
	conf := &config.Configuration{}
	conf.App.Name = "pantry"
	conf.OpenAI.Model = "gpt-4o-mini"
	logRepository := repository.NewLogRepository(conf, &fluentd.NoopClient{})
	return NewIngredientService(zap.NewNop(), conf, trace, telemetry.NewMetric(nil), stub, logRepository)
}

func TestCategorize_PlainJSONContent(t *testing.T) {
	stub := &stubChatService{content: `{"classification": "vegan"}`}
	svc := newTestIngredientService(t, stub)

	got, err := svc.Categorize(context.Background(), "tofu")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(got) != "vegan" {
		t.Errorf("Expected classification 'vegan', got '%s'", got)
	}
	if stub.calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", stub.calls)
	}
}

func TestCategorize_FencedContent(t *testing.T) {
	stub := &stubChatService{content: "```json\n{\"classification\": \"vegetarian\"}\n```"}
	svc := newTestIngredientService(t, stub)

	got, err := svc.Categorize(context.Background(), "cheese")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(got) != "vegetarian" {
		t.Errorf("Expected classification 'vegetarian', got '%s'", got)
	}
}

func TestCategorize_ProseWrappedContent(t *testing.T) {
	stub := &stubChatService{content: `Sure! Here is the result: {"classification": "regular"} Hope that helps.`}
	svc := newTestIngredientService(t, stub)

	got, err := svc.Categorize(context.Background(), "chicken")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(got) != "regular" {
		t.Errorf("Expected classification 'regular', got '%s'", got)
	}
}

func TestCategorize_UnknownValuePassesThrough(t *testing.T) {
	// Whatever value the upstream returns is handed back unfiltered
	stub := &stubChatService{content: `{"classification": "pescatarian"}`}
	svc := newTestIngredientService(t, stub)

	got, err := svc.Categorize(context.Background(), "salmon")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(got) != "pescatarian" {
		t.Errorf("Expected classification 'pescatarian', got '%s'", got)
	}
}

func TestCategorize_ContentNotJSON(t *testing.T) {
	stub := &stubChatService{content: "definitely vegan"}
	svc := newTestIngredientService(t, stub)

	_, err := svc.Categorize(context.Background(), "tofu")
	if err == nil {
		t.Fatal("Expected parse error, got nil")
	}
	appErr, ok := err.(*cErr.Error)
	if !ok {
		t.Fatalf("Expected *cErr.Error, got %T: %v", err, err)
	}
	if appErr.ErrorCode() != cErr.CONTENT_PARSE_ERROR {
		t.Errorf("Expected error code %d, got %d", cErr.CONTENT_PARSE_ERROR, appErr.ErrorCode())
	}
	if appErr.HttpCode() != http.StatusBadGateway {
		t.Errorf("Expected http code 502, got %d", appErr.HttpCode())
	}
}

func TestCategorize_MissingClassificationField(t *testing.T) {
	stub := &stubChatService{content: `{"category": "vegan"}`}
	svc := newTestIngredientService(t, stub)

	_, err := svc.Categorize(context.Background(), "tofu")
	if err == nil {
		t.Fatal("Expected parse error, got nil")
	}
	appErr, ok := err.(*cErr.Error)
	if !ok {
		t.Fatalf("Expected *cErr.Error, got %T: %v", err, err)
	}
	if appErr.ErrorCode() != cErr.CONTENT_PARSE_ERROR {
		t.Errorf("Expected error code %d, got %d", cErr.CONTENT_PARSE_ERROR, appErr.ErrorCode())
	}
}

func TestCategorize_UpstreamErrorPassthrough(t *testing.T) {
	upstreamErr := cErr.ExternalRequestError("openai api request failed")
	stub := &stubChatService{err: upstreamErr}
	svc := newTestIngredientService(t, stub)

	_, err := svc.Categorize(context.Background(), "tofu")
	if err == nil {
		t.Fatal("Expected upstream error, got nil")
	}
	appErr, ok := err.(*cErr.Error)
	if !ok {
		t.Fatalf("Expected *cErr.Error, got %T: %v", err, err)
	}
	if appErr.ErrorCode() != cErr.EXTERNAL_REQUEST_ERROR {
		t.Errorf("Expected error code %d, got %d", cErr.EXTERNAL_REQUEST_ERROR, appErr.ErrorCode())
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain object",
			content: `{"classification": "vegan"}`,
			want:    `{"classification": "vegan"}`,
		},
		{
			name:    "fenced with language",
			content: "```json\n{\"classification\": \"vegan\"}\n```",
			want:    `{"classification": "vegan"}`,
		},
		{
			name:    "fenced without language",
			content: "```\n{\"classification\": \"vegan\"}\n```",
			want:    `{"classification": "vegan"}`,
		},
		{
			name:    "prose around object",
			content: `The answer is {"classification": "regular"} as requested.`,
			want:    `{"classification": "regular"}`,
		},
		{
			name:    "nested braces",
			content: `{"classification": "vegan", "detail": {"score": 1}} trailing`,
			want:    `{"classification": "vegan", "detail": {"score": 1}}`,
		},
		{
			name:    "brace inside string value",
			content: `{"classification": "ve}gan"} extra`,
			want:    `{"classification": "ve}gan"}`,
		},
		{
			name:    "no json at all",
			content: "just words",
			want:    "just words",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractJSON(tc.content)
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

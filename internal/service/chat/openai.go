package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"pantry/config"
	"pantry/internal/core"
	cErr "pantry/internal/pkg/error"
	"pantry/internal/telemetry"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

type OpenAIService struct {
	HTTPClient *http.Client
	trace      *telemetry.Trace
	apiKey     string
	model      string
	baseURL    string
}

// NewOpenAIService 建立 OpenAIService。
// 憑證、模型與上游位址在建構時注入一次，呼叫期間不讀取任何全域狀態
func NewOpenAIService(
	conf *config.Configuration,
	trace *telemetry.Trace,
	client *http.Client,
) Service {
	return &OpenAIService{
		HTTPClient: client,
		trace:      trace,
		apiKey:     conf.OpenAI.APIKey,
		model:      conf.OpenAI.Model,
		baseURL:    strings.TrimRight(conf.OpenAI.BaseURL, "/"),
	}
}

// ClassifyIngredientV1 透過 OpenAI Chat Completions v1 詢問食材分類，
// 回傳第一個 choice 的 message content（尚未解析的 JSON 字串）。
// 失敗時依錯誤類型回傳：
//   - 請求送出失敗/對方非 2xx：ExternalRequestError
//   - 請求逾時：GatewayTimeout
//   - 回應解碼失敗或 choices 為空：ExternalResponseFormatError
//   - 本地序列化/建請失敗：InternalServer
func (s *OpenAIService) ClassifyIngredientV1(ctx context.Context, ingredient string) (string, error) {
	url := s.baseURL + core.OpenAIAPIVersion + string(core.OpenAIChatEndpoint)
	ctx, span, end := s.trace.WithSpan(ctx, "openai.chat.completions")
	defer end(nil)

	span.SetAttributes(
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", s.model),
		attribute.String("http.url", url),
	)

	// 食材名稱逐字代入模板，不做跳脫
	prompt := fmt.Sprintf(core.ClassifyPromptTemplate, ingredient)
	req := &ChatPayload{
		Model: s.model,
		Messages: []ChatMessage{
			{Role: core.ChatRoleUser, Content: prompt},
		},
		ResponseFormat: &ResponseFormat{Type: core.ResponseFormatJSONObject},
	}

	// 1) 序列化 payload
	payload, err := json.Marshal(req)
	if err != nil {
		end(err)
		return "", cErr.InternalServer("marshal chat payload failed")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		end(err)
		return "", cErr.InternalServer("create http request failed")
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		end(err)
		// 逾時與一般傳輸錯誤分開，讓呼叫端可辨識
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return "", cErr.GatewayTimeout("openai api request timed out")
		}
		return "", cErr.ExternalRequestError("openai api request failed")
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		cause := fmt.Errorf("openai non-2xx: %s (%d) %s", resp.Status, resp.StatusCode, trimBody(b))
		end(cause)
		return "", cErr.ExternalRequestError("openai api error: " + trimBody(b))
	}

	var result ChatResult
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber() // 精度安全
	if err := dec.Decode(&result); err != nil {
		end(err)
		return "", cErr.ExternalResponseFormatError("decode openai response failed")
	}

	// choices 為空要轉成明確錯誤，不能讓索引爆掉
	if len(result.Choices) == 0 {
		err := errors.New("openai response has no choices")
		end(err)
		return "", cErr.ExternalResponseFormatError("openai response has no choices")
	}

	return result.Choices[0].Message.Content, nil
}

func trimBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 3000 {
		return s[:3000] + "..."
	}
	return s
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pantry/config"
	"pantry/internal/core"
	"pantry/internal/fluentd/model"
	"pantry/internal/fluentd/repository"
	cErr "pantry/internal/pkg/error"
	"pantry/internal/service/chat"
	"pantry/internal/telemetry"

	"go.uber.org/zap"
)

type IngredientService struct {
	logger        *zap.Logger
	conf          *config.Configuration
	trace         *telemetry.Trace
	metric        *telemetry.Metric
	chatService   chat.Service
	logRepository *repository.LogRepository
}

func NewIngredientService(
	logger *zap.Logger,
	conf *config.Configuration,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	chatService chat.Service,
	logRepository *repository.LogRepository,
) *IngredientService {
	return &IngredientService{
		logger:        logger,
		conf:          conf,
		trace:         trace,
		metric:        metric,
		chatService:   chatService,
		logRepository: logRepository,
	}
}

// 只認 classification 欄位，其餘欄位忽略
type classificationContent struct {
	Classification string `json:"classification"`
}

// Categorize 詢問上游並從回覆中解析分類值。
// 上游給什麼值就回什麼值，不做白名單檢查；
// 回覆不是 JSON 物件或缺 classification 欄位時回 ContentParseError
func (s *IngredientService) Categorize(ctx context.Context, ingredient string) (core.Category, error) {
	ctx, span, end := s.trace.WithSpan(ctx, "ingredient.categorize")
	defer end(nil)
	start := time.Now()

	content, err := s.chatService.ClassifyIngredientV1(ctx, ingredient)
	if err != nil {
		end(err)
		s.countFail(err)
		return "", err
	}

	var parsed classificationContent
	raw := extractJSON(content)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// 原始內容留在 log 供排查
		s.logger.Warn("classification content is not valid JSON",
			zap.String("ingredient", ingredient),
			zap.String("content", contentPreview(content)),
			zap.Error(err),
		)
		end(err)
		s.countFailReason("content_parse")
		return "", cErr.ContentParseError("classification content is not a JSON object")
	}
	if strings.TrimSpace(parsed.Classification) == "" {
		s.logger.Warn("classification field missing in content",
			zap.String("ingredient", ingredient),
			zap.String("content", contentPreview(content)),
		)
		end(errors.New("classification field missing"))
		s.countFailReason("missing_classification")
		return "", cErr.ContentParseError("classification field missing in content")
	}

	classification := core.Category(parsed.Classification)
	duration := time.Since(start)

	s.trace.ApplyTraceAttributes(span, core.TraceClassifyMeta{
		Ingredient:     ingredient,
		Classification: string(classification),
		Model:          s.conf.OpenAI.Model,
		DurationMs:     float64(duration.Milliseconds()),
	})

	if s.metric.ClassifySuccess != nil {
		s.metric.ClassifySuccess.WithLabelValues(string(classification)).Inc()
	}

	// fluentd 歸檔，失敗只記 log 不影響主流程
	traceID := span.SpanContext().TraceID()
	entry := model.ClassificationLog{
		RequestID:      fmt.Sprintf("%x", traceID[:]),
		ProjectName:    s.conf.App.Name,
		Ingredient:     ingredient,
		Classification: string(classification),
		Model:          s.conf.OpenAI.Model,
		DurationMs:     float64(duration.Milliseconds()),
	}
	if err := s.logRepository.LogClassification(ctx, entry); err != nil {
		s.logger.Warn("ship classification log failed", zap.Error(err))
	}

	return classification, nil
}

func (s *IngredientService) countFail(err error) {
	reason := "upstream"
	if appErr, ok := err.(*cErr.Error); ok {
		reason = appErr.Error()
	}
	s.countFailReason(reason)
}

func (s *IngredientService) countFailReason(reason string) {
	if s.metric.ClassifyFail != nil {
		s.metric.ClassifyFail.WithLabelValues(reason).Inc()
	}
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// extractJSON 從模型回覆取出 JSON 物件本體。
// 模型偶爾會包 markdown code fence，或在 JSON 前後夾說明文字
func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)

	if m := fenceRe.FindStringSubmatch(trimmed); len(m) > 1 {
		trimmed = strings.TrimSpace(m[1])
	}

	start := strings.Index(trimmed, "{")
	if start < 0 {
		return trimmed
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(trimmed); i++ {
		ch := trimmed[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return trimmed[start : i+1]
				}
			}
		}
	}
	return trimmed[start:]
}

func contentPreview(s string) string {
	const max = 2000
	if len(s) > max {
		return s[:max] + "…"
	}
	return s
}

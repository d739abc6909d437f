package handler

import (
	"pantry/internal/dto"
	"pantry/internal/pkg/request"
	"pantry/internal/pkg/response"
	"pantry/internal/service"
	"pantry/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type IngredientHandler struct {
	trace             *telemetry.Trace
	logger            *zap.Logger
	ingredientService *service.IngredientService
}

func NewIngredientHandler(
	trace *telemetry.Trace,
	logger *zap.Logger,
	ingredientService *service.IngredientService,
) *IngredientHandler {
	return &IngredientHandler{
		trace:             trace,
		logger:            logger,
		ingredientService: ingredientService,
	}
}

// Classify 處理食材分類請求
// @Summary 食材分類
// @Description 將食材分類為 vegan、vegetarian 或 regular
// @Tags Ingredients
// @Accept json
// @Produce json
// @Param payload body dto.ClassifyIngredientDto true "食材分類請求內容"
// @Success 200 {object} dto.ClassificationResponseDto
// @Failure 400 {object} response.Response "Bad Request"
// @Failure 502 {object} response.Response "Bad Gateway"
// @Failure 504 {object} response.Response "Gateway Timeout"
// @Router /ingredients [post]
func (handler *IngredientHandler) Classify(c *gin.Context) {
	ctx, span, end := handler.trace.WithSpan(c)
	defer end(nil)

	var payload dto.ClassifyIngredientDto
	if err := c.ShouldBindJSON(&payload); err != nil {
		end(err)
		response.AbortWithError(c, request.GetError(&payload, err))
		return
	}
	span.SetAttributes(attribute.String("classify.ingredient", payload.Ingredient))

	classification, err := handler.ingredientService.Categorize(ctx, payload.Ingredient)
	if err != nil {
		// service 層已轉成帶狀態碼的應用錯誤，原樣交給 Recovery 輸出
		end(err)
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, dto.ClassificationResponseDto{
		Ingredient:     payload.Ingredient,
		Classification: string(classification),
	})
}

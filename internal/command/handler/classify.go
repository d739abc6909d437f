package command

import (
	"context"
	"strings"
	"time"

	"pantry/internal/service"
	"pantry/utils/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ClassifyHandler struct {
	logger            *zap.Logger
	ingredientService *service.IngredientService
}

func NewClassifyHandler(
	logger *zap.Logger,
	ingredientService *service.IngredientService,
) *ClassifyHandler {
	return &ClassifyHandler{
		logger:            logger,
		ingredientService: ingredientService,
	}
}

// Classify 單次分類指令：把參數組成食材名稱，直接走與 HTTP 相同的 service 流程。
func (handler *ClassifyHandler) Classify(cmd *cobra.Command, args []string) {
	ingredient := strings.TrimSpace(strings.Join(args, " "))
	if ingredient == "" {
		cmd.PrintErrln("usage: classify <ingredient>")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	classification, err := handler.ingredientService.Categorize(ctx, ingredient)
	if err != nil {
		handler.logger.Error("[Command] classify failed", zap.String("ingredient", ingredient), zap.Error(err))
		cmd.PrintErrln("classify failed:", err.Error())
		return
	}

	if !validate.IsKnownCategory(string(classification)) {
		// 上游回了清單以外的值，照實輸出但提醒一下
		cmd.PrintErrln("warning: unexpected classification value:", string(classification))
	}
	cmd.Printf("%s: %s\n", ingredient, classification)
}

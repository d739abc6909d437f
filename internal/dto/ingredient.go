package dto

import "pantry/internal/pkg/request"

// 分類請求
type ClassifyIngredientDto struct {
	Ingredient string `json:"ingredient" binding:"required"` // 食材名稱，原樣代入 prompt
}

func (dto *ClassifyIngredientDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Ingredient.required": "ingredient is required",
	}
}

// 分類結果
type ClassificationResponseDto struct {
	Ingredient     string `json:"ingredient"`
	Classification string `json:"classification"` // 上游回覆的值原樣輸出
}

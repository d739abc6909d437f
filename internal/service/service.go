package service

import (
	"pantry/internal/service/chat"
	"pantry/internal/service/models"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	chat.NewOpenAIService,
	models.NewOpenAIService,
	NewIngredientService,
	NewHealthService,
)

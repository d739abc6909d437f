package router

import (
	"pantry/internal/handler"

	"github.com/gin-gonic/gin"
)

type IngredientRouter struct {
	ingredientHandler *handler.IngredientHandler
}

func NewIngredientRouter(
	ingredientHandler *handler.IngredientHandler,
) *IngredientRouter {
	return &IngredientRouter{
		ingredientHandler: ingredientHandler,
	}
}

func (ingredientRouter *IngredientRouter) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/ingredients", ingredientRouter.ingredientHandler.Classify)
}

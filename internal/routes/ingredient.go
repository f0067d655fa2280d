package routes

import (
	"github.com/gin-gonic/gin"

	"cosmeticwatch/internal/handlers"
)

type IngredientRoutes struct {
	handler *handlers.IngredientHandler
}

func NewIngredientRoutes(handler *handlers.IngredientHandler) *IngredientRoutes {
	return &IngredientRoutes{handler: handler}
}

func (r *IngredientRoutes) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("/search", r.handler.SearchIngredient)
		ingredients.GET("/trends", r.handler.GetIngredientTrends)
	}

	router.GET("/filters/options", r.handler.GetFilterOptions)
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cosmeticwatch/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, productHandler *handlers.ProductHandler, ingredientHandler *handlers.IngredientHandler) {
	api := router.Group("/api/v1")

	productRoutes := NewProductRoutes(productHandler)
	productRoutes.RegisterRoutes(api)

	ingredientRoutes := NewIngredientRoutes(ingredientHandler)
	ingredientRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}

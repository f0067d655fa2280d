package routes

import (
	"github.com/gin-gonic/gin"

	"cosmeticwatch/internal/handlers"
)

type ProductRoutes struct {
	handler *handlers.ProductHandler
}

func NewProductRoutes(handler *handlers.ProductHandler) *ProductRoutes {
	return &ProductRoutes{handler: handler}
}

func (r *ProductRoutes) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("/search", r.handler.SearchProducts)
		products.GET("/:notifNo", r.handler.GetProduct)
		products.GET("/:notifNo/similar", r.handler.GetSimilarProducts)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cosmeticwatch/internal/responses"
	"cosmeticwatch/internal/services"
)

type IngredientHandler struct {
	ingredientService *services.IngredientService
}

func NewIngredientHandler(ingredientService *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
	}
}

// SearchIngredient handles GET /api/v1/ingredients/search
func (h *IngredientHandler) SearchIngredient(c *gin.Context) {
	ingredient, err := h.ingredientService.SearchIngredient(c.Request.Context(), c.Query("name"))
	if err != nil {
		responses.Fail(c, statusCodeFor(err), err, "Failed to retrieve ingredient")
		return
	}

	responses.Success(c, http.StatusOK, ingredient, "Ingredient retrieved successfully")
}

// GetIngredientTrends handles GET /api/v1/ingredients/trends
func (h *IngredientHandler) GetIngredientTrends(c *gin.Context) {
	trends, err := h.ingredientService.GetIngredientTrends(c.Request.Context(), c.Query("name"))
	if err != nil {
		responses.Fail(c, statusCodeFor(err), err, "Failed to retrieve ingredient trends")
		return
	}

	responses.Success(c, http.StatusOK, trends, "Ingredient trends retrieved successfully")
}

// GetFilterOptions handles GET /api/v1/filters/options
func (h *IngredientHandler) GetFilterOptions(c *gin.Context) {
	facets := h.ingredientService.GetFilterOptions(c.Request.Context())
	responses.Success(c, http.StatusOK, facets, "Filter options retrieved successfully")
}

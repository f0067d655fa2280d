package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cosmeticwatch/internal/models"
	"cosmeticwatch/internal/responses"
	"cosmeticwatch/internal/safety"
	"cosmeticwatch/internal/services"
)

type ProductHandler struct {
	searchService  *services.SearchService
	productService *services.ProductService
}

func NewProductHandler(searchService *services.SearchService, productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		searchService:  searchService,
		productService: productService,
	}
}

// statusCodeFor maps the service error taxonomy onto HTTP status codes.
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func splitParam(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseFilters reads the three filter axes from comma-separated query
// params. Unrecognized values are rejected before any store call.
func parseFilters(c *gin.Context) (safety.Filters, error) {
	var filters safety.Filters

	for _, raw := range splitParam(c.Query("statuses")) {
		status, ok := models.ParseProductStatus(raw)
		if !ok {
			return filters, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, raw)
		}
		filters.Statuses = append(filters.Statuses, status)
	}

	for _, raw := range splitParam(c.Query("ingredients")) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, fmt.Errorf("%w: ingredient id %q is not numeric", models.ErrInvalidInput, raw)
		}
		filters.IngredientIDs = append(filters.IngredientIDs, id)
	}

	for _, raw := range splitParam(c.Query("levels")) {
		level, ok := safety.ParseLevel(raw)
		if !ok {
			return filters, fmt.Errorf("%w: unknown safety level %q", models.ErrInvalidInput, raw)
		}
		filters.Levels = append(filters.Levels, level)
	}

	return filters, nil
}

// SearchProducts handles GET /api/v1/products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid filter parameters")
		return
	}

	results, err := h.searchService.SearchProducts(c.Request.Context(), c.Query("q"), filters)
	if err != nil {
		responses.Fail(c, statusCodeFor(err), err, "Search failed")
		return
	}

	responses.Success(c, http.StatusOK, results, "Products retrieved successfully")
}

// GetProduct handles GET /api/v1/products/:notifNo
func (h *ProductHandler) GetProduct(c *gin.Context) {
	result, err := h.productService.GetProduct(c.Request.Context(), c.Param("notifNo"))
	if err != nil {
		responses.Fail(c, statusCodeFor(err), err, "Failed to retrieve product")
		return
	}

	responses.Success(c, http.StatusOK, result, "Product retrieved successfully")
}

// GetSimilarProducts handles GET /api/v1/products/:notifNo/similar
func (h *ProductHandler) GetSimilarProducts(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			responses.Fail(c, http.StatusBadRequest, fmt.Errorf("%w: limit %q is not numeric", models.ErrInvalidInput, raw), "Invalid limit")
			return
		}
		limit = parsed
	}

	results, err := h.productService.GetSimilarProducts(c.Request.Context(), c.Param("notifNo"), limit)
	if err != nil {
		responses.Fail(c, statusCodeFor(err), err, "Failed to retrieve similar products")
		return
	}

	responses.Success(c, http.StatusOK, results, "Similar products retrieved successfully")
}

package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cosmeticwatch/internal/models"
)

type ingredientStore interface {
	FindByName(ctx context.Context, name string) (*models.Ingredient, error)
	ListFacets(ctx context.Context) ([]models.Ingredient, error)
	CancelledYearCounts(ctx context.Context, ingID int64) ([]models.YearCount, error)
}

type IngredientService struct {
	ingredients ingredientStore
}

func NewIngredientService(ingredients ingredientStore) *IngredientService {
	return &IngredientService{ingredients: ingredients}
}

// SearchIngredient resolves an ingredient by substring, first match wins.
// Lookup by substring is ambiguous when names overlap; the store orders by
// id so the winner is at least deterministic.
func (s *IngredientService) SearchIngredient(ctx context.Context, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: ingredient name is required", models.ErrInvalidInput)
	}

	ingredient, err := s.ingredients.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: ingredient lookup failed: %v", models.ErrStoreUnavailable, err)
	}
	if ingredient == nil {
		return nil, fmt.Errorf("%w: ingredient %q", models.ErrNotFound, name)
	}

	return ingredient, nil
}

// GetFilterOptions lists the ingredient facets for filter UIs. A store
// failure degrades to an empty facet list rather than failing the page.
func (s *IngredientService) GetFilterOptions(ctx context.Context) []models.Ingredient {
	facets, err := s.ingredients.ListFacets(ctx)
	if err != nil {
		log.Printf("ingredients: facet listing failed, returning no filter options: %v", err)
		return []models.Ingredient{}
	}
	if facets == nil {
		facets = []models.Ingredient{}
	}
	return facets
}

// GetIngredientTrends builds the yearly cancellation series for one
// ingredient. "Ingredient unknown" is NotFound; "known but never involved
// in a cancellation" is a trends object with a zero total and an empty
// series — the two are distinct outcomes.
func (s *IngredientService) GetIngredientTrends(ctx context.Context, name string) (*models.IngredientTrends, error) {
	ingredient, err := s.SearchIngredient(ctx, name)
	if err != nil {
		return nil, err
	}

	counts, err := s.ingredients.CancelledYearCounts(ctx, ingredient.IngID)
	if err != nil {
		return nil, fmt.Errorf("%w: trend aggregation failed: %v", models.ErrStoreUnavailable, err)
	}

	series, total := fillYearGaps(counts)
	return &models.IngredientTrends{
		Ingredient:       *ingredient,
		YearlyTrends:     series,
		TotalBannedCount: total,
	}, nil
}

// fillYearGaps expands grouped year counts into a contiguous series from
// the minimum to the maximum year present, zero-filled in between. Years
// outside that range are never synthesized. Input arrives sorted by year.
func fillYearGaps(counts []models.YearCount) ([]models.YearCount, int) {
	if len(counts) == 0 {
		return []models.YearCount{}, 0
	}

	byYear := make(map[int]int, len(counts))
	minYear, maxYear := counts[0].Year, counts[0].Year
	total := 0
	for _, yc := range counts {
		byYear[yc.Year] = yc.Count
		total += yc.Count
		if yc.Year < minYear {
			minYear = yc.Year
		}
		if yc.Year > maxYear {
			maxYear = yc.Year
		}
	}

	series := make([]models.YearCount, 0, maxYear-minYear+1)
	for year := minYear; year <= maxYear; year++ {
		series = append(series, models.YearCount{Year: year, Count: byYear[year]})
	}
	return series, total
}

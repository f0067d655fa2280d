package services

import (
	"context"
	"log"
	"sort"

	"cosmeticwatch/internal/models"
	"cosmeticwatch/internal/safety"
	"cosmeticwatch/internal/search"
)

// candidateStore is the slice of the corpus store the search path needs.
type candidateStore interface {
	SearchCandidates(ctx context.Context, patterns []string, status *models.ProductStatus, ingredientIDs []int64) ([]models.Product, error)
}

// enrichmentStore is the batched ingredient join.
type enrichmentStore interface {
	ForProducts(ctx context.Context, notifNos []string) (map[string][]models.IngredientInfo, error)
}

type SearchService struct {
	products    candidateStore
	ingredients enrichmentStore
}

func NewSearchService(products candidateStore, ingredients enrichmentStore) *SearchService {
	return &SearchService{
		products:    products,
		ingredients: ingredients,
	}
}

// candidateStrategy is one way of obtaining candidate products. Strategies
// run in order, first success wins; the fallback skips store-side filter
// pushdown, so its survivors carry the filters into the in-memory pass.
type candidateStrategy struct {
	name       string
	pushedDown bool
	run        func(ctx context.Context) ([]models.Product, error)
}

// SearchProducts is the main search pipeline: tokenize, fetch candidates
// via the strategy chain, dedupe, enrich in one batched round trip, apply
// the safety filter axes, rank, and attach trust scores.
//
// A blank query returns an empty list, never the whole corpus. Store
// failures degrade: candidates unavailable means an empty result, a failed
// enrichment batch means empty ingredient lists. The search itself never
// hard-fails.
func (s *SearchService) SearchProducts(ctx context.Context, rawQuery string, filters safety.Filters) ([]models.ProductResult, error) {
	q := search.Tokenize(rawQuery)
	if q.Empty() {
		return []models.ProductResult{}, nil
	}
	patterns := q.Patterns()

	var statusPtr *models.ProductStatus
	if restrict, ok := filters.StatusRestriction(); ok {
		statusPtr = &restrict
	}

	strategies := []candidateStrategy{
		{
			name:       "filtered",
			pushedDown: true,
			run: func(ctx context.Context) ([]models.Product, error) {
				return s.products.SearchCandidates(ctx, patterns, statusPtr, filters.IngredientIDs)
			},
		},
		{
			name:       "plain",
			pushedDown: false,
			run: func(ctx context.Context) ([]models.Product, error) {
				return s.products.SearchCandidates(ctx, patterns, nil, nil)
			},
		},
	}

	var (
		candidates []models.Product
		pushedDown bool
		fetched    bool
	)
	for _, strategy := range strategies {
		result, err := strategy.run(ctx)
		if err != nil {
			log.Printf("search: %s candidate query failed, trying next strategy: %v", strategy.name, err)
			continue
		}
		candidates = result
		pushedDown = strategy.pushedDown
		fetched = true
		break
	}
	if !fetched {
		log.Printf("search: all candidate strategies failed, returning empty result")
		return []models.ProductResult{}, nil
	}

	candidates = search.Dedupe(candidates)

	// Single batched fetch for the finalized candidate set. On failure every
	// product keeps an empty ingredient list and the search still answers.
	enriched := s.enrich(ctx, candidates)

	var kept []models.Product
	for _, p := range candidates {
		ingredients := enriched[p.NotifNo]
		if !pushedDown {
			if !filters.MatchesStatus(p.StatusType) || !filters.MatchesIngredients(ingredients) {
				continue
			}
		}
		if !filters.MatchesLevels(p.StatusType, ingredients) {
			continue
		}
		kept = append(kept, p)
	}

	results := make([]models.ProductResult, 0, len(kept))
	for _, ranked := range search.Rank(kept, q) {
		score := ranked.Score
		result := buildProductResult(ranked.Product, enriched[ranked.Product.NotifNo])
		result.Relevance = &score
		results = append(results, result)
	}

	return results, nil
}

func (s *SearchService) enrich(ctx context.Context, products []models.Product) map[string][]models.IngredientInfo {
	notifNos := make([]string, 0, len(products))
	for _, p := range products {
		notifNos = append(notifNos, p.NotifNo)
	}

	grouped, err := s.ingredients.ForProducts(ctx, notifNos)
	if err != nil {
		log.Printf("search: ingredient enrichment failed, continuing with empty ingredient lists: %v", err)
		grouped = map[string][]models.IngredientInfo{}
	}
	return grouped
}

// buildProductResult assembles the presentation shape: ingredients ordered
// worst-risk first, trust score computed from status and risk counts.
func buildProductResult(p models.Product, ingredients []models.IngredientInfo) models.ProductResult {
	ordered := make([]models.IngredientInfo, len(ingredients))
	copy(ordered, ingredients)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].RiskType != ordered[j].RiskType {
			return ordered[i].RiskType.MoreSevere(ordered[j].RiskType)
		}
		return ordered[i].Name < ordered[j].Name
	})

	return models.ProductResult{
		NotifNo:     p.NotifNo,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		StatusType:  p.StatusType,
		StatusDate:  p.StatusDate,
		HolderName:  p.HolderName,
		Ingredients: ordered,
		Trust:       safety.TrustScore(p.StatusType, ordered),
	}
}

package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cosmeticwatch/internal/models"
)

type productStore interface {
	GetByNotifNo(ctx context.Context, notifNo string) (*models.Product, error)
	SimilarByCategory(ctx context.Context, refNotifNo, category string, limit int) ([]models.SimilarProductResult, error)
	SimilarByBrand(ctx context.Context, refNotifNo, brand string, limit int) ([]models.SimilarProductResult, error)
	SimilarByCategoryToken(ctx context.Context, refNotifNo, token string, limit int) ([]models.SimilarProductResult, error)
	SimilarAny(ctx context.Context, refNotifNo string, limit int) ([]models.SimilarProductResult, error)
}

type ProductService struct {
	products    productStore
	ingredients enrichmentStore
}

func NewProductService(products productStore, ingredients enrichmentStore) *ProductService {
	return &ProductService{
		products:    products,
		ingredients: ingredients,
	}
}

// MaxSimilarLimit bounds how many alternatives one request may ask for.
const MaxSimilarLimit = 50

func validateNotifNo(notifNo string) error {
	notifNo = strings.TrimSpace(notifNo)
	if notifNo == "" {
		return fmt.Errorf("%w: notification number is required", models.ErrInvalidInput)
	}
	if len(notifNo) > models.MaxNotifNoLen {
		return fmt.Errorf("%w: notification number exceeds %d characters", models.ErrInvalidInput, models.MaxNotifNoLen)
	}
	return nil
}

// GetProduct returns one enriched product. Unlike searches, a detail
// lookup surfaces store failure as a typed error; a failed enrichment
// batch still degrades to an empty ingredient list.
func (s *ProductService) GetProduct(ctx context.Context, notifNo string) (*models.ProductResult, error) {
	if err := validateNotifNo(notifNo); err != nil {
		return nil, err
	}

	product, err := s.products.GetByNotifNo(ctx, notifNo)
	if err != nil {
		return nil, fmt.Errorf("%w: product lookup failed: %v", models.ErrStoreUnavailable, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", models.ErrNotFound, notifNo)
	}

	grouped, err := s.ingredients.ForProducts(ctx, []string{product.NotifNo})
	if err != nil {
		log.Printf("product: enrichment failed for %s, returning empty ingredient list: %v", notifNo, err)
		grouped = map[string][]models.IngredientInfo{}
	}

	result := buildProductResult(*product, grouped[product.NotifNo])
	return &result, nil
}

// fuzzyCategoryToken picks the first whitespace token of at least three
// characters from a category name, for the tier-3 fuzzy match.
func fuzzyCategoryToken(category string) string {
	for _, token := range strings.Fields(category) {
		if len([]rune(token)) >= 3 {
			return token
		}
	}
	return ""
}

// GetSimilarProducts recommends up to limit Approved alternatives via
// tiered fallback: same category, then same brand, then fuzzy category
// match, then any Approved product. The first tier with at least one hit
// wins outright; tiers never mix. An unknown reference yields an empty
// list, not an error.
func (s *ProductService) GetSimilarProducts(ctx context.Context, notifNo string, limit int) ([]models.SimilarProductResult, error) {
	if err := validateNotifNo(notifNo); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxSimilarLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", models.ErrInvalidInput, MaxSimilarLimit)
	}

	ref, err := s.products.GetByNotifNo(ctx, notifNo)
	if err != nil {
		return nil, fmt.Errorf("%w: reference lookup failed: %v", models.ErrStoreUnavailable, err)
	}
	if ref == nil {
		return []models.SimilarProductResult{}, nil
	}

	type tier struct {
		name string
		run  func(ctx context.Context) ([]models.SimilarProductResult, error)
	}

	tiers := []tier{
		{"category", func(ctx context.Context) ([]models.SimilarProductResult, error) {
			return s.products.SimilarByCategory(ctx, ref.NotifNo, ref.Category, limit)
		}},
		{"brand", func(ctx context.Context) ([]models.SimilarProductResult, error) {
			return s.products.SimilarByBrand(ctx, ref.NotifNo, ref.Brand, limit)
		}},
		{"fuzzy-category", func(ctx context.Context) ([]models.SimilarProductResult, error) {
			token := fuzzyCategoryToken(ref.Category)
			if token == "" {
				return nil, nil
			}
			return s.products.SimilarByCategoryToken(ctx, ref.NotifNo, token, limit)
		}},
		{"any-approved", func(ctx context.Context) ([]models.SimilarProductResult, error) {
			return s.products.SimilarAny(ctx, ref.NotifNo, limit)
		}},
	}

	for _, t := range tiers {
		results, err := t.run(ctx)
		if err != nil {
			log.Printf("similar: tier %s failed for %s, trying next tier: %v", t.name, notifNo, err)
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	return []models.SimilarProductResult{}, nil
}

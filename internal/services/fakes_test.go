package services

import (
	"context"
	"errors"

	"cosmeticwatch/internal/models"
)

var errStoreDown = errors.New("store down")

// fakeProductStore satisfies candidateStore and productStore.
type fakeProductStore struct {
	candidates    []models.Product
	failFiltered  bool // fail the pushdown strategy only
	failAll       bool
	searchCalls   int
	products      map[string]*models.Product
	getErr        error
	byCategory    []models.SimilarProductResult
	byBrand       []models.SimilarProductResult
	byToken       []models.SimilarProductResult
	anyApproved   []models.SimilarProductResult
	categoryErr   error
	tierCalls     []string
	lastTokenSeen string
}

func (f *fakeProductStore) SearchCandidates(ctx context.Context, patterns []string, status *models.ProductStatus, ingredientIDs []int64) ([]models.Product, error) {
	f.searchCalls++
	if f.failAll {
		return nil, errStoreDown
	}
	if f.failFiltered && (status != nil || len(ingredientIDs) > 0) {
		return nil, errStoreDown
	}
	return f.candidates, nil
}

func (f *fakeProductStore) GetByNotifNo(ctx context.Context, notifNo string) (*models.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.products[notifNo], nil
}

func (f *fakeProductStore) SimilarByCategory(ctx context.Context, refNotifNo, category string, limit int) ([]models.SimilarProductResult, error) {
	f.tierCalls = append(f.tierCalls, "category")
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return f.byCategory, nil
}

func (f *fakeProductStore) SimilarByBrand(ctx context.Context, refNotifNo, brand string, limit int) ([]models.SimilarProductResult, error) {
	f.tierCalls = append(f.tierCalls, "brand")
	return f.byBrand, nil
}

func (f *fakeProductStore) SimilarByCategoryToken(ctx context.Context, refNotifNo, token string, limit int) ([]models.SimilarProductResult, error) {
	f.tierCalls = append(f.tierCalls, "fuzzy-category")
	f.lastTokenSeen = token
	return f.byToken, nil
}

func (f *fakeProductStore) SimilarAny(ctx context.Context, refNotifNo string, limit int) ([]models.SimilarProductResult, error) {
	f.tierCalls = append(f.tierCalls, "any-approved")
	return f.anyApproved, nil
}

// fakeIngredientStore satisfies enrichmentStore and ingredientStore.
type fakeIngredientStore struct {
	grouped    map[string][]models.IngredientInfo
	forErr     error
	forCalls   int
	facets     []models.Ingredient
	facetsErr  error
	found      *models.Ingredient
	findErr    error
	yearCounts []models.YearCount
	countsErr  error
}

func (f *fakeIngredientStore) ForProducts(ctx context.Context, notifNos []string) (map[string][]models.IngredientInfo, error) {
	f.forCalls++
	if f.forErr != nil {
		return nil, f.forErr
	}
	return f.grouped, nil
}

func (f *fakeIngredientStore) ListFacets(ctx context.Context) ([]models.Ingredient, error) {
	if f.facetsErr != nil {
		return nil, f.facetsErr
	}
	return f.facets, nil
}

func (f *fakeIngredientStore) FindByName(ctx context.Context, name string) (*models.Ingredient, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.found, nil
}

func (f *fakeIngredientStore) CancelledYearCounts(ctx context.Context, ingID int64) ([]models.YearCount, error) {
	if f.countsErr != nil {
		return nil, f.countsErr
	}
	return f.yearCounts, nil
}

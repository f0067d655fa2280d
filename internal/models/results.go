package models

import "time"

// IngredientInfo is the slice of ingredient data attached to search results:
// name, rating and the short risk summary, without the internal id plumbing.
type IngredientInfo struct {
	IngID       int64    `json:"ing_id"`
	Name        string   `json:"ing_name"`
	RiskType    RiskType `json:"ing_risk_type"`
	RiskSummary string   `json:"ing_risk_summary"`
}

// TrustScore is the derived 0-100 safety metric for a product.
type TrustScore struct {
	Score int    `json:"score"`
	Level string `json:"level"`
}

// ProductResult is a product enriched for presentation: holder name,
// ingredients ordered worst-risk first, trust score, and the relevance
// score when the result came from a ranked search.
type ProductResult struct {
	NotifNo     string           `json:"prod_notif_no"`
	Name        string           `json:"prod_name"`
	Brand       string           `json:"prod_brand"`
	Category    string           `json:"prod_category"`
	StatusType  ProductStatus    `json:"prod_status_type"`
	StatusDate  time.Time        `json:"prod_status_date"`
	HolderName  string           `json:"holder_name"`
	Ingredients []IngredientInfo `json:"ingredients"`
	Trust       TrustScore       `json:"trust"`
	Relevance   *int             `json:"relevance,omitempty"`
}

// SimilarProductResult is one recommended alternative. ApprovedCount is the
// holder's total number of Approved products, the trusted-brand signal the
// recommendation tiers sort by.
type SimilarProductResult struct {
	NotifNo       string        `json:"prod_notif_no"`
	Name          string        `json:"prod_name"`
	Brand         string        `json:"prod_brand"`
	Category      string        `json:"prod_category"`
	StatusType    ProductStatus `json:"prod_status_type"`
	StatusDate    time.Time     `json:"prod_status_date"`
	HolderName    string        `json:"holder_name"`
	ApprovedCount int64         `json:"holder_approved_count"`
}

// YearCount is one point in a banned-trend series.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// IngredientTrends is the yearly cancellation series for one ingredient.
// The series is gap-free between its first and last year; an ingredient
// with no cancellations has an empty series and a zero total.
type IngredientTrends struct {
	Ingredient       Ingredient  `json:"ingredient"`
	YearlyTrends     []YearCount `json:"yearly_trends"`
	TotalBannedCount int         `json:"total_banned_count"`
}

package models

// RiskType is the categorical hazard rating of an ingredient.
type RiskType string

const (
	RiskBanned RiskType = "Banned"
	RiskHigh   RiskType = "High"
	RiskLow    RiskType = "Low"
	RiskNoData RiskType = "NoData"
)

// Rated reports whether the ingredient carries an actual hazard rating.
// NoData (and anything unrecognized) does not count as rated.
func (r RiskType) Rated() bool {
	return r == RiskBanned || r == RiskHigh || r == RiskLow
}

// severityRank orders risk types for display, worst first. Unknown values
// sort last.
func (r RiskType) severityRank() int {
	switch r {
	case RiskBanned:
		return 0
	case RiskHigh:
		return 1
	case RiskLow:
		return 2
	case RiskNoData:
		return 3
	}
	return 4
}

// MoreSevere reports whether r is strictly more severe than other, for
// ordering ingredient lists worst-risk first.
func (r RiskType) MoreSevere(other RiskType) bool {
	return r.severityRank() < other.severityRank()
}

// Ingredient is a substance that can appear in products. The risk summary
// is free text maintained by the ingestion side (kept short by convention).
type Ingredient struct {
	IngID       int64    `json:"ing_id"`
	Name        string   `json:"ing_name"`
	RiskSummary string   `json:"ing_risk_summary"`
	RiskType    RiskType `json:"ing_risk_type"`
}

// ProductIngredient links one product to one ingredient. Composite key.
type ProductIngredient struct {
	NotifNo string `json:"prod_notif_no"`
	IngID   int64  `json:"ing_id"`
}

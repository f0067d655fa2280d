// Package safety holds the safety-filter predicates and the trust score
// calculator. Both are pure: they look only at a product's status and the
// risk ratings of its enriched ingredient list.
package safety

import (
	"strings"

	"cosmeticwatch/internal/models"
)

// Level is a consumer-facing safety tier.
type Level string

const (
	LevelSafe   Level = "safe"
	LevelRisky  Level = "risky"
	LevelUnsafe Level = "unsafe"
)

// ParseLevel maps a filter value to a Level, case-insensitively.
func ParseLevel(s string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelSafe:
		return LevelSafe, true
	case LevelRisky:
		return LevelRisky, true
	case LevelUnsafe:
		return LevelUnsafe, true
	}
	return "", false
}

// Filters configures the three independent filter axes. An empty (or full)
// selection on an axis means no restriction on that axis. The axes AND
// together, and with the free-text match when a query is present.
type Filters struct {
	Statuses      []models.ProductStatus
	IngredientIDs []int64
	Levels        []Level
}

// StatusRestriction returns the single status the status axis restricts to.
// With zero or both statuses selected the axis is a no-op.
func (f Filters) StatusRestriction() (models.ProductStatus, bool) {
	if len(f.Statuses) != 1 {
		return "", false
	}
	return f.Statuses[0], true
}

// LevelsActive reports whether the safety-level axis restricts anything:
// only a selection of exactly 1 or 2 levels does.
func (f Filters) LevelsActive() bool {
	n := len(distinctLevels(f.Levels))
	return n == 1 || n == 2
}

func distinctLevels(levels []Level) []Level {
	seen := make(map[Level]struct{}, len(levels))
	out := make([]Level, 0, len(levels))
	for _, l := range levels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func countRated(ingredients []models.IngredientInfo) int {
	n := 0
	for _, ing := range ingredients {
		if ing.RiskType.Rated() {
			n++
		}
	}
	return n
}

// MatchesLevel evaluates one level predicate against an enriched product.
//
//   - safe:   Approved and zero ingredients rated Low/High/Banned. A product
//     with only Low-risk ingredients is therefore NOT "safe" — that mirrors
//     the upstream policy exactly and is flagged with the product owner,
//     not corrected here.
//   - risky:  Approved and at least one rated ingredient.
//   - unsafe: Cancelled, ingredients irrelevant.
func MatchesLevel(level Level, status models.ProductStatus, ingredients []models.IngredientInfo) bool {
	switch level {
	case LevelSafe:
		return status == models.StatusApproved && countRated(ingredients) == 0
	case LevelRisky:
		return status == models.StatusApproved && countRated(ingredients) > 0
	case LevelUnsafe:
		return status == models.StatusCancelled
	}
	return false
}

// MatchesLevels ORs the selected level predicates. When the axis is
// inactive (0 or all 3 levels selected) everything passes.
func (f Filters) MatchesLevels(status models.ProductStatus, ingredients []models.IngredientInfo) bool {
	if !f.LevelsActive() {
		return true
	}
	for _, level := range distinctLevels(f.Levels) {
		if MatchesLevel(level, status, ingredients) {
			return true
		}
	}
	return false
}

// MatchesIngredients implements the "contains any of" ingredient axis
// against an enriched ingredient list. Used by the in-memory fallback path;
// the primary search strategy pushes this axis into the store query.
func (f Filters) MatchesIngredients(ingredients []models.IngredientInfo) bool {
	if len(f.IngredientIDs) == 0 {
		return true
	}
	wanted := make(map[int64]struct{}, len(f.IngredientIDs))
	for _, id := range f.IngredientIDs {
		wanted[id] = struct{}{}
	}
	for _, ing := range ingredients {
		if _, ok := wanted[ing.IngID]; ok {
			return true
		}
	}
	return false
}

// MatchesStatus implements the status axis for the in-memory fallback path.
func (f Filters) MatchesStatus(status models.ProductStatus) bool {
	restrict, ok := f.StatusRestriction()
	if !ok {
		return true
	}
	return status == restrict
}

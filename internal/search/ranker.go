package search

import (
	"sort"
	"strings"

	"cosmeticwatch/internal/models"
)

// Scoring weights. Term hits are additive and uncapped, so a query with
// many matching terms can outscore a phrase hit.
const (
	weightPhraseHit  = 100
	weightTermHit    = 10
	weightNotifNoHit = 50
)

// Score computes the relevance of one product for a query. Only the
// lowercased concatenation of name, brand and category is matched for the
// phrase and term weights; the notification number is matched separately.
func Score(p models.Product, q Query) int {
	if q.Empty() {
		return 0
	}

	haystack := strings.ToLower(p.Name + p.Brand + p.Category)

	score := 0
	if strings.Contains(haystack, q.Normalized) {
		score += weightPhraseHit
	}
	for _, term := range q.Terms {
		if strings.Contains(haystack, term) {
			score += weightTermHit
		}
	}
	if strings.Contains(strings.ToLower(p.NotifNo), q.Normalized) {
		score += weightNotifNoHit
	}
	return score
}

// Dedupe removes duplicate products by notification number, first
// occurrence wins. Candidate rows can legitimately repeat when several
// match patterns hit the same product.
func Dedupe(products []models.Product) []models.Product {
	seen := make(map[string]struct{}, len(products))
	out := products[:0:0]
	for _, p := range products {
		if _, ok := seen[p.NotifNo]; ok {
			continue
		}
		seen[p.NotifNo] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Ranked pairs a product with its relevance score.
type Ranked struct {
	Product models.Product
	Score   int
}

// Rank scores and orders candidates: score descending, status date
// descending, then notification number ascending so equal scores and dates
// still produce reproducible output.
func Rank(products []models.Product, q Query) []Ranked {
	ranked := make([]Ranked, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, Ranked{Product: p, Score: Score(p, q)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if !ranked[i].Product.StatusDate.Equal(ranked[j].Product.StatusDate) {
			return ranked[i].Product.StatusDate.After(ranked[j].Product.StatusDate)
		}
		return ranked[i].Product.NotifNo < ranked[j].Product.NotifNo
	})

	return ranked
}

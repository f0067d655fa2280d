package safety

import "cosmeticwatch/internal/models"

// Trust score weights. Low-risk ingredients add a small bonus, capped, so
// a long but mild ingredient list cannot inflate the score.
const (
	trustBase      = 100
	bannedPenalty  = 50
	highPenalty    = 25
	lowBonus       = 2
	lowBonusCap    = 10
	levelExcellent = 85
	levelGood      = 70
	levelFair      = 50
)

// TrustScore derives the 0-100 trust metric for an enriched product.
// Deterministic and order-independent: only the status and the per-risk
// counts matter. Cancelled products always score exactly 0.
func TrustScore(status models.ProductStatus, ingredients []models.IngredientInfo) models.TrustScore {
	if status == models.StatusCancelled {
		return models.TrustScore{Score: 0, Level: "dangerous"}
	}

	var banned, high, low int
	for _, ing := range ingredients {
		switch ing.RiskType {
		case models.RiskBanned:
			banned++
		case models.RiskHigh:
			high++
		case models.RiskLow:
			low++
		}
	}

	score := trustBase
	score -= bannedPenalty * banned
	score -= highPenalty * high

	bonus := lowBonus * low
	if bonus > lowBonusCap {
		bonus = lowBonusCap
	}
	score += bonus

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return models.TrustScore{Score: score, Level: trustLevel(score)}
}

func trustLevel(score int) string {
	switch {
	case score >= levelExcellent:
		return "excellent"
	case score >= levelGood:
		return "good"
	case score >= levelFair:
		return "fair"
	case score > 0:
		return "poor"
	}
	return "dangerous"
}

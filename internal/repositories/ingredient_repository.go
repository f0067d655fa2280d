package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cosmeticwatch/internal/models"
)

type IngredientRepository struct {
	pool *pgxpool.Pool
}

func NewIngredientRepository(pool *pgxpool.Pool) *IngredientRepository {
	return &IngredientRepository{pool: pool}
}

// ForProducts fetches the ingredients of every listed product in a single
// round trip and groups them by notification number. Products without
// associations get no map entry; callers must treat a missing key as an
// empty list. One query regardless of result-set size: per-product lookups
// are the N+1 pattern this method exists to prevent.
func (r *IngredientRepository) ForProducts(ctx context.Context, notifNos []string) (map[string][]models.IngredientInfo, error) {
	grouped := make(map[string][]models.IngredientInfo, len(notifNos))
	if len(notifNos) == 0 {
		return grouped, nil
	}

	query := `
		SELECT pi.prod_notif_no, i.ing_id, i.ing_name, i.ing_risk_type, i.ing_risk_summary
		FROM product_ingredients pi
		JOIN ingredients i ON i.ing_id = pi.ing_id
		WHERE pi.prod_notif_no = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, notifNos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var notifNo string
		var info models.IngredientInfo
		err := rows.Scan(&notifNo, &info.IngID, &info.Name, &info.RiskType, &info.RiskSummary)
		if err != nil {
			return nil, err
		}
		grouped[notifNo] = append(grouped[notifNo], info)
	}

	return grouped, rows.Err()
}

// ListFacets returns every ingredient for filter UIs, ordered by name.
func (r *IngredientRepository) ListFacets(ctx context.Context) ([]models.Ingredient, error) {
	query := `
		SELECT ing_id, ing_name, ing_risk_type, ing_risk_summary
		FROM ingredients
		ORDER BY ing_name, ing_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		var ing models.Ingredient
		err := rows.Scan(&ing.IngID, &ing.Name, &ing.RiskType, &ing.RiskSummary)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

// FindByName resolves an ingredient by case-insensitive substring, first
// match wins. Ordered by ing_id so an ambiguous name resolves the same way
// every time. Returns (nil, nil) when nothing matches.
func (r *IngredientRepository) FindByName(ctx context.Context, name string) (*models.Ingredient, error) {
	query := `
		SELECT ing_id, ing_name, ing_risk_type, ing_risk_summary
		FROM ingredients
		WHERE ing_name ILIKE $1
		ORDER BY ing_id
		LIMIT 1
	`

	var ing models.Ingredient
	err := r.pool.QueryRow(ctx, query, "%"+name+"%").Scan(
		&ing.IngID,
		&ing.Name,
		&ing.RiskType,
		&ing.RiskSummary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &ing, nil
}

// CancelledYearCounts groups Cancelled products containing the ingredient
// by the year of their status date. Years with no cancellations are absent
// here; the service layer gap-fills the series.
func (r *IngredientRepository) CancelledYearCounts(ctx context.Context, ingID int64) ([]models.YearCount, error) {
	query := `
		SELECT EXTRACT(YEAR FROM p.prod_status_date)::int AS year, COUNT(*)::int
		FROM product_ingredients pi
		JOIN products p ON p.prod_notif_no = pi.prod_notif_no
		WHERE pi.ing_id = $1 AND p.prod_status_type = 'Cancelled'
		GROUP BY year
		ORDER BY year
	`

	rows, err := r.pool.Query(ctx, query, ingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.YearCount
	for rows.Next() {
		var yc models.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, yc)
	}

	return counts, rows.Err()
}

// BulkUpsertIngredients inserts ingredients with conflict-skip semantics
// (ingestion collaborator and test seeding).
func (r *IngredientRepository) BulkUpsertIngredients(ctx context.Context, ingredients []models.Ingredient) error {
	for _, ing := range ingredients {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO ingredients (ing_id, ing_name, ing_risk_summary, ing_risk_type)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (ing_id) DO NOTHING
		`, ing.IngID, ing.Name, ing.RiskSummary, ing.RiskType)
		if err != nil {
			return fmt.Errorf("upsert ingredient %d: %w", ing.IngID, err)
		}
	}
	return nil
}

// BulkUpsertProductIngredients inserts association rows with conflict-skip
// semantics.
func (r *IngredientRepository) BulkUpsertProductIngredients(ctx context.Context, links []models.ProductIngredient) error {
	for _, link := range links {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO product_ingredients (prod_notif_no, ing_id)
			VALUES ($1, $2)
			ON CONFLICT (prod_notif_no, ing_id) DO NOTHING
		`, link.NotifNo, link.IngID)
		if err != nil {
			return fmt.Errorf("upsert association %s/%d: %w", link.NotifNo, link.IngID, err)
		}
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cosmeticwatch/internal/models"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `
	p.prod_notif_no, p.prod_name, p.prod_brand, p.prod_category,
	p.prod_status_type, p.prod_status_date, p.holder_id, h.holder_name
`

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.NotifNo,
		&p.Name,
		&p.Brand,
		&p.Category,
		&p.StatusType,
		&p.StatusDate,
		&p.HolderID,
		&p.HolderName,
	)
	return p, err
}

// SearchCandidates runs the disjunctive substring match against product
// name, notification number and category, with optional status and
// ingredient-containment pushdown. Rows may repeat across patterns; the
// caller deduplicates by notification number.
func (r *ProductRepository) SearchCandidates(
	ctx context.Context,
	patterns []string,
	status *models.ProductStatus,
	ingredientIDs []int64,
) ([]models.Product, error) {
	if len(patterns) == 0 {
		return []models.Product{}, nil
	}

	var (
		clauses []string
		args    []interface{}
	)
	for _, pattern := range patterns {
		args = append(args, "%"+pattern+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(p.prod_name ILIKE $%d OR p.prod_notif_no ILIKE $%d OR p.prod_category ILIKE $%d)",
			n, n, n,
		))
	}

	where := "(" + strings.Join(clauses, " OR ") + ")"

	if status != nil {
		args = append(args, *status)
		where += fmt.Sprintf(" AND p.prod_status_type = $%d", len(args))
	}
	if len(ingredientIDs) > 0 {
		args = append(args, ingredientIDs)
		where += fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM product_ingredients pi
				WHERE pi.prod_notif_no = p.prod_notif_no AND pi.ing_id = ANY($%d)
			)`, len(args))
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN holders h ON h.holder_id = p.holder_id
		WHERE ` + where + `
		ORDER BY p.prod_status_date DESC, p.prod_notif_no
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) GetByNotifNo(ctx context.Context, notifNo string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN holders h ON h.holder_id = p.holder_id
		WHERE p.prod_notif_no = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, notifNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}

// similarSelect orders every recommendation tier the same way: holders with
// the most Approved products first (trusted-brand heuristic), then the most
// recent status date.
const similarSelect = `
	SELECT
		p.prod_notif_no, p.prod_name, p.prod_brand, p.prod_category,
		p.prod_status_type, p.prod_status_date, h.holder_name,
		(
			SELECT COUNT(*) FROM products ap
			WHERE ap.holder_id = p.holder_id AND ap.prod_status_type = 'Approved'
		) AS approved_count
	FROM products p
	JOIN holders h ON h.holder_id = p.holder_id
	WHERE p.prod_status_type = 'Approved' AND p.prod_notif_no <> $1
`

const similarOrder = `
	ORDER BY approved_count DESC, p.prod_status_date DESC, p.prod_notif_no
	LIMIT $2
`

func (r *ProductRepository) querySimilar(ctx context.Context, query string, args ...interface{}) ([]models.SimilarProductResult, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.SimilarProductResult{}
	for rows.Next() {
		var s models.SimilarProductResult
		err := rows.Scan(
			&s.NotifNo,
			&s.Name,
			&s.Brand,
			&s.Category,
			&s.StatusType,
			&s.StatusDate,
			&s.HolderName,
			&s.ApprovedCount,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, s)
	}

	return results, rows.Err()
}

// SimilarByCategory is recommendation tier 1: Approved products in exactly
// the same category as the reference.
func (r *ProductRepository) SimilarByCategory(ctx context.Context, refNotifNo, category string, limit int) ([]models.SimilarProductResult, error) {
	query := similarSelect + ` AND p.prod_category = $3` + similarOrder
	return r.querySimilar(ctx, query, refNotifNo, limit, category)
}

// SimilarByBrand is tier 2: Approved products from the same brand.
func (r *ProductRepository) SimilarByBrand(ctx context.Context, refNotifNo, brand string, limit int) ([]models.SimilarProductResult, error) {
	query := similarSelect + ` AND p.prod_brand = $3` + similarOrder
	return r.querySimilar(ctx, query, refNotifNo, limit, brand)
}

// SimilarByCategoryToken is tier 3: Approved products whose category
// contains the given token (fuzzy category match).
func (r *ProductRepository) SimilarByCategoryToken(ctx context.Context, refNotifNo, token string, limit int) ([]models.SimilarProductResult, error) {
	query := similarSelect + ` AND p.prod_category ILIKE $3` + similarOrder
	return r.querySimilar(ctx, query, refNotifNo, limit, "%"+token+"%")
}

// SimilarAny is tier 4, the global fallback: any other Approved product.
func (r *ProductRepository) SimilarAny(ctx context.Context, refNotifNo string, limit int) ([]models.SimilarProductResult, error) {
	query := similarSelect + similarOrder
	return r.querySimilar(ctx, query, refNotifNo, limit)
}

// BulkUpsertHolders inserts holders with conflict-skip semantics. Corpus
// writes belong to the external ingestion collaborator; this is its entry
// point and the integration tests' seeding path.
func (r *ProductRepository) BulkUpsertHolders(ctx context.Context, holders []models.Holder) error {
	for _, h := range holders {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO holders (holder_id, holder_name)
			VALUES ($1, $2)
			ON CONFLICT (holder_id) DO NOTHING
		`, h.HolderID, h.HolderName)
		if err != nil {
			return fmt.Errorf("upsert holder %d: %w", h.HolderID, err)
		}
	}
	return nil
}

// BulkUpsertProducts inserts products with conflict-skip semantics.
func (r *ProductRepository) BulkUpsertProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO products (prod_notif_no, prod_name, prod_brand, prod_category, prod_status_type, prod_status_date, holder_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (prod_notif_no) DO NOTHING
		`, p.NotifNo, p.Name, p.Brand, p.Category, p.StatusType, p.StatusDate, p.HolderID)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.NotifNo, err)
		}
	}
	return nil
}

package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func RunMigrations(pool *pgxpool.Pool) error {
	ctx := context.Background()

	migrations := []string{
		createHoldersTable,
		createProductsTable,
		createIngredientsTable,
		createProductIngredientsTable,
	}

	for i, migration := range migrations {
		log.Printf("Running migration %d/%d", i+1, len(migrations))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Println("All migrations completed successfully")
	return nil
}

const createHoldersTable = `
CREATE TABLE IF NOT EXISTS holders (
  holder_id BIGINT PRIMARY KEY,
  holder_name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_holders_name ON holders(holder_name);
`

// prod_status_type is TEXT, not a Postgres enum: some historical ingestion
// runs wrote 'U' rows and those must keep loading as an unrecognized status.
const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
  prod_notif_no VARCHAR(15) PRIMARY KEY,
  prod_name TEXT NOT NULL,
  prod_brand TEXT NOT NULL DEFAULT '',
  prod_category TEXT NOT NULL DEFAULT '',
  prod_status_type TEXT NOT NULL,
  prod_status_date DATE NOT NULL,
  holder_id BIGINT NOT NULL REFERENCES holders(holder_id)
);

CREATE INDEX IF NOT EXISTS idx_products_holder_id ON products(holder_id);
CREATE INDEX IF NOT EXISTS idx_products_status_type ON products(prod_status_type);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(prod_category);
CREATE INDEX IF NOT EXISTS idx_products_brand ON products(prod_brand);
CREATE INDEX IF NOT EXISTS idx_products_status_date ON products(prod_status_date);
`

const createIngredientsTable = `
CREATE TABLE IF NOT EXISTS ingredients (
  ing_id BIGINT PRIMARY KEY,
  ing_name TEXT NOT NULL,
  ing_risk_summary TEXT NOT NULL DEFAULT '',
  ing_risk_type TEXT NOT NULL DEFAULT 'NoData'
);

CREATE INDEX IF NOT EXISTS idx_ingredients_name ON ingredients(ing_name);
CREATE INDEX IF NOT EXISTS idx_ingredients_risk_type ON ingredients(ing_risk_type);
`

const createProductIngredientsTable = `
CREATE TABLE IF NOT EXISTS product_ingredients (
  prod_notif_no VARCHAR(15) NOT NULL REFERENCES products(prod_notif_no) ON DELETE CASCADE,
  ing_id BIGINT NOT NULL REFERENCES ingredients(ing_id) ON DELETE CASCADE,
  PRIMARY KEY (prod_notif_no, ing_id)
);

CREATE INDEX IF NOT EXISTS idx_product_ingredients_ing_id ON product_ingredients(ing_id);
`

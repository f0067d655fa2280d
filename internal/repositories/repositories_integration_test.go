package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"cosmeticwatch/internal/database"
	"cosmeticwatch/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("cosmeticwatch_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(pool))
	return pool
}

func seedCorpus(t *testing.T, products *ProductRepository, ingredients *IngredientRepository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, products.BulkUpsertHolders(ctx, []models.Holder{
		{HolderID: 1, HolderName: "Glow Labs"},
		{HolderID: 2, HolderName: "Pure Beauty"},
		{HolderID: 3, HolderName: "Budget Cosmetics"},
	}))

	require.NoError(t, products.BulkUpsertProducts(ctx, []models.Product{
		{NotifNo: "NOT0001", Name: "Retinol Night Cream", Brand: "GlowCo", Category: "Skincare", StatusType: models.StatusApproved, StatusDate: date(2023, time.May, 1), HolderID: 1},
		{NotifNo: "NOT0002", Name: "Retinol Day Cream", Brand: "GlowCo", Category: "Skincare", StatusType: models.StatusApproved, StatusDate: date(2023, time.June, 1), HolderID: 1},
		{NotifNo: "NOT0003", Name: "Whitening Serum", Brand: "Fairify", Category: "Skincare", StatusType: models.StatusCancelled, StatusDate: date(2019, time.March, 1), HolderID: 2},
		{NotifNo: "NOT0004", Name: "Lip Tint", Brand: "Fairify", Category: "Makeup", StatusType: models.StatusApproved, StatusDate: date(2022, time.January, 1), HolderID: 2},
		{NotifNo: "NOT0005", Name: "Mercury Soap", Brand: "Cheapo", Category: "Soap", StatusType: models.StatusCancelled, StatusDate: date(2021, time.July, 1), HolderID: 3},
		{NotifNo: "NOT0006", Name: "Another Whitener", Brand: "Cheapo", Category: "Skincare", StatusType: models.StatusCancelled, StatusDate: date(2019, time.August, 1), HolderID: 3},
	}))

	require.NoError(t, ingredients.BulkUpsertIngredients(ctx, []models.Ingredient{
		{IngID: 1, Name: "Mercury", RiskType: models.RiskBanned, RiskSummary: "Heavy metal, prohibited."},
		{IngID: 2, Name: "Hydroquinone", RiskType: models.RiskHigh, RiskSummary: "Restricted bleaching agent."},
		{IngID: 3, Name: "Niacinamide", RiskType: models.RiskLow, RiskSummary: "Generally well tolerated."},
		{IngID: 4, Name: "Aqua", RiskType: models.RiskNoData, RiskSummary: ""},
	}))

	require.NoError(t, ingredients.BulkUpsertProductIngredients(ctx, []models.ProductIngredient{
		{NotifNo: "NOT0001", IngID: 3},
		{NotifNo: "NOT0001", IngID: 4},
		{NotifNo: "NOT0003", IngID: 1},
		{NotifNo: "NOT0003", IngID: 2},
		{NotifNo: "NOT0005", IngID: 1},
		{NotifNo: "NOT0006", IngID: 1},
	}))
}

func TestRepositoriesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool := startPostgres(t)
	products := NewProductRepository(pool)
	ingredients := NewIngredientRepository(pool)
	seedCorpus(t, products, ingredients)
	ctx := context.Background()

	t.Run("upserts skip conflicting rows", func(t *testing.T) {
		err := products.BulkUpsertProducts(ctx, []models.Product{
			{NotifNo: "NOT0001", Name: "Renamed", Brand: "X", Category: "Y", StatusType: models.StatusCancelled, StatusDate: date(2024, time.January, 1), HolderID: 1},
		})
		require.NoError(t, err)

		p, err := products.GetByNotifNo(ctx, "NOT0001")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Retinol Night Cream", p.Name)
	})

	t.Run("search candidates matches name substring case-insensitively", func(t *testing.T) {
		results, err := products.SearchCandidates(ctx, []string{"retinol"}, nil, nil)
		require.NoError(t, err)

		notifNos := map[string]bool{}
		for _, p := range results {
			notifNos[p.NotifNo] = true
		}
		assert.True(t, notifNos["NOT0001"])
		assert.True(t, notifNos["NOT0002"])
		assert.False(t, notifNos["NOT0003"])
	})

	t.Run("search candidates matches notification number and category", func(t *testing.T) {
		results, err := products.SearchCandidates(ctx, []string{"not0005"}, nil, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "NOT0005", results[0].NotifNo)
		assert.Equal(t, "Budget Cosmetics", results[0].HolderName)

		results, err = products.SearchCandidates(ctx, []string{"makeup"}, nil, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "NOT0004", results[0].NotifNo)
	})

	t.Run("status and ingredient pushdown restrict candidates", func(t *testing.T) {
		approved := models.StatusApproved
		results, err := products.SearchCandidates(ctx, []string{"skincare"}, &approved, nil)
		require.NoError(t, err)
		for _, p := range results {
			assert.Equal(t, models.StatusApproved, p.StatusType)
		}

		results, err = products.SearchCandidates(ctx, []string{"retinol"}, nil, []int64{3})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "NOT0001", results[0].NotifNo)
	})

	t.Run("get by notification number", func(t *testing.T) {
		p, err := products.GetByNotifNo(ctx, "NOT0003")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Pure Beauty", p.HolderName)
		assert.Equal(t, models.StatusCancelled, p.StatusType)

		missing, err := products.GetByNotifNo(ctx, "NOPE999")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("batched enrichment groups by product", func(t *testing.T) {
		grouped, err := ingredients.ForProducts(ctx, []string{"NOT0001", "NOT0002", "NOT0003"})
		require.NoError(t, err)

		assert.Len(t, grouped["NOT0001"], 2)
		assert.Len(t, grouped["NOT0003"], 2)
		_, hasEmpty := grouped["NOT0002"]
		assert.False(t, hasEmpty) // no association rows, no entry

		empty, err := ingredients.ForProducts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("ingredient lookup is substring, first match by id", func(t *testing.T) {
		ing, err := ingredients.FindByName(ctx, "mercu")
		require.NoError(t, err)
		require.NotNil(t, ing)
		assert.Equal(t, int64(1), ing.IngID)
		assert.Equal(t, "Mercury", ing.Name)

		missing, err := ingredients.FindByName(ctx, "unobtainium")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("cancelled year counts group by status year", func(t *testing.T) {
		counts, err := ingredients.CancelledYearCounts(ctx, 1)
		require.NoError(t, err)

		// NOT0003 and NOT0006 cancelled in 2019, NOT0005 in 2021.
		assert.Equal(t, []models.YearCount{
			{Year: 2019, Count: 2},
			{Year: 2021, Count: 1},
		}, counts)
	})

	t.Run("similar products order by holder approved count then recency", func(t *testing.T) {
		results, err := products.SimilarAny(ctx, "NOT0003", 10)
		require.NoError(t, err)

		require.Len(t, results, 3)
		// Glow Labs holds two Approved products, Pure Beauty one.
		assert.Equal(t, "NOT0002", results[0].NotifNo) // count 2, newest
		assert.Equal(t, "NOT0001", results[1].NotifNo) // count 2
		assert.Equal(t, "NOT0004", results[2].NotifNo) // count 1
		assert.Equal(t, int64(2), results[0].ApprovedCount)
	})

	t.Run("similar by category excludes the reference", func(t *testing.T) {
		results, err := products.SimilarByCategory(ctx, "NOT0001", "Skincare", 10)
		require.NoError(t, err)

		require.Len(t, results, 1) // only NOT0002 is Approved Skincare
		assert.Equal(t, "NOT0002", results[0].NotifNo)
	})

	t.Run("similar by fuzzy category token", func(t *testing.T) {
		results, err := products.SimilarByCategoryToken(ctx, "NOT0005", "ski", 10)
		require.NoError(t, err)

		for _, r := range results {
			assert.Equal(t, models.StatusApproved, r.StatusType)
			assert.NotEqual(t, "NOT0005", r.NotifNo)
		}
		assert.Len(t, results, 2)
	})

	t.Run("facets list every ingredient ordered by name", func(t *testing.T) {
		facets, err := ingredients.ListFacets(ctx)
		require.NoError(t, err)

		require.Len(t, facets, 4)
		assert.Equal(t, "Aqua", facets[0].Name)
		assert.Equal(t, "Niacinamide", facets[3].Name)
	})
}

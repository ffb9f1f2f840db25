package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
	mongodb "github.com/stylehub/backend/internal/infrastructure/persistence/mongo"
)

// TestMain runs before any tests and handles container cleanup
func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

func newTestVariant(t *testing.T, productID uuid.UUID, sku, actualColor string, price float64) *catalog.ProductVariant {
	t.Helper()
	variant, err := catalog.NewProductVariant(
		productID,
		sku,
		decimal.NewFromFloat(price),
		catalog.Color{BaseColor: "blue", ActualColor: actualColor, ColorName: actualColor},
		[]catalog.SizeStock{{Size: catalog.SizeM, Stock: 5}},
	)
	require.NoError(t, err)
	return variant
}

func TestCategoryRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := mongodb.NewMongoCategoryRepository(testDB.DB)
	ctx := context.Background()

	root, err := catalog.NewCategory("Women", 1, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, root))

	child, err := catalog.NewCategory("Dresses", 2, root)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, child))

	t.Run("FindByID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dresses", found.Name)
		assert.Equal(t, 2, found.Level)
		require.NotNil(t, found.ParentID)
		assert.Equal(t, root.ID, *found.ParentID)
	})

	t.Run("FindByID not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindAll by level", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["level"] = 1
		categories, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, root.ID, categories[0].ID)
	})

	t.Run("FindAll name substring is case-insensitive", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "dress"
		categories, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, child.ID, categories[0].ID)
	})

	t.Run("FindChildren", func(t *testing.T) {
		children, err := repo.FindChildren(ctx, root.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, child.ID, children[0].ID)
	})

	t.Run("Save updates existing document", func(t *testing.T) {
		require.NoError(t, child.Rename("Evening Dresses"))
		require.NoError(t, repo.Save(ctx, child))

		found, err := repo.FindByID(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, "Evening Dresses", found.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		doomed, err := catalog.NewCategory("Outlet", 1, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, doomed))
		require.NoError(t, repo.Delete(ctx, doomed.ID))

		_, err = repo.FindByID(ctx, doomed.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := mongodb.NewMongoProductRepository(testDB.DB)
	ctx := context.Background()
	categoryID := uuid.New()

	first, err := catalog.NewProduct("Linen Shirt", "LIN-SHIRT-01", categoryID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := catalog.NewProduct("Linen Trousers", "LIN-TROUSERS-01", categoryID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	other, err := catalog.NewProduct("Wool Coat", "WOOL-COAT-01", uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("FindAll by category", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["category_id"] = categoryID
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("FindAll paginates and sorts at the store", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 2
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Linen Shirt", products[0].Name)
		assert.Equal(t, "Linen Trousers", products[1].Name)
	})

	t.Run("Search matches name and sku", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "wool"
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, other.ID, products[0].ID)
	})

	t.Run("FindAll conjoins name and sku filters", func(t *testing.T) {
		// "linen" matches both linen products by name; the sku filter
		// narrows the result to the shirt alone.
		filter := shared.DefaultFilter()
		filter.Filters["name"] = "linen"
		filter.Filters["sku"] = "shirt"
		products, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, first.ID, products[0].ID)
	})

	t.Run("CountByCategory", func(t *testing.T) {
		count, err := repo.CountByCategory(ctx, categoryID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("DeleteByIDs reports removed documents", func(t *testing.T) {
		deleted, err := repo.DeleteByIDs(ctx, []uuid.UUID{first.ID, second.ID, uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		_, err = repo.FindByID(ctx, first.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestVariantRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := mongodb.NewMongoVariantRepository(testDB.DB)
	ctx := context.Background()

	productA := uuid.New()
	productB := uuid.New()

	navy := newTestVariant(t, productA, "VAR-NAVY", "navy", 79.90)
	require.NoError(t, repo.Save(ctx, navy))
	sky := newTestVariant(t, productA, "VAR-SKY", "sky", 59.90)
	require.NoError(t, repo.Save(ctx, sky))
	teal := newTestVariant(t, productB, "VAR-TEAL", "teal", 119.00)
	require.NoError(t, repo.Save(ctx, teal))

	t.Run("FindByProductIDs batches across products", func(t *testing.T) {
		variants, err := repo.FindByProductIDs(ctx, []uuid.UUID{productA, productB})
		require.NoError(t, err)
		assert.Len(t, variants, 3)
	})

	t.Run("FindByProductID returns oldest first", func(t *testing.T) {
		variants, err := repo.FindByProductID(ctx, productA)
		require.NoError(t, err)
		require.Len(t, variants, 2)
		assert.Equal(t, navy.ID, variants[0].ID)
	})

	t.Run("FindAll price range", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["min_price"] = decimal.NewFromInt(70)
		filter.Filters["max_price"] = decimal.NewFromInt(120)
		variants, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, variants, 2)
	})

	t.Run("DistinctProductIDs", func(t *testing.T) {
		ids, err := repo.DistinctProductIDs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{productA, productB}, ids)
	})

	t.Run("CountByProductID", func(t *testing.T) {
		count, err := repo.CountByProductID(ctx, productA)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("DeleteByProductIDs cascades in one operation", func(t *testing.T) {
		deleted, err := repo.DeleteByProductIDs(ctx, []uuid.UUID{productA})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		remaining, err := repo.FindByProductIDs(ctx, []uuid.UUID{productA, productB})
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}

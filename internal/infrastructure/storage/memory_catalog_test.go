package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

func TestMemoryCatalogRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("seed is loaded in order", func(t *testing.T) {
		repo := NewMemoryCatalogRepository(DefaultCatalog())

		products, err := repo.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 10)
		assert.Equal(t, 1, products[0].ID)
		assert.Equal(t, 10, products[9].ID)
		assert.False(t, products[0].CreatedAt.IsZero())
	})

	t.Run("returned products are copies", func(t *testing.T) {
		repo := NewMemoryCatalogRepository(DefaultCatalog())

		p, err := repo.GetProduct(ctx, 1)
		require.NoError(t, err)
		p.Stock = 0
		p.CompatibleModels[0] = "Changed"

		again, err := repo.GetProduct(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 100, again.Stock)
		assert.Equal(t, "Camry", again.CompatibleModels[0])
	})

	t.Run("missing product", func(t *testing.T) {
		repo := NewMemoryCatalogRepository(DefaultCatalog())

		_, err := repo.GetProduct(ctx, 99)
		assert.ErrorIs(t, err, entity.ErrProductNotFound)
		assert.ErrorIs(t, repo.DeleteProduct(ctx, 99), entity.ErrProductNotFound)
	})

	t.Run("insert prepends with a fresh id", func(t *testing.T) {
		repo := NewMemoryCatalogRepository(DefaultCatalog())

		created, err := repo.InsertProduct(ctx, entity.Product{Name: "Wiper Blade", Price: 9.5})
		require.NoError(t, err)
		assert.Equal(t, 11, created.ID)

		products, _ := repo.ListProducts(ctx)
		assert.Equal(t, 11, products[0].ID)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		repo := NewMemoryCatalogRepository(DefaultCatalog())

		require.NoError(t, repo.DeleteProduct(ctx, 10))
		created, err := repo.InsertProduct(ctx, entity.Product{Name: "Fuse Kit"})
		require.NoError(t, err)
		assert.Equal(t, 11, created.ID)
	})

	t.Run("stock clamps at zero", func(t *testing.T) {
		repo := NewMemoryCatalogRepository(DefaultCatalog())

		p, err := repo.UpdateStock(ctx, 7, func(int) int { return 0 })
		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock)

		p, err = repo.UpdateStock(ctx, 7, func(current int) int { return current - 1 })
		require.NoError(t, err)
		assert.Equal(t, 0, p.Stock)
	})

	t.Run("brand and category ids are max plus one", func(t *testing.T) {
		repo := NewMemoryCatalogRepository(entity.Catalog{
			Brands:     []entity.Brand{{ID: 3, Name: "BMW"}, {ID: 7, Name: "Kia"}},
			Categories: []entity.Category{},
		})

		b, err := repo.InsertBrand(ctx, entity.Brand{Name: "Mazda"})
		require.NoError(t, err)
		assert.Equal(t, 8, b.ID)

		c, err := repo.InsertCategory(ctx, entity.Category{Name: "Tyres"})
		require.NoError(t, err)
		assert.Equal(t, 1, c.ID)
	})

	t.Run("replace restores the dataset", func(t *testing.T) {
		repo := NewMemoryCatalogRepository(DefaultCatalog())
		require.NoError(t, repo.DeleteProduct(ctx, 1))

		require.NoError(t, repo.Replace(ctx, DefaultCatalog()))
		snap, err := repo.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, snap.Products, 10)
		assert.Len(t, snap.Brands, 5)
		assert.Len(t, snap.Categories, 5)
	})
}

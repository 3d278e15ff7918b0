package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/infrastructure/storage"
)

func TestFilterProducts(t *testing.T) {
	products := storage.DefaultCatalog().Products

	tests := []struct {
		name    string
		filter  entity.ProductFilter
		wantIDs []int
	}{
		{"no criteria keeps everything", entity.ProductFilter{}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"search by name is case-insensitive", entity.ProductFilter{Search: "BRAKE"}, []int{1}},
		{"search by sku", entity.ProductFilter{Search: "elec-"}, []int{7, 10}},
		{"search by compatible model", entity.ProductFilter{Search: "civic"}, []int{4, 9}},
		{"search is trimmed", entity.ProductFilter{Search: "  camry "}, []int{1, 7}},
		{"category", entity.ProductFilter{CategoryID: 3}, []int{3, 7, 10}},
		{"brand", entity.ProductFilter{BrandID: 1}, []int{1, 2, 7}},
		{"criteria are and-ed", entity.ProductFilter{CategoryID: 3, BrandID: 1}, []int{7}},
		{"search and brand", entity.ProductFilter{Search: "universal", BrandID: 3}, []int{8}},
		{"no match", entity.ProductFilter{Search: "turbocharger"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(products, tt.filter)
			require.NotNil(t, got)

			ids := make([]int, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterProductsSubsetProperty(t *testing.T) {
	products := storage.DefaultCatalog().Products
	filters := []entity.ProductFilter{
		{Search: "a"}, {Search: "e", CategoryID: 1}, {BrandID: 2}, {Search: "x", BrandID: 4, CategoryID: 3},
	}

	for _, f := range filters {
		got := FilterProducts(products, f)

		// order preserving subsequence
		j := 0
		for _, p := range got {
			for j < len(products) && products[j].ID != p.ID {
				j++
			}
			require.Less(t, j, len(products), "result is not a subsequence for %+v", f)
			j++
		}

		for _, p := range got {
			if f.CategoryID != 0 {
				assert.Equal(t, f.CategoryID, p.CategoryID)
			}
			if f.BrandID != 0 {
				assert.Equal(t, f.BrandID, p.BrandID)
			}
			if f.Search != "" {
				q := strings.ToLower(f.Search)
				hit := strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q)
				for _, m := range p.CompatibleModels {
					hit = hit || strings.Contains(strings.ToLower(m), q)
				}
				assert.True(t, hit, p.Name)
			}
		}
	}
}

func TestCatalogUseCase(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("product detail resolves brand and category", func(t *testing.T) {
		detail, err := env.catalog.GetProduct(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "BMW", detail.Brand.Name)
		assert.Equal(t, "Electrical & Lighting", detail.Category.Name)
		assert.Equal(t, entity.StockIn, detail.Status)
	})

	t.Run("dangling references are tolerated", func(t *testing.T) {
		created, err := env.catalogRepo.InsertProduct(ctx, entity.Product{Name: "Orphan", BrandID: 99, CategoryID: 99, Stock: 3})
		require.NoError(t, err)

		detail, err := env.catalog.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, detail.Brand)
		assert.Nil(t, detail.Category)
		assert.Equal(t, entity.StockLow, detail.Status)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := env.catalog.GetProduct(ctx, 404)
		assert.ErrorIs(t, err, entity.ErrProductNotFound)
	})

	t.Run("featured", func(t *testing.T) {
		featured, err := env.catalog.Featured(ctx)
		require.NoError(t, err)
		for _, p := range featured {
			assert.True(t, p.IsFeatured)
		}
		assert.Len(t, featured, 4)
	})

	t.Run("deleted product disappears from filter results", func(t *testing.T) {
		before, err := env.catalog.List(ctx, entity.ProductFilter{Search: "brake"})
		require.NoError(t, err)
		require.Len(t, before, 1)

		require.NoError(t, env.admin.DeleteProduct(ctx, testAdmin, 1))

		after, err := env.catalog.List(ctx, entity.ProductFilter{Search: "brake"})
		require.NoError(t, err)
		assert.Empty(t, after)
	})
}

package repository

import (
	"context"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

// CatalogRepository products, brands va categories bilan ishlash uchun interface.
// Implementations hand out copies; mutation only happens through these methods.
type CatalogRepository interface {
	// ListProducts all products in catalog order (newest admin additions first)
	ListProducts(ctx context.Context) ([]entity.Product, error)

	// GetProduct ID bo'yicha mahsulotni olish
	GetProduct(ctx context.Context, id int) (*entity.Product, error)

	// InsertProduct assigns a new unique id and puts the product at the front
	InsertProduct(ctx context.Context, product entity.Product) (entity.Product, error)

	// UpdateStock applies fn to the current stock; negative results are clamped to 0
	UpdateStock(ctx context.Context, id int, fn func(current int) int) (entity.Product, error)

	// DeleteProduct mahsulotni o'chirish
	DeleteProduct(ctx context.Context, id int) error

	ListBrands(ctx context.Context) ([]entity.Brand, error)
	GetBrand(ctx context.Context, id int) (*entity.Brand, error)

	// InsertBrand assigns id = max existing id + 1
	InsertBrand(ctx context.Context, brand entity.Brand) (entity.Brand, error)

	ListCategories(ctx context.Context) ([]entity.Category, error)
	GetCategory(ctx context.Context, id int) (*entity.Category, error)

	// InsertCategory assigns id = max existing id + 1
	InsertCategory(ctx context.Context, category entity.Category) (entity.Category, error)

	// Replace butun katalogni almashtirish (seed / reset)
	Replace(ctx context.Context, catalog entity.Catalog) error

	// Snapshot copy of the whole catalog
	Snapshot(ctx context.Context) (entity.Catalog, error)
}

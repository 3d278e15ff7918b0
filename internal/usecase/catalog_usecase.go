package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
)

// FilterProducts returns, in input order, the products matching every
// non-empty criterion of f. The result is never nil.
func FilterProducts(products []entity.Product, f entity.ProductFilter) []entity.Product {
	result := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			result = append(result, p)
		}
	}
	return result
}

// CatalogUseCase katalogni ko'rish bilan bog'liq business logic
type CatalogUseCase interface {
	// List filtered products in catalog order
	List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)

	// GetProduct product with its brand and category resolved
	GetProduct(ctx context.Context, id int) (*entity.ProductDetail, error)

	// Featured bosh sahifadagi mahsulotlar
	Featured(ctx context.Context) ([]entity.Product, error)

	Brands(ctx context.Context) ([]entity.Brand, error)
	Categories(ctx context.Context) ([]entity.Category, error)
}

type catalogUseCase struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogUseCase yangi CatalogUseCase yaratish
func NewCatalogUseCase(catalogRepo repository.CatalogRepository) CatalogUseCase {
	return &catalogUseCase{catalogRepo: catalogRepo}
}

// List mahsulotlarni filtrlash
func (u *catalogUseCase) List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	products, err := u.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return FilterProducts(products, filter), nil
}

// GetProduct mahsulot tafsilotlari
func (u *catalogUseCase) GetProduct(ctx context.Context, id int) (*entity.ProductDetail, error) {
	product, err := u.catalogRepo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entity.ProductDetail{Product: *product, Status: product.StockStatus()}

	// dangling brand/category references are tolerated
	brand, err := u.catalogRepo.GetBrand(ctx, product.BrandID)
	switch {
	case err == nil:
		detail.Brand = brand
	case !errors.Is(err, entity.ErrBrandNotFound):
		return nil, err
	}

	category, err := u.catalogRepo.GetCategory(ctx, product.CategoryID)
	switch {
	case err == nil:
		detail.Category = category
	case !errors.Is(err, entity.ErrCategoryNotFound):
		return nil, err
	}

	return detail, nil
}

// Featured tanlangan mahsulotlar
func (u *catalogUseCase) Featured(ctx context.Context) ([]entity.Product, error) {
	products, err := u.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	featured := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// Brands barcha brendlar
func (u *catalogUseCase) Brands(ctx context.Context) ([]entity.Brand, error) {
	return u.catalogRepo.ListBrands(ctx)
}

// Categories barcha kategoriyalar
func (u *catalogUseCase) Categories(ctx context.Context) ([]entity.Category, error) {
	return u.catalogRepo.ListCategories(ctx)
}

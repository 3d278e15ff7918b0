package repository

import (
	"context"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

// CatalogSpreadsheet Excel fayllarni o'qish va yozish uchun interface
type CatalogSpreadsheet interface {
	// ParseProductsFromBytes byte array dan parse qilish
	ParseProductsFromBytes(ctx context.Context, data []byte) ([]entity.ProductDraft, error)

	// ExportProducts writes the catalog to an xlsx workbook
	ExportProducts(ctx context.Context, catalog entity.Catalog) ([]byte, error)
}

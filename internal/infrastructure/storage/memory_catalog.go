package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
)

type memoryCatalogRepository struct {
	mu         sync.RWMutex
	products   []entity.Product // catalog order
	brands     []entity.Brand
	categories []entity.Category
	nextID     int // product ids are never reused, even after deletion
}

// NewMemoryCatalogRepository in-memory catalog repository yaratish
func NewMemoryCatalogRepository(seed entity.Catalog) repository.CatalogRepository {
	m := &memoryCatalogRepository{}
	m.load(seed)
	return m
}

func (m *memoryCatalogRepository) load(catalog entity.Catalog) {
	now := time.Now()

	m.products = make([]entity.Product, 0, len(catalog.Products))
	m.nextID = 1
	for _, p := range catalog.Products {
		p = p.Clone()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.Stock < 0 {
			p.Stock = 0
		}
		m.products = append(m.products, p)
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	m.brands = append([]entity.Brand(nil), catalog.Brands...)
	m.categories = append([]entity.Category(nil), catalog.Categories...)
}

// ListProducts barcha mahsulotlarni olish
func (m *memoryCatalogRepository) ListProducts(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, len(m.products))
	for i, p := range m.products {
		products[i] = p.Clone()
	}
	return products, nil
}

// GetProduct ID bo'yicha mahsulotni olish
func (m *memoryCatalogRepository) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("product %d: %w", id, entity.ErrProductNotFound)
	}
	p := m.products[idx].Clone()
	return &p, nil
}

// InsertProduct yangi mahsulot qo'shish
func (m *memoryCatalogRepository) InsertProduct(ctx context.Context, product entity.Product) (entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product = product.Clone()
	product.ID = m.nextID
	m.nextID++
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	m.products = append([]entity.Product{product}, m.products...)
	return product.Clone(), nil
}

// UpdateStock ombordagi sonni yangilash
func (m *memoryCatalogRepository) UpdateStock(ctx context.Context, id int, fn func(current int) int) (entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return entity.Product{}, fmt.Errorf("product %d: %w", id, entity.ErrProductNotFound)
	}

	stock := fn(m.products[idx].Stock)
	if stock < 0 {
		stock = 0
	}
	m.products[idx].Stock = stock
	return m.products[idx].Clone(), nil
}

// DeleteProduct mahsulotni o'chirish
func (m *memoryCatalogRepository) DeleteProduct(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("product %d: %w", id, entity.ErrProductNotFound)
	}
	m.products = append(m.products[:idx], m.products[idx+1:]...)
	return nil
}

// ListBrands barcha brendlar
func (m *memoryCatalogRepository) ListBrands(ctx context.Context) ([]entity.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]entity.Brand(nil), m.brands...), nil
}

// GetBrand ID bo'yicha brend
func (m *memoryCatalogRepository) GetBrand(ctx context.Context, id int) (*entity.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, b := range m.brands {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("brand %d: %w", id, entity.ErrBrandNotFound)
}

// InsertBrand yangi brend qo'shish
func (m *memoryCatalogRepository) InsertBrand(ctx context.Context, brand entity.Brand) (entity.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	maxID := 0
	for _, b := range m.brands {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	brand.ID = maxID + 1
	m.brands = append(m.brands, brand)
	return brand, nil
}

// ListCategories barcha kategoriyalar
func (m *memoryCatalogRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]entity.Category(nil), m.categories...), nil
}

// GetCategory ID bo'yicha kategoriya
func (m *memoryCatalogRepository) GetCategory(ctx context.Context, id int) (*entity.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %d: %w", id, entity.ErrCategoryNotFound)
}

// InsertCategory yangi kategoriya qo'shish
func (m *memoryCatalogRepository) InsertCategory(ctx context.Context, category entity.Category) (entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	maxID := 0
	for _, c := range m.categories {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	category.ID = maxID + 1
	m.categories = append(m.categories, category)
	return category, nil
}

// Replace butun katalogni almashtirish
func (m *memoryCatalogRepository) Replace(ctx context.Context, catalog entity.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.load(catalog)
	return nil
}

// Snapshot katalog nusxasi
func (m *memoryCatalogRepository) Snapshot(ctx context.Context) (entity.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, len(m.products))
	for i, p := range m.products {
		products[i] = p.Clone()
	}
	return entity.Catalog{
		Products:   products,
		Brands:     append([]entity.Brand(nil), m.brands...),
		Categories: append([]entity.Category(nil), m.categories...),
	}, nil
}

// caller holds m.mu
func (m *memoryCatalogRepository) indexOf(id int) int {
	for i, p := range m.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

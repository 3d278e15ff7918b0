package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"go.uber.org/zap"
)

const (
	DefaultCompatibleModel = "Universal"
	defaultBrandCountry    = "Unknown"
	defaultCategoryIcon    = "Settings"
	uncategorized          = "Uncategorized"
)

// PriceConverter converts prices entered in a display currency to USD
type PriceConverter interface {
	ToCanonical(amount float64, code entity.CurrencyCode) (float64, error)
}

// AdminUseCase admin bilan bog'liq business logic. Every method requires an
// admin actor and fails with entity.ErrForbidden otherwise.
type AdminUseCase interface {
	// Search name yoki SKU bo'yicha qidirish
	Search(ctx context.Context, actor *entity.User, query string) ([]entity.Product, error)

	// CreateProduct adds a product at the front of the catalog. The price is
	// taken as entered in currency and stored in USD.
	CreateProduct(ctx context.Context, actor *entity.User, draft entity.ProductDraft, currency entity.CurrencyCode) (entity.Product, error)

	// AdjustStock adds delta to the stock, clamping at zero
	AdjustStock(ctx context.Context, actor *entity.User, id, delta int) (entity.Product, error)

	// SetStock sets the stock, clamping at zero
	SetStock(ctx context.Context, actor *entity.User, id, stock int) (entity.Product, error)

	// DeleteProduct mahsulotni butunlay o'chirish
	DeleteProduct(ctx context.Context, actor *entity.User, id int) error

	CreateBrand(ctx context.Context, actor *entity.User, name string) (entity.Brand, error)
	CreateCategory(ctx context.Context, actor *entity.User, name string) (entity.Category, error)

	// ImportCatalog Excel fayldan mahsulotlarni qo'shish
	ImportCatalog(ctx context.Context, actor *entity.User, fileData []byte, filename string) (int, error)

	// ExportCatalog katalogni Excel faylga yozish
	ExportCatalog(ctx context.Context, actor *entity.User) ([]byte, error)

	// CatalogInfo katalog haqida ma'lumot
	CatalogInfo(ctx context.Context, actor *entity.User) (entity.CatalogInfo, error)

	// Actions audit log, newest first
	Actions(ctx context.Context, actor *entity.User, limit int) ([]entity.AdminAction, error)

	// Reset restores the seed catalog and clears advisor histories
	Reset(ctx context.Context, actor *entity.User) error
}

type adminUseCase struct {
	catalogRepo repository.CatalogRepository
	auditRepo   repository.AuditRepository
	chatRepo    repository.ChatRepository
	spreadsheet repository.CatalogSpreadsheet
	prices      PriceConverter
	seed        entity.Catalog
	placeholder string
	metrics     StoreMetrics
	log         *zap.Logger
}

// AdminDeps AdminUseCase dependencies
type AdminDeps struct {
	Catalog          repository.CatalogRepository
	Audit            repository.AuditRepository
	Chat             repository.ChatRepository
	Spreadsheet      repository.CatalogSpreadsheet
	Prices           PriceConverter
	Seed             entity.Catalog
	PlaceholderImage string
	Metrics          StoreMetrics
	Logger           *zap.Logger
}

// NewAdminUseCase yangi AdminUseCase yaratish
func NewAdminUseCase(deps AdminDeps) AdminUseCase {
	return &adminUseCase{
		catalogRepo: deps.Catalog,
		auditRepo:   deps.Audit,
		chatRepo:    deps.Chat,
		spreadsheet: deps.Spreadsheet,
		prices:      deps.Prices,
		seed:        deps.Seed,
		placeholder: deps.PlaceholderImage,
		metrics:     metricsOrNop(deps.Metrics),
		log:         logger.OrNop(deps.Logger),
	}
}

func (u *adminUseCase) authorize(actor *entity.User) error {
	if !actor.IsAdmin() {
		u.log.Warn("admin operation rejected")
		return entity.ErrForbidden
	}
	return nil
}

// logAction harakatni audit logga yozish
func (u *adminUseCase) logAction(ctx context.Context, actor *entity.User, action, details string) {
	u.metrics.AdminAction(action)
	u.log.Info("admin action",
		zap.String("user", actor.Email),
		zap.String("action", action),
		zap.String("details", details),
	)

	err := u.auditRepo.LogAction(ctx, entity.AdminAction{
		ID:        uuid.New().String(),
		UserEmail: actor.Email,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
	if err != nil {
		u.log.Error("failed to write audit log", zap.Error(err))
	}
}

// Search mahsulot qidirish
func (u *adminUseCase) Search(ctx context.Context, actor *entity.User, query string) ([]entity.Product, error) {
	if err := u.authorize(actor); err != nil {
		return nil, err
	}

	products, err := u.catalogRepo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products, nil
	}
	result := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q) {
			result = append(result, p)
		}
	}
	return result, nil
}

// CreateProduct yangi mahsulot qo'shish
func (u *adminUseCase) CreateProduct(ctx context.Context, actor *entity.User, draft entity.ProductDraft, currency entity.CurrencyCode) (entity.Product, error) {
	if err := u.authorize(actor); err != nil {
		return entity.Product{}, err
	}

	product, err := u.buildProduct(ctx, actor, draft, currency)
	if err != nil {
		return entity.Product{}, err
	}

	created, err := u.catalogRepo.InsertProduct(ctx, product)
	if err != nil {
		return entity.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	u.logAction(ctx, actor, "create_product", fmt.Sprintf("#%d %s (%s)", created.ID, created.Name, created.SKU))
	return created, nil
}

// validateDraft has no side effects; it returns the canonical price
func (u *adminUseCase) validateDraft(draft entity.ProductDraft, currency entity.CurrencyCode) (float64, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return 0, fmt.Errorf("name is required: %w", entity.ErrInvalidProduct)
	}
	if draft.Price < 0 {
		return 0, fmt.Errorf("price must not be negative: %w", entity.ErrInvalidProduct)
	}
	if draft.Stock < 0 {
		return 0, fmt.Errorf("stock must not be negative: %w", entity.ErrInvalidProduct)
	}
	return u.prices.ToCanonical(draft.Price, currency)
}

// buildProduct may create the draft's brand and category
func (u *adminUseCase) buildProduct(ctx context.Context, actor *entity.User, draft entity.ProductDraft, currency entity.CurrencyCode) (entity.Product, error) {
	price, err := u.validateDraft(draft, currency)
	if err != nil {
		return entity.Product{}, err
	}
	name := strings.TrimSpace(draft.Name)

	categoryID, err := u.resolveCategory(ctx, actor, draft)
	if err != nil {
		return entity.Product{}, err
	}
	brandID, err := u.resolveBrand(ctx, actor, draft)
	if err != nil {
		return entity.Product{}, err
	}

	imageURL := strings.TrimSpace(draft.ImageURL)
	if imageURL == "" {
		imageURL = u.placeholder
	}

	models := make([]string, 0, len(draft.CompatibleModels))
	for _, m := range draft.CompatibleModels {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		models = []string{DefaultCompatibleModel}
	}

	return entity.Product{
		Name:             name,
		Slug:             entity.ProductSlug(name),
		SKU:              strings.TrimSpace(draft.SKU),
		Description:      strings.TrimSpace(draft.Description),
		Price:            price,
		Stock:            draft.Stock,
		CategoryID:       categoryID,
		BrandID:          brandID,
		ImageURL:         imageURL,
		CompatibleModels: models,
		IsFeatured:       draft.IsFeatured,
		CreatedAt:        time.Now(),
	}, nil
}

// resolveCategory uses the id when given, otherwise finds or creates the category by name
func (u *adminUseCase) resolveCategory(ctx context.Context, actor *entity.User, draft entity.ProductDraft) (int, error) {
	name := strings.TrimSpace(draft.CategoryName)
	if draft.CategoryID != 0 || name == "" {
		return draft.CategoryID, nil
	}

	categories, err := u.catalogRepo.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
	}

	created, err := u.createCategory(ctx, actor, name)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (u *adminUseCase) resolveBrand(ctx context.Context, actor *entity.User, draft entity.ProductDraft) (int, error) {
	name := strings.TrimSpace(draft.BrandName)
	if draft.BrandID != 0 || name == "" {
		return draft.BrandID, nil
	}

	brands, err := u.catalogRepo.ListBrands(ctx)
	if err != nil {
		return 0, err
	}
	for _, b := range brands {
		if strings.EqualFold(b.Name, name) {
			return b.ID, nil
		}
	}

	created, err := u.createBrand(ctx, actor, name)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// AdjustStock omborni +/- qilish
func (u *adminUseCase) AdjustStock(ctx context.Context, actor *entity.User, id, delta int) (entity.Product, error) {
	if err := u.authorize(actor); err != nil {
		return entity.Product{}, err
	}

	product, err := u.catalogRepo.UpdateStock(ctx, id, func(current int) int { return current + delta })
	if err != nil {
		return entity.Product{}, err
	}

	u.logAction(ctx, actor, "update_stock", fmt.Sprintf("#%d %+d -> %d", id, delta, product.Stock))
	return product, nil
}

// SetStock ombordagi sonni o'rnatish
func (u *adminUseCase) SetStock(ctx context.Context, actor *entity.User, id, stock int) (entity.Product, error) {
	if err := u.authorize(actor); err != nil {
		return entity.Product{}, err
	}

	product, err := u.catalogRepo.UpdateStock(ctx, id, func(int) int { return stock })
	if err != nil {
		return entity.Product{}, err
	}

	u.logAction(ctx, actor, "update_stock", fmt.Sprintf("#%d = %d", id, product.Stock))
	return product, nil
}

// DeleteProduct mahsulotni o'chirish
func (u *adminUseCase) DeleteProduct(ctx context.Context, actor *entity.User, id int) error {
	if err := u.authorize(actor); err != nil {
		return err
	}

	if err := u.catalogRepo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	u.logAction(ctx, actor, "delete_product", fmt.Sprintf("#%d", id))
	return nil
}

// CreateBrand yangi brend
func (u *adminUseCase) CreateBrand(ctx context.Context, actor *entity.User, name string) (entity.Brand, error) {
	if err := u.authorize(actor); err != nil {
		return entity.Brand{}, err
	}
	return u.createBrand(ctx, actor, name)
}

func (u *adminUseCase) createBrand(ctx context.Context, actor *entity.User, name string) (entity.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Brand{}, entity.ErrInvalidName
	}

	brand, err := u.catalogRepo.InsertBrand(ctx, entity.Brand{
		Name:    name,
		Slug:    entity.Slugify(name),
		Country: defaultBrandCountry,
	})
	if err != nil {
		return entity.Brand{}, fmt.Errorf("failed to insert brand: %w", err)
	}

	u.logAction(ctx, actor, "create_brand", fmt.Sprintf("#%d %s", brand.ID, brand.Name))
	return brand, nil
}

// CreateCategory yangi kategoriya
func (u *adminUseCase) CreateCategory(ctx context.Context, actor *entity.User, name string) (entity.Category, error) {
	if err := u.authorize(actor); err != nil {
		return entity.Category{}, err
	}
	return u.createCategory(ctx, actor, name)
}

func (u *adminUseCase) createCategory(ctx context.Context, actor *entity.User, name string) (entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.Category{}, entity.ErrInvalidName
	}

	category, err := u.catalogRepo.InsertCategory(ctx, entity.Category{
		Name: name,
		Slug: entity.Slugify(name),
		Icon: defaultCategoryIcon,
	})
	if err != nil {
		return entity.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}

	u.logAction(ctx, actor, "create_category", fmt.Sprintf("#%d %s", category.ID, category.Name))
	return category, nil
}

// ImportCatalog Excel fayldan katalogga qo'shish
func (u *adminUseCase) ImportCatalog(ctx context.Context, actor *entity.User, fileData []byte, filename string) (int, error) {
	if err := u.authorize(actor); err != nil {
		return 0, err
	}

	drafts, err := u.spreadsheet.ParseProductsFromBytes(ctx, fileData)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}
	if len(drafts) == 0 {
		return 0, entity.ErrEmptyImport
	}

	// every row is validated before brands, categories or products are created
	for i, d := range drafts {
		if _, err := u.validateDraft(d, entity.USD); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	products := make([]entity.Product, 0, len(drafts))
	for i, d := range drafts {
		p, err := u.buildProduct(ctx, actor, d, entity.USD)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		products = append(products, p)
	}

	// inserting in reverse keeps the file order at the top of the catalog
	for i := len(products) - 1; i >= 0; i-- {
		if _, err := u.catalogRepo.InsertProduct(ctx, products[i]); err != nil {
			return 0, fmt.Errorf("failed to insert product: %w", err)
		}
	}

	u.logAction(ctx, actor, "import_catalog", fmt.Sprintf("Imported %d products from %s", len(products), filename))
	return len(products), nil
}

// ExportCatalog katalogni eksport qilish
func (u *adminUseCase) ExportCatalog(ctx context.Context, actor *entity.User) ([]byte, error) {
	if err := u.authorize(actor); err != nil {
		return nil, err
	}

	catalog, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := u.spreadsheet.ExportProducts(ctx, catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to export catalog: %w", err)
	}

	u.logAction(ctx, actor, "export_catalog", fmt.Sprintf("Exported %d products", len(catalog.Products)))
	return data, nil
}

// CatalogInfo katalog statistikasi
func (u *adminUseCase) CatalogInfo(ctx context.Context, actor *entity.User) (entity.CatalogInfo, error) {
	if err := u.authorize(actor); err != nil {
		return entity.CatalogInfo{}, err
	}

	catalog, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		return entity.CatalogInfo{}, err
	}

	names := make(map[int]string, len(catalog.Categories))
	for _, c := range catalog.Categories {
		names[c.ID] = c.Name
	}

	info := entity.CatalogInfo{
		Products:    len(catalog.Products),
		Brands:      len(catalog.Brands),
		Categories:  len(catalog.Categories),
		PerCategory: make(map[string]int),
	}
	for _, p := range catalog.Products {
		name, ok := names[p.CategoryID]
		if !ok {
			name = uncategorized
		}
		info.PerCategory[name]++
		if !p.InStock() {
			info.OutOfStock++
		}
		info.InventoryValue += p.Price * float64(p.Stock)
	}
	return info, nil
}

// Actions audit log
func (u *adminUseCase) Actions(ctx context.Context, actor *entity.User, limit int) ([]entity.AdminAction, error) {
	if err := u.authorize(actor); err != nil {
		return nil, err
	}
	return u.auditRepo.ListActions(ctx, limit)
}

// Reset katalogni boshlang'ich holatga qaytarish
func (u *adminUseCase) Reset(ctx context.Context, actor *entity.User) error {
	if err := u.authorize(actor); err != nil {
		return err
	}

	if err := u.catalogRepo.Replace(ctx, u.seed); err != nil {
		return fmt.Errorf("failed to reset catalog: %w", err)
	}
	if err := u.chatRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear chats: %w", err)
	}

	u.logAction(ctx, actor, "reset_catalog", "Restored seed catalog and cleared advisor histories")
	return nil
}
